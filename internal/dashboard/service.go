package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	"github.com/smallbiznis/invoys/internal/stats"
	"go.uber.org/zap"
)

var ErrInvalidBusiness = errors.New("invalid_business")

// Overview is the business dashboard snapshot. Monetary fields are minor
// units.
type Overview struct {
	TotalRevenue   int64                      `json:"total_revenue"`
	Outstanding    int64                      `json:"outstanding"`
	InvoiceCount   int                        `json:"invoice_count"`
	ClientCount    int64                      `json:"client_count"`
	StatusCounts   map[string]int             `json:"status_counts"`
	RecentInvoices []invoicedomain.Invoice    `json:"recent_invoices"`
}

type Service interface {
	Overview(ctx context.Context, businessID snowflake.ID) (*Overview, error)
}

type service struct {
	log      *zap.Logger
	invoices invoicedomain.Service
	invRepo  invoicedomain.Repository
	clients  clientdomain.Repository
}

func NewService(log *zap.Logger, invoices invoicedomain.Service, invRepo invoicedomain.Repository, clients clientdomain.Repository) Service {
	return &service{
		log:      log.Named("dashboard.service"),
		invoices: invoices,
		invRepo:  invRepo,
		clients:  clients,
	}
}

const recentLimit = 5

func (s *service) Overview(ctx context.Context, businessID snowflake.ID) (*Overview, error) {
	if businessID == 0 {
		return nil, ErrInvalidBusiness
	}

	// Flip overdue invoices first so the snapshot reflects today's due dates.
	if err := s.invoices.RefreshOverdue(ctx, businessID, time.Now().UTC()); err != nil {
		s.log.Warn("overdue refresh failed", zap.String("business_id", businessID.String()), zap.Error(err))
	}

	invoices, err := s.invRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	clientCount, err := s.clients.CountByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	recent := invoices
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &Overview{
		TotalRevenue:   stats.TotalRevenue(invoices),
		Outstanding:    stats.Outstanding(invoices),
		InvoiceCount:   len(invoices),
		ClientCount:    clientCount,
		StatusCounts:   stats.CountByStatus(invoices),
		RecentInvoices: recent,
	}, nil
}

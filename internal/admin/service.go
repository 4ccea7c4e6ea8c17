// Package admin aggregates platform-wide figures for system operators.
package admin

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/invoys/internal/auth/domain"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	"github.com/smallbiznis/invoys/internal/stats"
	"go.uber.org/zap"
)

var ErrNotSystemAdmin = errors.New("not_system_admin")

// BusinessSummary is one row of the admin overview. Revenue covers every
// invoice status, matching the all-status headline businesses see on their
// own dashboard.
type BusinessSummary struct {
	Business     businessdomain.Business `json:"business"`
	ClientCount  int64                   `json:"client_count"`
	InvoiceCount int                     `json:"invoice_count"`
	Revenue      int64                   `json:"revenue"`
}

type Overview struct {
	BusinessCount int               `json:"business_count"`
	ClientCount   int64             `json:"client_count"`
	InvoiceCount  int               `json:"invoice_count"`
	TotalRevenue  int64             `json:"total_revenue"`
	Businesses    []BusinessSummary `json:"businesses"`
}

type Service interface {
	// Overview requires the acting user to carry the system admin flag; the
	// check runs before any aggregation query.
	Overview(ctx context.Context, userID snowflake.ID) (*Overview, error)
}

type service struct {
	log        *zap.Logger
	profiles   authdomain.Repository
	businesses businessdomain.Repository
	invoices   invoicedomain.Repository
	clients    clientdomain.Repository
}

func NewService(
	log *zap.Logger,
	profiles authdomain.Repository,
	businesses businessdomain.Repository,
	invoices invoicedomain.Repository,
	clients clientdomain.Repository,
) Service {
	return &service{
		log:        log.Named("admin.service"),
		profiles:   profiles,
		businesses: businesses,
		invoices:   invoices,
		clients:    clients,
	}
}

func (s *service) Overview(ctx context.Context, userID snowflake.ID) (*Overview, error) {
	profile, err := s.profiles.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsSystemAdmin {
		s.log.Warn("admin overview denied", zap.String("user_id", userID.String()))
		return nil, ErrNotSystemAdmin
	}

	businesses, err := s.businesses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{BusinessCount: len(businesses)}
	for _, b := range businesses {
		invoices, err := s.invoices.ListByBusiness(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		clientCount, err := s.clients.CountByBusiness(ctx, b.ID)
		if err != nil {
			return nil, err
		}

		summary := BusinessSummary{
			Business:     b,
			ClientCount:  clientCount,
			InvoiceCount: len(invoices),
			Revenue:      stats.TotalRevenue(invoices),
		}
		overview.Businesses = append(overview.Businesses, summary)
		overview.ClientCount += clientCount
		overview.InvoiceCount += summary.InvoiceCount
		overview.TotalRevenue += summary.Revenue
	}

	return overview, nil
}

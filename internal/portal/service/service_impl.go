package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/invoys/internal/payment/domain"
	"github.com/smallbiznis/invoys/internal/portal/domain"
	"github.com/smallbiznis/invoys/pkg/db"
	"go.uber.org/zap"
)

type service struct {
	log      *zap.Logger
	repo     domain.Repository
	clients  clientdomain.Repository
	payments paymentdomain.Service
	genID    *snowflake.Node
}

func NewService(
	log *zap.Logger,
	repo domain.Repository,
	clients clientdomain.Repository,
	payments paymentdomain.Service,
	genID *snowflake.Node,
) domain.Service {
	return &service{
		log:      log.Named("portal.service"),
		repo:     repo,
		clients:  clients,
		payments: payments,
		genID:    genID,
	}
}

func (s *service) Grant(ctx context.Context, businessID, clientID snowflake.ID, email string) (*domain.ClientPortalAccess, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	if clientID == 0 {
		return nil, domain.ErrInvalidClient
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	if _, err := s.clients.FindByID(ctx, businessID, clientID); err != nil {
		if err == clientdomain.ErrNotFound {
			return nil, domain.ErrInvalidClient
		}
		return nil, err
	}

	grant := domain.ClientPortalAccess{
		ID:         s.genID.Generate(),
		BusinessID: businessID,
		ClientID:   clientID,
		Email:      email,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateGrant(ctx, grant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrGrantExists
		}
		return nil, err
	}

	s.log.Info("portal access granted",
		zap.String("business_id", businessID.String()),
		zap.String("client_id", clientID.String()),
	)
	return &grant, nil
}

func (s *service) Revoke(ctx context.Context, businessID, grantID snowflake.ID) error {
	if businessID == 0 {
		return domain.ErrInvalidBusiness
	}
	return s.repo.DeleteGrant(ctx, businessID, grantID)
}

func (s *service) ListGrants(ctx context.Context, businessID snowflake.ID) ([]domain.ClientPortalAccess, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	return s.repo.ListGrantsByBusiness(ctx, businessID)
}

func (s *service) ListInvoices(ctx context.Context, email string) ([]invoicedomain.Invoice, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	return s.repo.ListInvoicesByEmail(ctx, email)
}

func (s *service) MarkPaid(ctx context.Context, email string, invoiceID snowflake.ID, method, comment string) (*paymentdomain.Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	invoice, err := s.repo.FindInvoiceForEmail(ctx, email, invoiceID)
	if err != nil {
		return nil, err
	}

	// Full outstanding amount, attributed to the client.
	return s.payments.Record(ctx, invoice.BusinessID, paymentdomain.RecordPaymentRequest{
		InvoiceID:     invoice.ID,
		Amount:        invoice.TotalAmount,
		PaymentDate:   time.Now().UTC(),
		Method:        method,
		ClientComment: comment,
		PaidByClient:  true,
		MarkPaid:      true,
	})
}

func (s *service) ListPayments(ctx context.Context, email string, invoiceID snowflake.ID) ([]paymentdomain.Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	invoice, err := s.repo.FindInvoiceForEmail(ctx, email, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.payments.ListByInvoice(ctx, invoice.BusinessID, invoice.ID)
}

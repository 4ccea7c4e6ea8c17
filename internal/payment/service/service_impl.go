package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	"github.com/smallbiznis/invoys/internal/payment/domain"
	"go.uber.org/zap"
)

type service struct {
	log      *zap.Logger
	repo     domain.Repository
	invoices invoicedomain.Service
	genID    *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, invoices invoicedomain.Service, genID *snowflake.Node) domain.Service {
	return &service{
		log:      log.Named("payment.service"),
		repo:     repo,
		invoices: invoices,
		genID:    genID,
	}
}

func (s *service) Record(ctx context.Context, businessID snowflake.ID, req domain.RecordPaymentRequest) (*domain.Payment, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	if req.InvoiceID == 0 {
		return nil, domain.ErrInvalidInvoice
	}
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := s.invoices.Get(ctx, businessID, req.InvoiceID); err != nil {
		if err == invoicedomain.ErrNotFound {
			return nil, domain.ErrInvalidInvoice
		}
		return nil, err
	}

	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = domain.MethodOther
	}
	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	payment := domain.Payment{
		ID:             s.genID.Generate(),
		BusinessID:     businessID,
		InvoiceID:      req.InvoiceID,
		Amount:         req.Amount,
		PaymentDate:    paymentDate,
		Method:         method,
		PaymentComment: strings.TrimSpace(req.PaymentComment),
		ClientComment:  strings.TrimSpace(req.ClientComment),
		PaidByClient:   req.PaidByClient,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", req.InvoiceID.String()),
		zap.Int64("amount", req.Amount),
	)

	// The status flip is a deliberate second write. The payment stays put
	// even when this one fails; callers see both the row and the error.
	if req.MarkPaid {
		if _, err := s.invoices.UpdateStatus(ctx, businessID, req.InvoiceID, invoicedomain.StatusPaid); err != nil {
			s.log.Warn("payment saved but status write failed",
				zap.String("payment_id", payment.ID.String()),
				zap.String("invoice_id", req.InvoiceID.String()),
				zap.Error(err),
			)
			return &payment, fmt.Errorf("%w: %v", domain.ErrStatusWriteFailed, err)
		}
	}

	return &payment, nil
}

func (s *service) ListByInvoice(ctx context.Context, businessID, invoiceID snowflake.ID) ([]domain.Payment, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	if invoiceID == 0 {
		return nil, domain.ErrInvalidInvoice
	}
	return s.repo.ListByInvoice(ctx, businessID, invoiceID)
}

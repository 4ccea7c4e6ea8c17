package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	"github.com/smallbiznis/invoys/internal/payment/domain"
	"github.com/smallbiznis/invoys/internal/payment/repository"
	"github.com/smallbiznis/invoys/pkg/db"
	"github.com/smallbiznis/invoys/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubInvoices struct {
	statusErr   error
	statusCalls int
	lastStatus  string
}

func (s *stubInvoices) Create(ctx context.Context, businessID snowflake.ID, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	return nil, errors.New("not implemented")
}

func (s *stubInvoices) Get(ctx context.Context, businessID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	return &invoicedomain.Invoice{ID: id, BusinessID: businessID, Status: invoicedomain.StatusSent}, nil
}

func (s *stubInvoices) List(ctx context.Context, businessID snowflake.ID, filter invoicedomain.ListInvoicesFilter) ([]*invoicedomain.Invoice, pagination.PageInfo, error) {
	return nil, pagination.PageInfo{}, nil
}

func (s *stubInvoices) Update(ctx context.Context, businessID, id snowflake.ID, update invoicedomain.UpdateInvoiceRequest) (*invoicedomain.Invoice, error) {
	return nil, errors.New("not implemented")
}

func (s *stubInvoices) UpdateStatus(ctx context.Context, businessID, id snowflake.ID, status string) (*invoicedomain.Invoice, error) {
	s.statusCalls++
	s.lastStatus = status
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &invoicedomain.Invoice{ID: id, BusinessID: businessID, Status: status}, nil
}

func (s *stubInvoices) Delete(ctx context.Context, businessID, id snowflake.ID) error {
	return nil
}

func (s *stubInvoices) RefreshOverdue(ctx context.Context, businessID snowflake.ID, asOf time.Time) error {
	return nil
}

func newTestService(t *testing.T, invoices *stubInvoices) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(zap.NewNop(), repository.NewRepository(conn), invoices, node), conn
}

func TestRecordMarksInvoicePaid(t *testing.T) {
	invoices := &stubInvoices{}
	svc, _ := newTestService(t, invoices)

	payment, err := svc.Record(context.Background(), 1, domain.RecordPaymentRequest{
		InvoiceID: 7,
		Amount:    2500,
		MarkPaid:  true,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	assert.Equal(t, int64(2500), payment.Amount)
	assert.Equal(t, 1, invoices.statusCalls)
	assert.Equal(t, invoicedomain.StatusPaid, invoices.lastStatus)
}

func TestRecordKeepsPaymentWhenStatusWriteFails(t *testing.T) {
	invoices := &stubInvoices{statusErr: errors.New("store unavailable")}
	svc, conn := newTestService(t, invoices)

	payment, err := svc.Record(context.Background(), 1, domain.RecordPaymentRequest{
		InvoiceID: 7,
		Amount:    2500,
		MarkPaid:  true,
	})

	// The failure is surfaced, but the payment row survives.
	assert.ErrorIs(t, err, domain.ErrStatusWriteFailed)
	if payment == nil {
		t.Fatal("expected the persisted payment alongside the error")
	}

	var count int64
	if err := conn.Model(&domain.Payment{}).Where("invoice_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	assert.Equal(t, int64(1), count)
}

func TestRecordValidatesAmount(t *testing.T) {
	svc, _ := newTestService(t, &stubInvoices{})

	_, err := svc.Record(context.Background(), 1, domain.RecordPaymentRequest{InvoiceID: 7, Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestListByInvoiceOrdersNewestFirst(t *testing.T) {
	svc, conn := newTestService(t, &stubInvoices{})
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, day := range []int{2, 0, 1} {
		p := domain.Payment{
			ID:          snowflake.ID(100 + i),
			BusinessID:  1,
			InvoiceID:   7,
			Amount:      100,
			PaymentDate: base.AddDate(0, 0, day),
		}
		if err := conn.Create(&p).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	payments, err := svc.ListByInvoice(ctx, 1, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(payments) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(payments))
	}
	for i := 1; i < len(payments); i++ {
		if payments[i].PaymentDate.After(payments[i-1].PaymentDate) {
			t.Fatalf("payments not ordered newest first: %v then %v",
				payments[i-1].PaymentDate, payments[i].PaymentDate)
		}
	}
}

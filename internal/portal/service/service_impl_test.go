package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	clientrepo "github.com/smallbiznis/invoys/internal/client/repository"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/invoys/internal/invoice/repository"
	paymentdomain "github.com/smallbiznis/invoys/internal/payment/domain"
	paymentrepo "github.com/smallbiznis/invoys/internal/payment/repository"
	paymentsvc "github.com/smallbiznis/invoys/internal/payment/service"
	"github.com/smallbiznis/invoys/internal/portal/domain"
	"github.com/smallbiznis/invoys/internal/portal/repository"
	"github.com/smallbiznis/invoys/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	conn *gorm.DB
	node *snowflake.Node
}

// invoiceServiceForTest narrows the real invoice service down to the status
// write the payment flow needs.
type invoiceServiceForTest struct {
	invoicedomain.Service
	repo invoicedomain.Repository
}

func (s *invoiceServiceForTest) Get(ctx context.Context, businessID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	return s.repo.FindByID(ctx, businessID, id)
}

func (s *invoiceServiceForTest) UpdateStatus(ctx context.Context, businessID, id snowflake.ID, status string) (*invoicedomain.Invoice, error) {
	err := s.repo.UpdateFields(ctx, businessID, id, map[string]any{"status": status})
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, businessID, id)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&clientdomain.Client{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&paymentdomain.Payment{},
		&domain.ClientPortalAccess{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	log := zap.NewNop()
	invoices := &invoiceServiceForTest{repo: invoicerepo.NewRepository(conn)}
	payments := paymentsvc.NewService(log, paymentrepo.NewRepository(conn), invoices, node)
	svc := NewService(log, repository.NewRepository(conn), clientrepo.NewRepository(conn), payments, node)

	return &fixture{svc: svc, conn: conn, node: node}
}

func (f *fixture) seedClient(t *testing.T, businessID snowflake.ID, name string) snowflake.ID {
	t.Helper()
	client := clientdomain.Client{ID: f.node.Generate(), BusinessID: businessID, Name: name}
	if err := f.conn.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client.ID
}

func (f *fixture) seedInvoice(t *testing.T, businessID, clientID snowflake.ID, total int64) snowflake.ID {
	t.Helper()
	id := f.node.Generate()
	inv := invoicedomain.Invoice{
		ID:            id,
		BusinessID:    businessID,
		ClientID:      clientID,
		InvoiceNumber: id.String(),
		Status:        invoicedomain.StatusSent,
		TotalAmount:   total,
		CreatedAt:     time.Now().UTC(),
	}
	if err := f.conn.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv.ID
}

func TestListInvoicesFiltersByGrant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.seedClient(t, 1, "Mine")
	other := f.seedClient(t, 1, "Other")
	visible := f.seedInvoice(t, 1, mine, 1000)
	f.seedInvoice(t, 1, other, 2000)

	if _, err := f.svc.Grant(ctx, 1, mine, "client@portal.test"); err != nil {
		t.Fatalf("grant: %v", err)
	}

	invoices, err := f.svc.ListInvoices(ctx, "client@portal.test")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != visible {
		t.Fatalf("expected only the granted client's invoice, got %+v", invoices)
	}
}

func TestMarkPaidRecordsFullAmountAndFlipsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	clientID := f.seedClient(t, 1, "Mine")
	invoiceID := f.seedInvoice(t, 1, clientID, 2500)
	if _, err := f.svc.Grant(ctx, 1, clientID, "client@portal.test"); err != nil {
		t.Fatalf("grant: %v", err)
	}

	payment, err := f.svc.MarkPaid(ctx, "client@portal.test", invoiceID, paymentdomain.MethodCard, "paid online")
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if payment.Amount != 2500 {
		t.Fatalf("payment amount = %d, want the full 2500", payment.Amount)
	}
	if !payment.PaidByClient {
		t.Fatal("expected paid_by_client to be set")
	}
	if payment.Method != paymentdomain.MethodCard || payment.ClientComment != "paid online" {
		t.Fatalf("method = %q comment = %q", payment.Method, payment.ClientComment)
	}

	var invoice invoicedomain.Invoice
	if err := f.conn.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	if invoice.Status != invoicedomain.StatusPaid {
		t.Fatalf("status = %q, want paid", invoice.Status)
	}
}

func TestMarkPaidDeniedWithoutGrant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	clientID := f.seedClient(t, 1, "Mine")
	invoiceID := f.seedInvoice(t, 1, clientID, 2500)

	if _, err := f.svc.MarkPaid(ctx, "stranger@portal.test", invoiceID, "", ""); err != domain.ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	var count int64
	if err := f.conn.Model(&paymentdomain.Payment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no payment rows, got %d", count)
	}
}

func TestGrantRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	clientID := f.seedClient(t, 1, "Mine")
	if _, err := f.svc.Grant(ctx, 1, clientID, "client@portal.test"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := f.svc.Grant(ctx, 1, clientID, "client@portal.test"); err != domain.ErrGrantExists {
		t.Fatalf("expected ErrGrantExists, got %v", err)
	}
}

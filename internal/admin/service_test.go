package admin

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/invoys/internal/auth/domain"
	authrepo "github.com/smallbiznis/invoys/internal/auth/repository"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	businessrepo "github.com/smallbiznis/invoys/internal/business/repository"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	clientrepo "github.com/smallbiznis/invoys/internal/client/repository"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	invoicerepo "github.com/smallbiznis/invoys/internal/invoice/repository"
	"github.com/smallbiznis/invoys/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newFixture(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Profile{},
		&businessdomain.Business{},
		&businessdomain.BusinessUser{},
		&clientdomain.Client{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewService(
		zap.NewNop(),
		authrepo.NewRepository(conn),
		businessrepo.NewRepository(conn),
		invoicerepo.NewRepository(conn),
		clientrepo.NewRepository(conn),
	)
	return svc, conn
}

func seedProfile(t *testing.T, conn *gorm.DB, userID snowflake.ID, isAdmin bool) {
	t.Helper()
	profile := authdomain.Profile{UserID: userID, IsSystemAdmin: isAdmin}
	if err := conn.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func TestOverviewRequiresSystemAdmin(t *testing.T) {
	svc, conn := newFixture(t)
	seedProfile(t, conn, 1, false)

	if _, err := svc.Overview(context.Background(), 1); err != ErrNotSystemAdmin {
		t.Fatalf("expected ErrNotSystemAdmin, got %v", err)
	}
}

func TestOverviewAggregatesAcrossBusinesses(t *testing.T) {
	svc, conn := newFixture(t)
	seedProfile(t, conn, 1, true)

	now := time.Now().UTC()
	businesses := []businessdomain.Business{
		{ID: 10, Name: "Acme", Slug: "acme", CreatedAt: now},
		{ID: 20, Name: "Beta", Slug: "beta", CreatedAt: now.Add(time.Second)},
	}
	for i := range businesses {
		if err := conn.Create(&businesses[i]).Error; err != nil {
			t.Fatalf("seed business: %v", err)
		}
	}

	invoices := []invoicedomain.Invoice{
		{ID: 1, BusinessID: 10, InvoiceNumber: "1", Status: invoicedomain.StatusPaid, TotalAmount: 10000},
		{ID: 2, BusinessID: 10, InvoiceNumber: "2", Status: invoicedomain.StatusSent, TotalAmount: 5000},
		{ID: 3, BusinessID: 20, InvoiceNumber: "3", Status: invoicedomain.StatusDraft, TotalAmount: 2500},
	}
	for i := range invoices {
		if err := conn.Create(&invoices[i]).Error; err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
	if err := conn.Create(&clientdomain.Client{ID: 100, BusinessID: 10, Name: "Ada"}).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}

	overview, err := svc.Overview(context.Background(), 1)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.BusinessCount != 2 {
		t.Fatalf("business count = %d, want 2", overview.BusinessCount)
	}
	// Revenue counts every status, drafts included.
	if overview.TotalRevenue != 17500 {
		t.Fatalf("total revenue = %d, want 17500", overview.TotalRevenue)
	}
	if overview.InvoiceCount != 3 {
		t.Fatalf("invoice count = %d, want 3", overview.InvoiceCount)
	}
	if overview.ClientCount != 1 {
		t.Fatalf("client count = %d, want 1", overview.ClientCount)
	}

	if len(overview.Businesses) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(overview.Businesses))
	}
	if overview.Businesses[0].Revenue != 15000 {
		t.Fatalf("first business revenue = %d, want 15000", overview.Businesses[0].Revenue)
	}
	if overview.Businesses[1].Revenue != 2500 {
		t.Fatalf("second business revenue = %d, want 2500", overview.Businesses[1].Revenue)
	}
}

func TestOverviewUnknownUser(t *testing.T) {
	svc, _ := newFixture(t)

	if _, err := svc.Overview(context.Background(), 404); err == nil {
		t.Fatal("expected an error for a user without a profile")
	}
}

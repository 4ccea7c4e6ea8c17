package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/internal/client/domain"
	"github.com/smallbiznis/invoys/internal/client/repository"
	"github.com/smallbiznis/invoys/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Client{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return NewService(zap.NewNop(), repository.NewRepository(conn), node)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), 1, domain.CreateClientRequest{Name: "  "})
	if err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestListSearchMatchesNameEmailAndCompany(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(1)

	seed := []domain.CreateClientRequest{
		{Name: "Ada Lovelace", Email: "ada@analytical.test", CompanyName: "Analytical Engines"},
		{Name: "Grace Hopper", Email: "grace@navy.test", CompanyName: "Compilers Inc"},
		{Name: "Edsger Dijkstra", Email: "edsger@thi.test", CompanyName: "Structured Works"},
	}
	for _, req := range seed {
		if _, err := svc.Create(ctx, businessID, req); err != nil {
			t.Fatalf("create %q: %v", req.Name, err)
		}
	}

	cases := []struct {
		search string
		want   int
	}{
		{"ada", 1},
		{"NAVY", 1},
		{"engines", 1},
		{"e", 3},
		{"nobody", 0},
	}
	for _, tc := range cases {
		clients, _, err := svc.List(ctx, businessID, domain.ListClientsFilter{Search: tc.search})
		if err != nil {
			t.Fatalf("list %q: %v", tc.search, err)
		}
		if len(clients) != tc.want {
			t.Fatalf("search %q: expected %d clients, got %d", tc.search, tc.want, len(clients))
		}
	}
}

func TestListIsScopedToBusiness(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, domain.CreateClientRequest{Name: "Mine"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, 2, domain.CreateClientRequest{Name: "Theirs"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	clients, _, err := svc.List(ctx, 1, domain.ListClientsFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(clients) != 1 || clients[0].Name != "Mine" {
		t.Fatalf("expected only the owning business's client, got %+v", clients)
	}
}

func TestDeleteIsPermanent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, domain.CreateClientRequest{Name: "Ephemeral"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, 1, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, 1, created.ID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, 1, created.ID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListPaginatesWithCursor(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	businessID := snowflake.ID(1)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, businessID, domain.CreateClientRequest{Name: "Client"}); err != nil {
			t.Fatalf("create: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	filter := domain.ListClientsFilter{}
	filter.PageSize = 2

	first, pageInfo, err := svc.List(ctx, businessID, filter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 2 || !pageInfo.HasMore {
		t.Fatalf("expected a full first page with more, got %d has_more=%v", len(first), pageInfo.HasMore)
	}

	seen := map[snowflake.ID]bool{}
	for _, c := range first {
		seen[c.ID] = true
	}

	filter.PageToken = pageInfo.NextPageToken
	second, _, err := svc.List(ctx, businessID, filter)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected 2 clients on page 2, got %d", len(second))
	}
	for _, c := range second {
		if seen[c.ID] {
			t.Fatalf("client %s appeared on both pages", c.ID)
		}
	}
}

func TestPreferredCurrencyDefaultsAndNormalizes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, domain.CreateClientRequest{Name: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PreferredCurrency != "USD" {
		t.Fatalf("preferred currency = %q, want USD", created.PreferredCurrency)
	}

	other, err := svc.Create(ctx, 1, domain.CreateClientRequest{
		Name:              "Grace Hopper",
		PreferredCurrency: " eur ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if other.PreferredCurrency != "EUR" {
		t.Fatalf("preferred currency = %q, want EUR", other.PreferredCurrency)
	}

	gbp := "gbp"
	updated, err := svc.Update(ctx, 1, created.ID, domain.UpdateClientRequest{
		PreferredCurrency: &gbp,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PreferredCurrency != "GBP" {
		t.Fatalf("preferred currency = %q, want GBP", updated.PreferredCurrency)
	}

	blank := "  "
	updated, err = svc.Update(ctx, 1, created.ID, domain.UpdateClientRequest{
		PreferredCurrency: &blank,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PreferredCurrency != "USD" {
		t.Fatalf("preferred currency = %q, want USD after clearing", updated.PreferredCurrency)
	}
}

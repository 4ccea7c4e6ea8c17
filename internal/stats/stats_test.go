package stats

import (
	"testing"

	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
)

func fixtureInvoices() []invoicedomain.Invoice {
	return []invoicedomain.Invoice{
		{Status: invoicedomain.StatusPaid, TotalAmount: 10000},
		{Status: invoicedomain.StatusSent, TotalAmount: 5000},
		{Status: invoicedomain.StatusDraft, TotalAmount: 2500},
	}
}

func TestTotalRevenueIncludesEveryStatus(t *testing.T) {
	if got := TotalRevenue(fixtureInvoices()); got != 17500 {
		t.Fatalf("TotalRevenue = %d, want 17500", got)
	}
}

func TestOutstandingExcludesPaid(t *testing.T) {
	if got := Outstanding(fixtureInvoices()); got != 7500 {
		t.Fatalf("Outstanding = %d, want 7500", got)
	}
}

func TestPaidRevenue(t *testing.T) {
	if got := PaidRevenue(fixtureInvoices()); got != 10000 {
		t.Fatalf("PaidRevenue = %d, want 10000", got)
	}
}

// Revenue counts unpaid totals while outstanding also counts them, so the
// two figures intentionally overlap instead of summing to the paid total.
func TestRevenueAndOutstandingOverlap(t *testing.T) {
	invoices := fixtureInvoices()
	revenue := TotalRevenue(invoices)
	outstanding := Outstanding(invoices)
	if revenue-outstanding != PaidRevenue(invoices) {
		t.Fatalf("revenue %d - outstanding %d should equal paid %d",
			revenue, outstanding, PaidRevenue(invoices))
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(fixtureInvoices())
	if counts[invoicedomain.StatusPaid] != 1 || counts[invoicedomain.StatusSent] != 1 || counts[invoicedomain.StatusDraft] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(counts))
	}
}

func TestEmptySlice(t *testing.T) {
	if TotalRevenue(nil) != 0 || Outstanding(nil) != 0 {
		t.Fatal("empty input should produce zero totals")
	}
}

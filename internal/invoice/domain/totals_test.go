package domain

import "testing"

func TestItemAmountRoundsToNearestCent(t *testing.T) {
	cases := []struct {
		quantity float64
		rate     int64
		want     int64
	}{
		{2, 1000, 2000},
		{1, 500, 500},
		{0.5, 333, 167},
		{1.5, 101, 152},
		{3, 0, 0},
	}
	for _, tc := range cases {
		if got := ItemAmount(tc.quantity, tc.rate); got != tc.want {
			t.Errorf("ItemAmount(%v, %d) = %d, want %d", tc.quantity, tc.rate, got, tc.want)
		}
	}
}

func TestSubtotalSumsLineTotals(t *testing.T) {
	items := []InvoiceItem{
		{Quantity: 2, Rate: 1000, Amount: ItemAmount(2, 1000)},
		{Quantity: 1, Rate: 500, Amount: ItemAmount(1, 500)},
	}
	if items[0].Amount != 2000 {
		t.Fatalf("first line total = %d, want 2000", items[0].Amount)
	}
	if items[1].Amount != 500 {
		t.Fatalf("second line total = %d, want 500", items[1].Amount)
	}
	if got := Subtotal(items); got != 2500 {
		t.Fatalf("Subtotal = %d, want 2500", got)
	}
}

func TestTax(t *testing.T) {
	if got := Tax(2500, 10); got != 250 {
		t.Fatalf("Tax(2500, 10) = %d, want 250", got)
	}
	if got := Tax(2500, 0); got != 0 {
		t.Fatalf("Tax(2500, 0) = %d, want 0", got)
	}
	if got := Tax(999, 7.5); got != 75 {
		t.Fatalf("Tax(999, 7.5) = %d, want 75", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber("INV", 7, 4); got != "INV-0007" {
		t.Fatalf("FormatNumber = %q, want INV-0007", got)
	}
	if got := FormatNumber("ACME", 12345, 4); got != "ACME-12345" {
		t.Fatalf("FormatNumber = %q, want ACME-12345", got)
	}
}

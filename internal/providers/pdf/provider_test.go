package pdf

import "testing"

func TestFormatMinor(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{2500, "USD", "USD 25.00"},
		{99, "", "0.99"},
		{-150, "EUR", "EUR -1.50"},
		{100000, "USD", "USD 1000.00"},
	}
	for _, tc := range cases {
		if got := formatMinor(tc.amount, tc.currency); got != tc.want {
			t.Errorf("formatMinor(%d, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := formatQuantity(2); got != "2" {
		t.Fatalf("formatQuantity(2) = %q, want 2", got)
	}
	if got := formatQuantity(1.5); got != "1.5" {
		t.Fatalf("formatQuantity(1.5) = %q, want 1.5", got)
	}
}

// Package stats computes dashboard aggregates over invoice records. All
// monetary results are minor units.
package stats

import (
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
)

// TotalRevenue sums invoice totals across every status, so unpaid and draft
// invoices count toward the headline figure.
func TotalRevenue(invoices []invoicedomain.Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		total += inv.TotalAmount
	}
	return total
}

// Outstanding sums the totals of invoices that are not yet paid.
func Outstanding(invoices []invoicedomain.Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		if inv.Status != invoicedomain.StatusPaid {
			total += inv.TotalAmount
		}
	}
	return total
}

// PaidRevenue sums the totals of paid invoices only.
func PaidRevenue(invoices []invoicedomain.Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		if inv.Status == invoicedomain.StatusPaid {
			total += inv.TotalAmount
		}
	}
	return total
}

// CountByStatus tallies invoices per status.
func CountByStatus(invoices []invoicedomain.Invoice) map[string]int {
	counts := make(map[string]int)
	for _, inv := range invoices {
		counts[inv.Status]++
	}
	return counts
}

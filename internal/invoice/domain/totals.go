package domain

import (
	"fmt"
	"math"
)

// ItemAmount computes a line total in minor units. Fractional quantities are
// allowed; the product is rounded to the nearest cent.
func ItemAmount(quantity float64, rate int64) int64 {
	return int64(math.Round(quantity * float64(rate)))
}

// Subtotal sums the line totals.
func Subtotal(items []InvoiceItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// Tax computes the tax portion for a subtotal at a percentage rate.
func Tax(subtotal int64, taxRate float64) int64 {
	if taxRate <= 0 {
		return 0
	}
	return int64(math.Round(float64(subtotal) * taxRate / 100))
}

// FormatNumber renders the display number, e.g. ("INV", 7, 4) -> "INV-0007".
func FormatNumber(prefix string, counter int64, width int) string {
	if width <= 0 {
		width = 4
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, counter)
}

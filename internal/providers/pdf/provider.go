package pdf

import (
	"context"
	"fmt"
	"io"

	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	"go.uber.org/fx"
)

// Renderer produces the downloadable invoice document.
type Renderer interface {
	RenderInvoice(ctx context.Context, business businessdomain.Business, client clientdomain.Client, invoice invoicedomain.Invoice) (io.Reader, error)
}

var Module = fx.Module("pdf",
	fx.Provide(New),
)

// formatMinor renders minor units as a decimal amount with currency code,
// e.g. (2500, "USD") -> "USD 25.00".
func formatMinor(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if currency == "" {
		return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, amount/100, amount%100)
}

// formatQuantity trims trailing zeros so whole quantities print bare.
func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%g", q)
}

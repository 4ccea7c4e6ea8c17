package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
)

type Repository interface {
	CreateGrant(ctx context.Context, grant ClientPortalAccess) error
	DeleteGrant(ctx context.Context, businessID, grantID snowflake.ID) error
	ListGrantsByBusiness(ctx context.Context, businessID snowflake.ID) ([]ClientPortalAccess, error)
	ListGrantsByEmail(ctx context.Context, email string) ([]ClientPortalAccess, error)
	// ListInvoicesByEmail joins invoices against the email's grants.
	ListInvoicesByEmail(ctx context.Context, email string) ([]invoicedomain.Invoice, error)
	// FindInvoiceForEmail returns the invoice only when a grant covers its
	// client.
	FindInvoiceForEmail(ctx context.Context, email string, invoiceID snowflake.ID) (*invoicedomain.Invoice, error)
}

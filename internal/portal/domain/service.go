package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/invoys/internal/payment/domain"
)

type Service interface {
	// Grant gives the email portal access to one of the business's clients.
	Grant(ctx context.Context, businessID, clientID snowflake.ID, email string) (*ClientPortalAccess, error)
	Revoke(ctx context.Context, businessID, grantID snowflake.ID) error
	ListGrants(ctx context.Context, businessID snowflake.ID) ([]ClientPortalAccess, error)

	// ListInvoices returns every invoice visible to the email across its
	// grants, newest first.
	ListInvoices(ctx context.Context, email string) ([]invoicedomain.Invoice, error)
	// MarkPaid records a full-amount payment on behalf of the client and
	// flips the invoice status. The email must hold a grant for the
	// invoice's client.
	MarkPaid(ctx context.Context, email string, invoiceID snowflake.ID, method, comment string) (*paymentdomain.Payment, error)
	ListPayments(ctx context.Context, email string, invoiceID snowflake.ID) ([]paymentdomain.Payment, error)
}

var (
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrGrantExists     = errors.New("grant_exists")
	ErrNotFound        = errors.New("not_found")
	// ErrAccessDenied means the email holds no grant covering the invoice.
	ErrAccessDenied = errors.New("access_denied")
)

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, payment Payment) error
	// ListByInvoice returns payments newest payment date first.
	ListByInvoice(ctx context.Context, businessID, invoiceID snowflake.ID) ([]Payment, error)
}

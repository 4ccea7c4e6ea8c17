package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice Invoice) error
	FindByID(ctx context.Context, businessID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, businessID snowflake.ID, filter ListInvoicesFilter) ([]*Invoice, error)
	ListByBusiness(ctx context.Context, businessID snowflake.ID) ([]Invoice, error)
	UpdateFields(ctx context.Context, businessID, id snowflake.ID, fields map[string]any) error
	ReplaceItems(ctx context.Context, invoiceID snowflake.ID, items []InvoiceItem) error
	Delete(ctx context.Context, businessID, id snowflake.ID) error
	// NextNumber increments and returns the business's invoice counter. Call
	// it inside the transaction that creates the invoice.
	NextNumber(ctx context.Context, businessID snowflake.ID) (int64, error)
	MarkOverdue(ctx context.Context, businessID snowflake.ID, asOf time.Time) error
	CountByBusiness(ctx context.Context, businessID snowflake.ID) (int64, error)
}

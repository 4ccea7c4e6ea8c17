package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/pkg/db/pagination"
)

type Service interface {
	// Create persists the invoice and its line items in one transaction,
	// assigning the next number in the business's sequence.
	Create(ctx context.Context, businessID snowflake.ID, req CreateInvoiceRequest) (*Invoice, error)
	Get(ctx context.Context, businessID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, businessID snowflake.ID, filter ListInvoicesFilter) ([]*Invoice, pagination.PageInfo, error)
	// Update applies header changes and, when Items is present, replaces the
	// full line item set. Header and items commit together or not at all.
	Update(ctx context.Context, businessID, id snowflake.ID, update UpdateInvoiceRequest) (*Invoice, error)
	UpdateStatus(ctx context.Context, businessID, id snowflake.ID, status string) (*Invoice, error)
	Delete(ctx context.Context, businessID, id snowflake.ID) error
	// RefreshOverdue flips sent and viewed invoices past their due date.
	RefreshOverdue(ctx context.Context, businessID snowflake.ID, asOf time.Time) error
}

type ItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        int64   `json:"rate"`
}

type CreateInvoiceRequest struct {
	ClientID     snowflake.ID `json:"client_id,string"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	IssueDate    time.Time    `json:"issue_date"`
	DueDate      time.Time    `json:"due_date"`
	Currency     string       `json:"currency"`
	PaymentTerms string       `json:"payment_terms"`
	Notes        string       `json:"notes"`
	TaxRate      float64      `json:"tax_rate"`
	Items        []ItemInput  `json:"items"`
}

type UpdateInvoiceRequest struct {
	ClientID      *snowflake.ID `json:"client_id,string"`
	InvoiceNumber *string       `json:"invoice_number"`
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	IssueDate     *time.Time    `json:"issue_date"`
	DueDate       *time.Time    `json:"due_date"`
	Currency      *string       `json:"currency"`
	PaymentTerms  *string       `json:"payment_terms"`
	Notes         *string       `json:"notes"`
	TaxRate       *float64      `json:"tax_rate"`
	Items         *[]ItemInput  `json:"items"`
}

type ListInvoicesFilter struct {
	Status   string       `form:"status"`
	ClientID snowflake.ID `form:"client_id"`
	Search   string       `form:"q"`
	pagination.Pagination
}

var (
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrInvalidClient   = errors.New("invalid_client")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidItem     = errors.New("invalid_item")
	ErrNoItems         = errors.New("no_items")
	ErrInvalidNumber   = errors.New("invalid_invoice_number")
	ErrDuplicateNumber = errors.New("duplicate_invoice_number")
	ErrNotFound        = errors.New("not_found")
)

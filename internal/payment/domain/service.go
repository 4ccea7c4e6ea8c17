package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Record inserts the payment and, when MarkPaid is set, flips the invoice
	// status in a separate follow-up write. The payment is never rolled back:
	// a failed status write returns the persisted payment together with the
	// error so the caller can surface the partial outcome.
	Record(ctx context.Context, businessID snowflake.ID, req RecordPaymentRequest) (*Payment, error)
	ListByInvoice(ctx context.Context, businessID, invoiceID snowflake.ID) ([]Payment, error)
}

type RecordPaymentRequest struct {
	InvoiceID      snowflake.ID `json:"invoice_id,string"`
	Amount         int64        `json:"amount"`
	PaymentDate    time.Time    `json:"payment_date"`
	Method         string       `json:"payment_method"`
	PaymentComment string       `json:"payment_comment"`
	ClientComment  string       `json:"client_comment"`
	PaidByClient   bool         `json:"paid_by_client"`
	MarkPaid       bool         `json:"mark_paid"`
}

var (
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrInvalidInvoice  = errors.New("invalid_invoice")
	ErrInvalidAmount   = errors.New("invalid_amount")
	// ErrStatusWriteFailed reports that the payment was saved but the invoice
	// could not be marked paid.
	ErrStatusWriteFailed = errors.New("status_write_failed")
)

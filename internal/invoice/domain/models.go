package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusViewed  = "viewed"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// ValidStatus reports whether the value is one of the known invoice states.
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusSent, StatusViewed, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Monetary fields are minor units (cents) throughout.
type Invoice struct {
	ID            snowflake.ID  `json:"id,string" gorm:"primaryKey"`
	BusinessID    snowflake.ID  `json:"business_id,string" gorm:"uniqueIndex:idx_invoices_number;index:idx_invoices_business"`
	ClientID      snowflake.ID  `json:"client_id,string" gorm:"index:idx_invoices_client"`
	InvoiceNumber string        `json:"invoice_number" gorm:"uniqueIndex:idx_invoices_number"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        string        `json:"status" gorm:"default:draft"`
	Currency      string        `json:"currency"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	PaymentTerms  string        `json:"payment_terms"`
	Notes         string        `json:"notes"`
	TaxRate       float64       `json:"tax_rate"`
	Amount        int64         `json:"amount"`
	TaxAmount     int64         `json:"tax_amount"`
	TotalAmount   int64         `json:"total_amount"`
	Items         []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceItem struct {
	ID          snowflake.ID `json:"id,string" gorm:"primaryKey"`
	InvoiceID   snowflake.ID `json:"invoice_id,string" gorm:"index:idx_invoice_items_invoice"`
	Description string       `json:"description"`
	Quantity    float64      `json:"quantity"`
	Rate        int64        `json:"rate"`
	Amount      int64        `json:"amount"`
	Position    int          `json:"position"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// InvoiceSequence holds the per-business counter behind invoice numbers.
type InvoiceSequence struct {
	BusinessID snowflake.ID `gorm:"primaryKey"`
	Counter    int64
	UpdatedAt  time.Time
}

func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

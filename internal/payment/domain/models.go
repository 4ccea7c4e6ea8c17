package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	MethodBankTransfer = "bank_transfer"
	MethodCard         = "card"
	MethodCash         = "cash"
	MethodOther        = "other"
)

// Amount is minor units (cents). PaidByClient marks payments the client
// recorded through the self-service portal.
type Payment struct {
	ID             snowflake.ID `json:"id,string" gorm:"primaryKey"`
	BusinessID     snowflake.ID `json:"business_id,string" gorm:"index:idx_payments_business"`
	InvoiceID      snowflake.ID `json:"invoice_id,string" gorm:"index:idx_payments_invoice"`
	Amount         int64        `json:"amount"`
	PaymentDate    time.Time    `json:"payment_date"`
	Method         string       `json:"payment_method" gorm:"column:payment_method"`
	PaymentComment string       `json:"payment_comment"`
	ClientComment  string       `json:"client_comment"`
	PaidByClient   bool         `json:"paid_by_client"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Client struct {
	ID          snowflake.ID `json:"id,string" gorm:"primaryKey"`
	BusinessID  snowflake.ID `json:"business_id,string" gorm:"index:idx_clients_business"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	CompanyName string       `json:"company_name"`
	Address     string       `json:"address"`
	Notes       string       `json:"notes"`
	// PreferredCurrency is an ISO code, defaulted at create time.
	PreferredCurrency string    `json:"preferred_currency" gorm:"default:USD"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

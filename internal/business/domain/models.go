// Package domain contains persistence models for the business service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Business represents a tenant. Every client and invoice belongs to exactly
// one business. Businesses are never deleted by the application.
type Business struct {
	ID                  snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name                string            `gorm:"type:text;not null" json:"name"`
	Slug                string            `gorm:"type:text;not null;uniqueIndex:ux_businesses_slug" json:"slug"`
	Email               string            `gorm:"type:text;not null" json:"email"`
	Phone               string            `gorm:"type:text" json:"phone,omitempty"`
	Address             string            `gorm:"type:text" json:"address,omitempty"`
	Website             string            `gorm:"type:text" json:"website,omitempty"`
	TaxID               string            `gorm:"column:tax_id;type:text" json:"tax_id,omitempty"`
	DefaultCurrency     string            `gorm:"column:default_currency;type:text;not null" json:"default_currency"`
	DefaultPaymentTerms string            `gorm:"column:default_payment_terms;type:text;not null" json:"default_payment_terms"`
	InvoicePrefix       string            `gorm:"column:invoice_prefix;type:text;not null" json:"invoice_prefix"`
	Metadata            datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Business) TableName() string { return "businesses" }

// BusinessUser represents membership of a user in a business.
type BusinessUser struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	BusinessID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_business_user,priority:1" json:"business_id"`
	UserID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_business_user,priority:2" json:"user_id"`
	Role       string       `gorm:"type:text;not null" json:"role"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (BusinessUser) TableName() string { return "business_users" }

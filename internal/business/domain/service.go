package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Service interface {
	// Onboard creates a business and links the acting user as its admin in
	// a single transaction.
	Onboard(ctx context.Context, userID snowflake.ID, req OnboardRequest) (*Business, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Business, error)
	// ListByUser returns the businesses the user belongs to, oldest first,
	// so the default selection is deterministic.
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Business, error)
	IsMember(ctx context.Context, businessID, userID snowflake.ID) (bool, error)
	Update(ctx context.Context, id snowflake.ID, update UpdateBusinessRequest) (*Business, error)
}

type OnboardRequest struct {
	Name                string
	Email               string
	Phone               string
	Address             string
	DefaultCurrency     string
	DefaultPaymentTerms string
	InvoicePrefix       string
}

// UpdateBusinessRequest is a partial update; nil fields are left untouched.
type UpdateBusinessRequest struct {
	Name                *string `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	Website             *string `json:"website"`
	TaxID               *string `json:"tax_id"`
	DefaultCurrency     *string `json:"default_currency"`
	DefaultPaymentTerms *string `json:"default_payment_terms"`
	InvoicePrefix       *string `json:"invoice_prefix"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrInvalidUser     = errors.New("invalid_user")
	ErrNotFound        = errors.New("not_found")
)

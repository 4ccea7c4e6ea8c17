package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, businessID snowflake.ID, req CreateClientRequest) (*Client, error)
	Get(ctx context.Context, businessID, id snowflake.ID) (*Client, error)
	// List returns the business's clients, newest first. A non-empty search
	// term matches substrings of the name, email, or company name.
	List(ctx context.Context, businessID snowflake.ID, filter ListClientsFilter) ([]*Client, pagination.PageInfo, error)
	Update(ctx context.Context, businessID, id snowflake.ID, update UpdateClientRequest) (*Client, error)
	// Delete removes the client row permanently.
	Delete(ctx context.Context, businessID, id snowflake.ID) error
}

type CreateClientRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	CompanyName       string `json:"company_name"`
	Address           string `json:"address"`
	Notes             string `json:"notes"`
	PreferredCurrency string `json:"preferred_currency"`
}

type UpdateClientRequest struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	CompanyName       *string `json:"company_name"`
	Address           *string `json:"address"`
	Notes             *string `json:"notes"`
	PreferredCurrency *string `json:"preferred_currency"`
}

type ListClientsFilter struct {
	Search string `form:"q"`
	pagination.Pagination
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidBusiness = errors.New("invalid_business")
	ErrNotFound        = errors.New("not_found")
)

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, client Client) error
	FindByID(ctx context.Context, businessID, id snowflake.ID) (*Client, error)
	List(ctx context.Context, businessID snowflake.ID, filter ListClientsFilter) ([]*Client, error)
	UpdateFields(ctx context.Context, businessID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, businessID, id snowflake.ID) error
	CountByBusiness(ctx context.Context, businessID snowflake.ID) (int64, error)
}

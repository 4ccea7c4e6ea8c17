package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, business Business) error
	AddMember(ctx context.Context, member BusinessUser) error
	FindByID(ctx context.Context, id snowflake.ID) (*Business, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Business, error)
	ListAll(ctx context.Context) ([]Business, error)
	IsMember(ctx context.Context, businessID, userID snowflake.ID) (bool, error)
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
}

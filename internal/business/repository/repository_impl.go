package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/internal/business/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, business domain.Business) error {
	return r.db.WithContext(ctx).Create(&business).Error
}

func (r *repository) AddMember(ctx context.Context, member domain.BusinessUser) error {
	return r.db.WithContext(ctx).Create(&member).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Business, error) {
	var business domain.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

func (r *repository) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Business, error) {
	var businesses []domain.Business
	err := r.db.WithContext(ctx).Raw(
		`SELECT b.*
		 FROM businesses b
		 JOIN business_users m ON m.business_id = b.id
		 WHERE m.user_id = ?
		 ORDER BY b.created_at ASC, b.id ASC`,
		userID,
	).Scan(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repository) ListAll(ctx context.Context) ([]domain.Business, error) {
	var businesses []domain.Business
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repository) IsMember(ctx context.Context, businessID, userID snowflake.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.BusinessUser{}).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ?", id).
		Updates(fields).Error
}

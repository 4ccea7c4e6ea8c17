package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/internal/client/domain"
	"github.com/smallbiznis/invoys/pkg/db/pagination"
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

func (r *repository) Create(ctx context.Context, client domain.Client) error {
	return r.db.WithContext(ctx).Create(&client).Error
}

func (r *repository) FindByID(ctx context.Context, businessID, id snowflake.ID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).
		First(&client, "business_id = ? AND id = ?", businessID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *repository) List(ctx context.Context, businessID snowflake.ID, filter domain.ListClientsFilter) ([]*domain.Client, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("business_id = ?", businessID)

	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company_name) LIKE ?",
			like, like, like,
		)
	}

	if filter.PageToken != "" {
		cursor, err := decodeCursor(filter.PageToken)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.createdAt, cursor.createdAt, cursor.id,
		)
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 25
	}

	var clients []*domain.Client
	err := tx.Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repository) UpdateFields(ctx context.Context, businessID, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(fields).Error
}

func (r *repository) Delete(ctx context.Context, businessID, id snowflake.ID) error {
	res := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, id).
		Delete(&domain.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) CountByBusiness(ctx context.Context, businessID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("business_id = ?", businessID).
		Count(&count).Error
	return count, err
}

type cursorKey struct {
	id        snowflake.ID
	createdAt time.Time
}

func decodeCursor(token string) (*cursorKey, error) {
	raw, err := pagination.DecodeCursor(token)
	if err != nil {
		return nil, err
	}
	id, err := snowflake.ParseString(raw.ID)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, raw.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cursorKey{id: id, createdAt: createdAt}, nil
}

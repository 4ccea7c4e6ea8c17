package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/internal/invoice/domain"
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

func (r *repository) Create(ctx context.Context, invoice domain.Invoice) error {
	return r.db.WithContext(ctx).Create(&invoice).Error
}

func (r *repository) FindByID(ctx context.Context, businessID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&invoice, "business_id = ? AND id = ?", businessID, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repository) List(ctx context.Context, businessID snowflake.ID, filter domain.ListInvoicesFilter) ([]*domain.Invoice, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("business_id = ?", businessID)

	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ClientID != 0 {
		tx = tx.Where("client_id = ?", filter.ClientID)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(invoice_number) LIKE ? OR LOWER(title) LIKE ?", like, like)
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

	var invoices []*domain.Invoice
	err := tx.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).
		Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID snowflake.ID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC, id DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repository) UpdateFields(ctx context.Context, businessID, id snowflake.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("business_id = ? AND id = ?", businessID, id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) ReplaceItems(ctx context.Context, invoiceID snowflake.ID, items []domain.InvoiceItem) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("invoice_id = ?", invoiceID).Delete(&domain.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *repository) Delete(ctx context.Context, businessID, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice domain.Invoice
		err := tx.First(&invoice, "business_id = ? AND id = ?", businessID, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&domain.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}

func (r *repository) NextNumber(ctx context.Context, businessID snowflake.ID) (int64, error) {
	tx := r.db.WithContext(ctx)

	res := tx.Model(&domain.InvoiceSequence{}).
		Where("business_id = ?", businessID).
		Updates(map[string]any{
			"counter":    gorm.Expr("counter + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		seq := domain.InvoiceSequence{
			BusinessID: businessID,
			Counter:    1,
			UpdatedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}

	var seq domain.InvoiceSequence
	if err := tx.First(&seq, "business_id = ?", businessID).Error; err != nil {
		return 0, err
	}
	return seq.Counter, nil
}

func (r *repository) MarkOverdue(ctx context.Context, businessID snowflake.ID, asOf time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("business_id = ? AND status IN ? AND due_date < ?",
			businessID, []string{domain.StatusSent, domain.StatusViewed}, asOf).
		Updates(map[string]any{
			"status":     domain.StatusOverdue,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) CountByBusiness(ctx context.Context, businessID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
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

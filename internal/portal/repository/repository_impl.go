package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	"github.com/smallbiznis/invoys/internal/portal/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) CreateGrant(ctx context.Context, grant domain.ClientPortalAccess) error {
	return r.db.WithContext(ctx).Create(&grant).Error
}

func (r *repository) DeleteGrant(ctx context.Context, businessID, grantID snowflake.ID) error {
	res := r.db.WithContext(ctx).
		Where("business_id = ? AND id = ?", businessID, grantID).
		Delete(&domain.ClientPortalAccess{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) ListGrantsByBusiness(ctx context.Context, businessID snowflake.ID) ([]domain.ClientPortalAccess, error) {
	var grants []domain.ClientPortalAccess
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *repository) ListGrantsByEmail(ctx context.Context, email string) ([]domain.ClientPortalAccess, error) {
	var grants []domain.ClientPortalAccess
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *repository) ListInvoicesByEmail(ctx context.Context, email string) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	err := r.db.WithContext(ctx).Raw(
		`SELECT i.*
		 FROM invoices i
		 JOIN client_portal_access g
		   ON g.business_id = i.business_id AND g.client_id = i.client_id
		 WHERE g.email = ?
		 ORDER BY i.created_at DESC, i.id DESC`,
		email,
	).Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repository) FindInvoiceForEmail(ctx context.Context, email string, invoiceID snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := r.db.WithContext(ctx).Raw(
		`SELECT i.*
		 FROM invoices i
		 JOIN client_portal_access g
		   ON g.business_id = i.business_id AND g.client_id = i.client_id
		 WHERE g.email = ? AND i.id = ?
		 LIMIT 1`,
		email, invoiceID,
	).Scan(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, domain.ErrAccessDenied
	}
	return &invoice, nil
}

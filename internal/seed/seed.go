package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/invoys/internal/auth/domain"
	"github.com/smallbiznis/invoys/internal/auth/password"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	"gorm.io/gorm"
)

const (
	defaultBusinessName = "Main"
	defaultBusinessSlug = "main"
	defaultAdminEmail   = "admin@invoys.local"
	defaultAdminSecret  = "admin"
	defaultAdminDisplay = "Invoys Admin"
)

// EnsureDefaultBusinessAndAdmin seeds a business and a system admin account
// so a fresh self-hosted install is usable immediately. Existing rows are
// left alone.
func EnsureDefaultBusinessAndAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		business, err := ensureDefaultBusinessTx(ctx, tx, node)
		if err != nil {
			return err
		}
		user, err := ensureAdminUserTx(ctx, tx, node)
		if err != nil {
			return err
		}
		return ensureMembershipTx(ctx, tx, node, business.ID, user.ID)
	})
}

func ensureDefaultBusinessTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*businessdomain.Business, error) {
	var business businessdomain.Business
	err := tx.WithContext(ctx).Where("slug = ?", defaultBusinessSlug).First(&business).Error
	if err == nil {
		return &business, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	business = businessdomain.Business{
		ID:                  node.Generate(),
		Name:                defaultBusinessName,
		Slug:                defaultBusinessSlug,
		Email:               strings.ToLower(defaultAdminEmail),
		DefaultCurrency:     "USD",
		DefaultPaymentTerms: "30 days",
		InvoicePrefix:       "INV",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := tx.WithContext(ctx).Create(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func ensureAdminUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (*authdomain.User, error) {
	var user authdomain.User
	err := tx.WithContext(ctx).Where("email = ?", defaultAdminEmail).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(defaultAdminSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user = authdomain.User{
		ID:           node.Generate(),
		Email:        strings.ToLower(defaultAdminEmail),
		DisplayName:  defaultAdminDisplay,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	profile := authdomain.Profile{
		UserID:        user.ID,
		FullName:      defaultAdminDisplay,
		IsSystemAdmin: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := tx.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ensureMembershipTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, businessID, userID snowflake.ID) error {
	var member businessdomain.BusinessUser
	err := tx.WithContext(ctx).
		Where("business_id = ? AND user_id = ?", businessID, userID).
		First(&member).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member = businessdomain.BusinessUser{
		ID:         node.Generate(),
		BusinessID: businessID,
		UserID:     userID,
		Role:       businessdomain.RoleAdmin,
		CreatedAt:  time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&member).Error
}

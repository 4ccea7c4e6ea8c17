package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/invoys/internal/business/domain"
	"github.com/smallbiznis/invoys/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	genID    *snowflake.Node
	defaults *config.InvoiceDefaultsHolder
}

func NewService(db *gorm.DB, log *zap.Logger, repo domain.Repository, genID *snowflake.Node, defaults *config.InvoiceDefaultsHolder) domain.Service {
	return &service{
		db:       db,
		log:      log.Named("business.service"),
		repo:     repo,
		genID:    genID,
		defaults: defaults,
	}
}

func (s *service) Onboard(ctx context.Context, userID snowflake.ID, req domain.OnboardRequest) (*domain.Business, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	fallback := s.defaults.Current()
	currency := strings.ToUpper(strings.TrimSpace(req.DefaultCurrency))
	if currency == "" {
		currency = fallback.Currency
	}
	paymentTerms := strings.TrimSpace(req.DefaultPaymentTerms)
	if paymentTerms == "" {
		paymentTerms = fallback.PaymentTerms
	}
	prefix := strings.ToUpper(strings.TrimSpace(req.InvoicePrefix))
	if prefix == "" {
		prefix = fallback.Prefix
	}

	now := time.Now().UTC()
	business := domain.Business{
		ID:                  s.genID.Generate(),
		Name:                name,
		Slug:                slug.Make(name),
		Email:               email,
		Phone:               strings.TrimSpace(req.Phone),
		Address:             strings.TrimSpace(req.Address),
		DefaultCurrency:     currency,
		DefaultPaymentTerms: paymentTerms,
		InvoicePrefix:       prefix,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, business); err != nil {
			return err
		}
		return repo.AddMember(ctx, domain.BusinessUser{
			ID:         s.genID.Generate(),
			BusinessID: business.ID,
			UserID:     userID,
			Role:       domain.RoleAdmin,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("business onboarded",
		zap.String("business_id", business.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return &business, nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Business, error) {
	if id == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Business, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) IsMember(ctx context.Context, businessID, userID snowflake.ID) (bool, error) {
	if businessID == 0 || userID == 0 {
		return false, nil
	}
	return s.repo.IsMember(ctx, businessID, userID)
}

func (s *service) Update(ctx context.Context, id snowflake.ID, update domain.UpdateBusinessRequest) (*domain.Business, error) {
	if id == 0 {
		return nil, domain.ErrInvalidBusiness
	}

	if update.Email != nil {
		if _, err := mail.ParseAddress(strings.TrimSpace(*update.Email)); err != nil {
			return nil, domain.ErrInvalidEmail
		}
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.ErrInvalidName
	}

	fields := update.Fields()

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoys/internal/client/domain"
	"github.com/smallbiznis/invoys/pkg/db/pagination"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("client.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, businessID snowflake.ID, req domain.CreateClientRequest) (*domain.Client, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.ErrInvalidEmail
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(req.PreferredCurrency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:                s.genID.Generate(),
		BusinessID:        businessID,
		Name:              name,
		Email:             email,
		Phone:             strings.TrimSpace(req.Phone),
		CompanyName:       strings.TrimSpace(req.CompanyName),
		Address:           strings.TrimSpace(req.Address),
		Notes:             strings.TrimSpace(req.Notes),
		PreferredCurrency: currency,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.log.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("business_id", businessID.String()),
	)
	return &client, nil
}

func (s *service) Get(ctx context.Context, businessID, id snowflake.ID) (*domain.Client, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	return s.repo.FindByID(ctx, businessID, id)
}

func (s *service) List(ctx context.Context, businessID snowflake.ID, filter domain.ListClientsFilter) ([]*domain.Client, pagination.PageInfo, error) {
	if businessID == 0 {
		return nil, pagination.PageInfo{}, domain.ErrInvalidBusiness
	}

	clients, err := s.repo.List(ctx, businessID, filter)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 25
	}
	page, pageInfo := pagination.BuildCursorPageInfo(clients, limit, func(c *domain.Client) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        c.ID.String(),
			CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	return page, pageInfo, nil
}

func (s *service) Update(ctx context.Context, businessID, id snowflake.ID, update domain.UpdateClientRequest) (*domain.Client, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}

	fields := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = strings.TrimSpace(*value)
		}
	}
	set("phone", update.Phone)
	set("company_name", update.CompanyName)
	set("address", update.Address)
	set("notes", update.Notes)

	if update.PreferredCurrency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*update.PreferredCurrency))
		if currency == "" {
			currency = "USD"
		}
		fields["preferred_currency"] = currency
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return nil, domain.ErrInvalidEmail
			}
		}
		fields["email"] = email
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, businessID, id, fields); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, businessID, id)
}

func (s *service) Delete(ctx context.Context, businessID, id snowflake.ID) error {
	if businessID == 0 {
		return domain.ErrInvalidBusiness
	}
	if err := s.repo.Delete(ctx, businessID, id); err != nil {
		return err
	}
	s.log.Info("client deleted",
		zap.String("client_id", id.String()),
		zap.String("business_id", businessID.String()),
	)
	return nil
}

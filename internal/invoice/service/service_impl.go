package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	"github.com/smallbiznis/invoys/internal/config"
	"github.com/smallbiznis/invoys/internal/invoice/domain"
	"github.com/smallbiznis/invoys/pkg/db"
	"github.com/smallbiznis/invoys/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	clients  clientdomain.Repository
	business businessdomain.Service
	defaults *config.InvoiceDefaultsHolder
	genID    *snowflake.Node
}

func NewService(
	db *gorm.DB,
	log *zap.Logger,
	repo domain.Repository,
	clients clientdomain.Repository,
	business businessdomain.Service,
	defaults *config.InvoiceDefaultsHolder,
	genID *snowflake.Node,
) domain.Service {
	return &service{
		db:       db,
		log:      log.Named("invoice.service"),
		repo:     repo,
		clients:  clients,
		business: business,
		defaults: defaults,
		genID:    genID,
	}
}

func (s *service) buildItems(invoiceID snowflake.ID, inputs []domain.ItemInput) ([]domain.InvoiceItem, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrNoItems
	}

	items := make([]domain.InvoiceItem, 0, len(inputs))
	for i, input := range inputs {
		description := strings.TrimSpace(input.Description)
		if description == "" || input.Quantity <= 0 || input.Rate < 0 {
			return nil, domain.ErrInvalidItem
		}
		items = append(items, domain.InvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			Description: description,
			Quantity:    input.Quantity,
			Rate:        input.Rate,
			Amount:      domain.ItemAmount(input.Quantity, input.Rate),
			Position:    i,
		})
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, businessID snowflake.ID, req domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	if req.ClientID == 0 {
		return nil, domain.ErrInvalidClient
	}
	if _, err := s.clients.FindByID(ctx, businessID, req.ClientID); err != nil {
		if err == clientdomain.ErrNotFound {
			return nil, domain.ErrInvalidClient
		}
		return nil, err
	}

	owner, err := s.business.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = owner.DefaultCurrency
	}
	paymentTerms := strings.TrimSpace(req.PaymentTerms)
	if paymentTerms == "" {
		paymentTerms = owner.DefaultPaymentTerms
	}

	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now().UTC()
	}
	dueDate := req.DueDate
	if dueDate.IsZero() {
		dueDate = issueDate.AddDate(0, 0, 30)
	}

	id := s.genID.Generate()
	items, err := s.buildItems(id, req.Items)
	if err != nil {
		return nil, err
	}

	subtotal := domain.Subtotal(items)
	tax := domain.Tax(subtotal, req.TaxRate)
	now := time.Now().UTC()

	invoice := domain.Invoice{
		ID:           id,
		BusinessID:   businessID,
		ClientID:     req.ClientID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Status:       domain.StatusDraft,
		Currency:     currency,
		IssueDate:    issueDate,
		DueDate:      dueDate,
		PaymentTerms: paymentTerms,
		Notes:        strings.TrimSpace(req.Notes),
		TaxRate:      req.TaxRate,
		Amount:       subtotal,
		TaxAmount:    tax,
		TotalAmount:  subtotal + tax,
		Items:        items,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		counter, err := repo.NextNumber(ctx, businessID)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = domain.FormatNumber(owner.InvoicePrefix, counter, s.defaults.Current().NumberWidth)
		return repo.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("business_id", businessID.String()),
	)
	return s.repo.FindByID(ctx, businessID, invoice.ID)
}

func (s *service) Get(ctx context.Context, businessID, id snowflake.ID) (*domain.Invoice, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	return s.repo.FindByID(ctx, businessID, id)
}

func (s *service) List(ctx context.Context, businessID snowflake.ID, filter domain.ListInvoicesFilter) ([]*domain.Invoice, pagination.PageInfo, error) {
	if businessID == 0 {
		return nil, pagination.PageInfo{}, domain.ErrInvalidBusiness
	}

	invoices, err := s.repo.List(ctx, businessID, filter)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 25
	}
	page, pageInfo := pagination.BuildCursorPageInfo(invoices, limit, func(inv *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        inv.ID.String(),
			CreatedAt: inv.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	return page, pageInfo, nil
}

func (s *service) Update(ctx context.Context, businessID, id snowflake.ID, update domain.UpdateInvoiceRequest) (*domain.Invoice, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}

	existing, err := s.repo.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.ClientID != nil {
		if _, err := s.clients.FindByID(ctx, businessID, *update.ClientID); err != nil {
			if err == clientdomain.ErrNotFound {
				return nil, domain.ErrInvalidClient
			}
			return nil, err
		}
		fields["client_id"] = *update.ClientID
	}
	if update.InvoiceNumber != nil {
		number := strings.TrimSpace(*update.InvoiceNumber)
		if number == "" {
			return nil, domain.ErrInvalidNumber
		}
		fields["invoice_number"] = number
	}
	if update.Title != nil {
		fields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		fields["description"] = strings.TrimSpace(*update.Description)
	}
	if update.IssueDate != nil {
		fields["issue_date"] = *update.IssueDate
	}
	if update.DueDate != nil {
		fields["due_date"] = *update.DueDate
	}
	if update.Currency != nil {
		fields["currency"] = strings.ToUpper(strings.TrimSpace(*update.Currency))
	}
	if update.PaymentTerms != nil {
		fields["payment_terms"] = strings.TrimSpace(*update.PaymentTerms)
	}
	if update.Notes != nil {
		fields["notes"] = strings.TrimSpace(*update.Notes)
	}

	taxRate := existing.TaxRate
	if update.TaxRate != nil {
		taxRate = *update.TaxRate
		fields["tax_rate"] = taxRate
	}

	var items []domain.InvoiceItem
	subtotal := existing.Amount
	if update.Items != nil {
		items, err = s.buildItems(id, *update.Items)
		if err != nil {
			return nil, err
		}
		subtotal = domain.Subtotal(items)
		fields["amount"] = subtotal
	}

	if update.Items != nil || update.TaxRate != nil {
		tax := domain.Tax(subtotal, taxRate)
		fields["tax_amount"] = tax
		fields["total_amount"] = subtotal + tax
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if err := repo.UpdateFields(ctx, businessID, id, fields); err != nil {
				return err
			}
			if update.Items != nil {
				return repo.ReplaceItems(ctx, id, items)
			}
			return nil
		})
		if err != nil {
			if update.InvoiceNumber != nil && db.IsDuplicateKeyErr(err) {
				return nil, domain.ErrDuplicateNumber
			}
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, businessID, id)
}

func (s *service) UpdateStatus(ctx context.Context, businessID, id snowflake.ID, status string) (*domain.Invoice, error) {
	if businessID == 0 {
		return nil, domain.ErrInvalidBusiness
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	err := s.repo.UpdateFields(ctx, businessID, id, map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice status updated",
		zap.String("invoice_id", id.String()),
		zap.String("status", status),
	)
	return s.repo.FindByID(ctx, businessID, id)
}

func (s *service) Delete(ctx context.Context, businessID, id snowflake.ID) error {
	if businessID == 0 {
		return domain.ErrInvalidBusiness
	}
	return s.repo.Delete(ctx, businessID, id)
}

func (s *service) RefreshOverdue(ctx context.Context, businessID snowflake.ID, asOf time.Time) error {
	if businessID == 0 {
		return domain.ErrInvalidBusiness
	}
	return s.repo.MarkOverdue(ctx, businessID, asOf)
}

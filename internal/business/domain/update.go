package domain

import (
	"strings"

	"github.com/gosimple/slug"
)

// Fields converts the partial update into column assignments. Values are
// trimmed; currency and prefix are upper-cased; a name change also moves the
// slug. Validation belongs to the caller.
func (r UpdateBusinessRequest) Fields() map[string]any {
	fields := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = strings.TrimSpace(*value)
		}
	}

	set("phone", r.Phone)
	set("address", r.Address)
	set("website", r.Website)
	set("tax_id", r.TaxID)
	set("default_payment_terms", r.DefaultPaymentTerms)

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		fields["name"] = name
		fields["slug"] = slug.Make(name)
	}
	if r.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.DefaultCurrency != nil {
		fields["default_currency"] = strings.ToUpper(strings.TrimSpace(*r.DefaultCurrency))
	}
	if r.InvoicePrefix != nil {
		fields["invoice_prefix"] = strings.ToUpper(strings.TrimSpace(*r.InvoicePrefix))
	}

	return fields
}

// Apply merges the partial update into an in-memory business record.
func (r UpdateBusinessRequest) Apply(b *Business) {
	for column, value := range r.Fields() {
		text, _ := value.(string)
		switch column {
		case "name":
			b.Name = text
		case "slug":
			b.Slug = text
		case "email":
			b.Email = text
		case "phone":
			b.Phone = text
		case "address":
			b.Address = text
		case "website":
			b.Website = text
		case "tax_id":
			b.TaxID = text
		case "default_currency":
			b.DefaultCurrency = text
		case "default_payment_terms":
			b.DefaultPaymentTerms = text
		case "invoice_prefix":
			b.InvoicePrefix = text
		}
	}
}

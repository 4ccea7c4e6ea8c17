package pdf

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
)

const dateLayout = "Jan 2, 2006"

type renderer struct{}

func New() Renderer {
	return &renderer{}
}

func (r *renderer) RenderInvoice(ctx context.Context, business businessdomain.Business, client clientdomain.Client, invoice invoicedomain.Invoice) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	heading := "Invoice " + invoice.InvoiceNumber
	if title := strings.TrimSpace(invoice.Title); title != "" {
		heading = title
	}
	m.AddRow(10,
		text.NewCol(12, heading, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	if description := strings.TrimSpace(invoice.Description); description != "" {
		m.AddRow(8,
			text.NewCol(12, description, props.Text{Size: 10}),
		)
	}

	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.InvoiceNumber, props.Text{Top: 0}),
			text.New("Date of issue: "+invoice.IssueDate.Format(dateLayout), props.Text{Top: 4}),
			text.New("Date due: "+invoice.DueDate.Format(dateLayout), props.Text{Top: 8}),
			text.New("Payment terms: "+invoice.PaymentTerms, props.Text{Top: 12}),
		),
		col.New(6).Add(
			text.New("Status: "+strings.ToUpper(invoice.Status), props.Text{Top: 0, Style: fontstyle.Bold}),
		),
	)

	m.AddRow(40,
		col.New(6).Add(
			text.New(business.Name, props.Text{Style: fontstyle.Bold}),
			text.New(business.Address, props.Text{Top: 5}),
			text.New(business.Email, props.Text{Top: 20}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(client.Name, props.Text{Top: 5}),
			text.New(client.Address, props.Text{Top: 9}),
			text.New(client.Email, props.Text{Top: 25}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, formatMinor(invoice.TotalAmount, invoice.Currency)+" due "+invoice.DueDate.Format(dateLayout), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items {
		m.AddRow(15,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, formatQuantity(item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatMinor(item.Rate, ""), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatMinor(item.Amount, ""), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, formatMinor(invoice.Amount, ""), props.Text{Size: 9, Align: align.Right}),
	)
	if invoice.TaxAmount != 0 {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Tax", props.Text{Size: 9}),
			text.NewCol(2, formatMinor(invoice.TaxAmount, ""), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, formatMinor(invoice.TotalAmount, invoice.Currency), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if notes := strings.TrimSpace(invoice.Notes); notes != "" {
		m.AddRow(25,
			text.NewCol(12, notes, props.Text{Size: 9, Top: 5}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateReceipt(_ context.Context, data ReceiptData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.PharmacyName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Sales Receipt", props.Text{
			Size:  12,
			Align: align.Center,
		}),
	)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Invoice: "+data.InvoiceNumber, props.Text{Top: 0, Size: 9}),
			text.New("Order: "+data.OrderNumber, props.Text{Top: 4, Size: 9}),
			text.New("Date: "+data.IssuedAt, props.Text{Top: 8, Size: 9}),
		),
		col.New(6).Add(
			text.New("Customer: "+data.CustomerName, props.Text{Top: 0, Size: 9}),
			text.New("Served by: "+data.PharmacistName, props.Text{Top: 4, Size: 9}),
			text.New("Payment: "+data.PaymentMethod, props.Text{Top: 8, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	totals := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", data.Subtotal, false},
		{"Tax", data.Tax, false},
		{"Discount", data.Discount, false},
		{"Total", data.Total, true},
		{"Paid", data.AmountPaid, false},
		{"Change", data.ChangeGiven, false},
	}
	for _, row := range totals {
		style := fontstyle.Normal
		if row.bold {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			col.New(8),
			text.NewCol(2, row.label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, row.value, props.Text{Size: 9, Align: align.Right, Style: style}),
		)
	}

	m.AddRow(10,
		text.NewCol(12, "Thank you for your purchase", props.Text{
			Size:  9,
			Align: align.Center,
			Top:   4,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

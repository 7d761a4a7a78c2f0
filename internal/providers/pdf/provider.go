// Package pdf renders printable sale receipts.
package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"
)

// ReceiptData is everything the printed receipt shows. Money fields come in
// preformatted so the renderer stays ignorant of currency rules.
type ReceiptData struct {
	PharmacyName   string
	InvoiceNumber  string
	OrderNumber    string
	IssuedAt       string
	CustomerName   string
	PharmacistName string
	PaymentMethod  string

	Items []ReceiptItem

	Subtotal    string
	Tax         string
	Discount    string
	Total       string
	AmountPaid  string
	ChangeGiven string
}

type ReceiptItem struct {
	Description string
	Qty         int
	UnitPrice   string
	Amount      string
}

type Provider interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

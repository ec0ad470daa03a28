package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enum constants
const (
	PaymentCash        = "Cash"
	PaymentBank        = "Bank"
	PaymentMobileMoney = "Mobile Money"
)

// LineItem is one priced, quantified accessory on an invoice.
// LineTotal is a derived field: it must equal UnitPrice * Quantity whenever it
// is read and is refreshed through Recompute, never edited directly.
type LineItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Recompute refreshes the cached LineTotal from UnitPrice and Quantity.
func (li *LineItem) Recompute() {
	li.LineTotal = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ClientInfo captures who the invoice is for and the commercial terms.
type ClientInfo struct {
	ClientName           string `json:"client_name"`
	Location             string `json:"location,omitempty"`
	Contact              string `json:"contact,omitempty"`
	Date                 string `json:"date"` // YYYY-MM-DD
	MaterialGauge        string `json:"material_gauge"`
	CommissionPercentage int    `json:"commission_percentage"`
	PaymentMethod        string `json:"payment_method"` // Cash, Bank, Mobile Money
}

// Adjustments are the user-entered knobs applied on top of the line items.
// Discount and installation are percentages of the subtotal; transportation
// is an absolute amount.
type Adjustments struct {
	DiscountPercentage     decimal.Decimal `json:"discount_percentage"`
	TransportationCost     decimal.Decimal `json:"transportation_cost"`
	InstallationPercentage decimal.Decimal `json:"installation_percentage"`
}

// Totals is entirely derived from line items, adjustments and tax rates.
type Totals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	NihilTax           decimal.Decimal `json:"nihil"`
	GetFundTax         decimal.Decimal `json:"get_fund"`
	CovidTax           decimal.Decimal `json:"covid"`
	VatTax             decimal.Decimal `json:"vat"`
	DiscountAmount     decimal.Decimal `json:"discount"`
	TransportationCost decimal.Decimal `json:"transportation"`
	InstallationAmount decimal.Decimal `json:"installation"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
}

// InvoiceRecord is a saved proforma invoice. ID and CreatedAt are assigned at
// first save and never change; Totals is the snapshot taken at save time.
type InvoiceRecord struct {
	ID         string     `json:"id"`
	ClientInfo ClientInfo `json:"client_info"`
	LineItems  []LineItem `json:"line_items"`
	Totals     Totals     `json:"totals"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Clone returns a deep copy so callers can hand out working copies without
// aliasing the stored record's line-item slice.
func (r InvoiceRecord) Clone() InvoiceRecord {
	cp := r
	cp.LineItems = CloneLineItems(r.LineItems)
	return cp
}

// CloneLineItems deep-copies a line-item slice.
func CloneLineItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	cp := make([]LineItem, len(items))
	copy(cp, items)
	return cp
}

package service

import (
	"github.com/shopspring/decimal"

	"proforma/internal/model"
)

var oneHundred = decimal.NewFromInt(100)

// CalculateTotals derives the full tax and total breakdown from line items,
// adjustments and the configured levy rates. Pure: no side effects, defined
// for an empty line-item list (everything is zero), deterministic for
// identical inputs, and order-independent over the line items.
//
// Each statutory levy applies to the subtotal independently; they are never
// compounded on each other. Amounts keep full precision here; rounding to
// two decimals happens only at presentation time.
func CalculateTotals(lineItems []model.LineItem, adj model.Adjustments, rates model.TaxRates) model.Totals {
	subtotal := decimal.Zero
	for _, item := range lineItems {
		subtotal = subtotal.Add(item.LineTotal)
	}

	discount := subtotal.Mul(adj.DiscountPercentage).Div(oneHundred)
	installation := subtotal.Mul(adj.InstallationPercentage).Div(oneHundred)

	totals := model.Totals{
		Subtotal:           subtotal,
		NihilTax:           subtotal.Mul(rates.Nihil).Div(oneHundred),
		GetFundTax:         subtotal.Mul(rates.GetFund).Div(oneHundred),
		CovidTax:           subtotal.Mul(rates.Covid).Div(oneHundred),
		VatTax:             subtotal.Mul(rates.Vat).Div(oneHundred),
		DiscountAmount:     discount,
		TransportationCost: adj.TransportationCost,
		InstallationAmount: installation,
	}

	totals.GrandTotal = subtotal.
		Add(totals.NihilTax).
		Add(totals.GetFundTax).
		Add(totals.CovidTax).
		Add(totals.VatTax).
		Add(totals.TransportationCost).
		Add(totals.InstallationAmount).
		Sub(totals.DiscountAmount)

	return totals
}

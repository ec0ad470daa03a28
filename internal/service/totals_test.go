package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"proforma/internal/model"
)

func lineItem(id, name string, unitPrice float64, qty int) model.LineItem {
	item := model.LineItem{
		ID:        id,
		Name:      name,
		UnitPrice: decimal.NewFromFloat(unitPrice),
		Quantity:  qty,
	}
	item.Recompute()
	return item
}

func adjustments(discount, transport, installation float64) model.Adjustments {
	return model.Adjustments{
		DiscountPercentage:     decimal.NewFromFloat(discount),
		TransportationCost:     decimal.NewFromFloat(transport),
		InstallationPercentage: decimal.NewFromFloat(installation),
	}
}

func TestLineItemRecompute(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice float64
		quantity  int
		want      string
	}{
		{"unit quantity", 142.5, 1, "142.50"},
		{"multiple units", 12.75, 4, "51.00"},
		{"zero price", 0, 10, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := lineItem("acc1", "X", tt.unitPrice, tt.quantity)
			assert.Equal(t, tt.want, item.LineTotal.StringFixed(2))
		})
	}
}

func TestCalculateTotals_EmptyList(t *testing.T) {
	totals := CalculateTotals(nil, adjustments(0, 0, 0), model.DefaultTaxRates())

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.NihilTax.IsZero())
	assert.True(t, totals.GetFundTax.IsZero())
	assert.True(t, totals.CovidTax.IsZero())
	assert.True(t, totals.VatTax.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestCalculateTotals_ZeroAdjustments(t *testing.T) {
	items := []model.LineItem{
		lineItem("acc1", "A", 10, 2),
		lineItem("acc2", "B", 5, 1),
	}

	totals := CalculateTotals(items, adjustments(0, 0, 0), model.TaxRates{})

	// With zero rates and zero adjustments the grand total is the subtotal.
	assert.Equal(t, "25.00", totals.Subtotal.StringFixed(2))
	assert.True(t, totals.GrandTotal.Equal(totals.Subtotal))
}

func TestCalculateTotals_StatutoryScenario(t *testing.T) {
	items := []model.LineItem{
		lineItem("acc1", "A", 10, 2),
		lineItem("acc2", "B", 5, 1),
		lineItem("acc3", "C", 20, 3),
	}

	totals := CalculateTotals(items, adjustments(10, 15, 5), model.DefaultTaxRates())

	assert.Equal(t, "85.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "2.125", totals.NihilTax.String())
	assert.Equal(t, "2.125", totals.GetFundTax.String())
	assert.Equal(t, "0.85", totals.CovidTax.String())
	assert.Equal(t, "12.75", totals.VatTax.String())
	assert.Equal(t, "8.50", totals.DiscountAmount.StringFixed(2))
	assert.Equal(t, "15.00", totals.TransportationCost.StringFixed(2))
	assert.Equal(t, "4.25", totals.InstallationAmount.StringFixed(2))
	assert.Equal(t, "113.60", totals.GrandTotal.StringFixed(2))
}

func TestCalculateTotals_OrderIndependent(t *testing.T) {
	a := []model.LineItem{
		lineItem("acc1", "A", 10, 2),
		lineItem("acc2", "B", 5, 1),
		lineItem("acc3", "C", 20, 3),
	}
	b := []model.LineItem{a[2], a[0], a[1]}

	adj := adjustments(10, 15, 5)
	rates := model.DefaultTaxRates()
	totalsA := CalculateTotals(a, adj, rates)
	totalsB := CalculateTotals(b, adj, rates)

	assert.True(t, totalsA.Subtotal.Equal(totalsB.Subtotal))
	assert.True(t, totalsA.GrandTotal.Equal(totalsB.GrandTotal))
}

func TestCalculateTotals_ConfiguredRates(t *testing.T) {
	items := []model.LineItem{lineItem("acc1", "A", 100, 1)}
	rates := model.TaxRates{
		Nihil:   decimal.NewFromInt(5),
		GetFund: decimal.NewFromInt(0),
		Covid:   decimal.NewFromInt(0),
		Vat:     decimal.NewFromInt(10),
	}

	totals := CalculateTotals(items, adjustments(0, 0, 0), rates)

	assert.Equal(t, "5.00", totals.NihilTax.StringFixed(2))
	assert.Equal(t, "0.00", totals.GetFundTax.StringFixed(2))
	assert.Equal(t, "10.00", totals.VatTax.StringFixed(2))
	assert.Equal(t, "115.00", totals.GrandTotal.StringFixed(2))
}

package model

import "github.com/shopspring/decimal"

// Accessory is a catalog entry the user can add to an invoice. Adding a
// catalog entry that is already on the invoice is filtered out at the add
// step, so line-item ids stay unique within an invoice.
type Accessory struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// AccessoryCatalog returns the priced roofing accessories offered for sale.
func AccessoryCatalog() []Accessory {
	return []Accessory{
		{ID: "acc1", Name: "MB HIPCAP WRINKLING", UnitPrice: decimal.NewFromFloat(142.5)},
		{ID: "acc2", Name: "MB RAINGUTTER WRINKLING", UnitPrice: decimal.NewFromFloat(141.0)},
		{ID: "acc3", Name: "ROOF SHEET STANDARD", UnitPrice: decimal.NewFromFloat(185.75)},
		{ID: "acc4", Name: "RIDGE CAP STANDARD", UnitPrice: decimal.NewFromFloat(95.25)},
		{ID: "acc5", Name: "VALLEY GUTTER", UnitPrice: decimal.NewFromFloat(120.0)},
		{ID: "acc6", Name: "FLASHING STRIP", UnitPrice: decimal.NewFromFloat(65.5)},
		{ID: "acc7", Name: "FASTENERS PACK", UnitPrice: decimal.NewFromFloat(45.0)},
		{ID: "acc8", Name: "SEALANT TUBE", UnitPrice: decimal.NewFromFloat(12.75)},
	}
}

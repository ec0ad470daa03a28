package model

import "github.com/shopspring/decimal"

// CompanyProfile is the letterhead block printed on exported invoices.
type CompanyProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
	Website     string `json:"website"`
}

// TaxRates holds the four statutory levy rates as percentages of the subtotal.
// The levies apply to the subtotal independently, never compounded on each other.
type TaxRates struct {
	Nihil   decimal.Decimal `json:"nihil"`
	GetFund decimal.Decimal `json:"get_fund"`
	Covid   decimal.Decimal `json:"covid"`
	Vat     decimal.Decimal `json:"vat"`
}

// Settings is the process-wide configuration. There is exactly one instance,
// loaded at startup and replaced whole through the settings store's update.
type Settings struct {
	CompanyProfile       CompanyProfile `json:"company_profile"`
	DefaultMaterialGauge string         `json:"default_material_gauge"`
	DefaultTaxRates      TaxRates       `json:"default_tax_rates"`
}

// DefaultTaxRates is the statutory configuration used until the owner changes
// it: NIHIL 2.5%, GETFund 2.5%, COVID-19 1%, VAT 15%.
func DefaultTaxRates() TaxRates {
	return TaxRates{
		Nihil:   decimal.NewFromFloat(2.5),
		GetFund: decimal.NewFromFloat(2.5),
		Covid:   decimal.NewFromInt(1),
		Vat:     decimal.NewFromInt(15),
	}
}

// DefaultSettings seeds the configuration on first run.
func DefaultSettings() Settings {
	return Settings{
		CompanyProfile: CompanyProfile{
			Name:        "ABC Roofing Ltd.",
			Description: "Dealers in all kinds of roofing sheets",
			Location:    "123 Industrial Ave, Accra, Ghana",
			Contact:     "+233 123 456 7890",
			Website:     "www.abcroofing.com",
		},
		DefaultMaterialGauge: "0.30 MSL ALUZINC WRINKLINK",
		DefaultTaxRates:      DefaultTaxRates(),
	}
}

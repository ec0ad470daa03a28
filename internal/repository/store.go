package repository

import "proforma/internal/model"

// Blob keys for the three independently persisted collections.
const (
	KeyInvoices  = "invoices"
	KeyTemplates = "invoiceTemplates"
	KeySettings  = "settings"
)

// Store is the persistence port behind the in-memory stores. Each collection
// is loaded whole at startup and rewritten whole on every mutation
// (overwrite-on-write, last writer wins). Implementations must not be assumed
// durable by the time a Save call returns.
type Store interface {
	LoadInvoices() ([]model.InvoiceRecord, error)
	SaveInvoices(records []model.InvoiceRecord) error

	LoadTemplates() ([]model.InvoiceTemplate, error)
	SaveTemplates(templates []model.InvoiceTemplate) error

	// LoadSettings returns (nil, nil) when no settings blob has been
	// persisted yet; callers fall back to the seed configuration.
	LoadSettings() (*model.Settings, error)
	SaveSettings(settings model.Settings) error
}

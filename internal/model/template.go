package model

// InvoiceTemplate is a named reusable seed of client info plus line items.
// It carries no totals and no creation timestamp: a template is not a
// financial record and is never submitted for tax computation directly.
type InvoiceTemplate struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ClientInfo ClientInfo `json:"client_info"`
	LineItems  []LineItem `json:"line_items"`
}

// Clone returns a deep copy of the template. Seeding an editing session must
// never alias the stored template's line-item slice, otherwise later in-place
// quantity edits would corrupt the template.
func (t InvoiceTemplate) Clone() InvoiceTemplate {
	cp := t
	cp.LineItems = CloneLineItems(t.LineItems)
	return cp
}

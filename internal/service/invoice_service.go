package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"proforma/internal/model"
	"proforma/internal/repository"
	ws "proforma/internal/websocket"
)

// InvoiceService owns the ordered collection of saved invoices. The in-memory
// collection is authoritative; every mutation writes through to the
// persistence port as a whole.
type InvoiceService interface {
	Create(client model.ClientInfo, lineItems []model.LineItem, adj model.Adjustments) (model.InvoiceRecord, error)
	Update(id string, client model.ClientInfo, lineItems []model.LineItem, adj model.Adjustments) (model.InvoiceRecord, error)
	Remove(id string) (model.InvoiceRecord, error)
	Restore(record model.InvoiceRecord) bool
	Get(id string) (model.InvoiceRecord, error)
	List() []model.InvoiceRecord
	Preview(lineItems []model.LineItem, adj model.Adjustments) model.Totals
}

type invoiceService struct {
	mu        sync.RWMutex
	records   []model.InvoiceRecord
	store     repository.Store
	validator *Validator
	settings  *SettingsService
	hub       *ws.Hub
}

// NewInvoiceService loads the persisted collection into memory. A failed load
// is reported but does not prevent startup: the service begins with an empty
// collection and in-memory state is the source of truth for the session.
func NewInvoiceService(store repository.Store, validator *Validator, settings *SettingsService, hub *ws.Hub) (InvoiceService, error) {
	s := &invoiceService{
		store:     store,
		validator: validator,
		settings:  settings,
		hub:       hub,
	}

	records, err := store.LoadInvoices()
	if err != nil {
		return s, &PersistenceError{Op: "load invoices", Err: err}
	}
	s.records = records
	return s, nil
}

func (s *invoiceService) Create(client model.ClientInfo, lineItems []model.LineItem, adj model.Adjustments) (model.InvoiceRecord, error) {
	if errs := s.validator.Validate(client, lineItems, adj); len(errs) > 0 {
		return model.InvoiceRecord{}, &ValidationError{Fields: errs}
	}

	items := normalizeLineItems(lineItems)
	record := model.InvoiceRecord{
		ID:         uuid.NewString(),
		ClientInfo: client,
		LineItems:  items,
		Totals:     CalculateTotals(items, adj, s.settings.Get().DefaultTaxRates),
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.records = append(s.records, record)
	err := s.persistLocked("create invoice")
	s.mu.Unlock()

	s.hub.Notify(ws.EventInvoiceSaved, record)
	return record.Clone(), err
}

func (s *invoiceService) Update(id string, client model.ClientInfo, lineItems []model.LineItem, adj model.Adjustments) (model.InvoiceRecord, error) {
	if errs := s.validator.Validate(client, lineItems, adj); len(errs) > 0 {
		return model.InvoiceRecord{}, &ValidationError{Fields: errs}
	}

	items := normalizeLineItems(lineItems)
	totals := CalculateTotals(items, adj, s.settings.Get().DefaultTaxRates)

	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.InvoiceRecord{}, fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}

	// Replace in place: id and createdAt survive every edit.
	record := model.InvoiceRecord{
		ID:         s.records[idx].ID,
		ClientInfo: client,
		LineItems:  items,
		Totals:     totals,
		CreatedAt:  s.records[idx].CreatedAt,
	}
	s.records[idx] = record
	err := s.persistLocked("update invoice")
	s.mu.Unlock()

	s.hub.Notify(ws.EventInvoiceUpdated, record)
	return record.Clone(), err
}

func (s *invoiceService) Remove(id string) (model.InvoiceRecord, error) {
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.InvoiceRecord{}, fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}

	removed := s.records[idx]
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	err := s.persistLocked("remove invoice")
	s.mu.Unlock()

	s.hub.Notify(ws.EventInvoiceDeleted, map[string]string{"id": removed.ID})
	return removed.Clone(), err
}

// Restore re-inserts a previously removed record. It is a silent no-op when a
// record with the same id already exists, so an undo arriving after the user
// re-saved under that id cannot resurrect a duplicate.
func (s *invoiceService) Restore(record model.InvoiceRecord) bool {
	s.mu.Lock()
	if s.indexOfLocked(record.ID) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.records = append(s.records, record.Clone())
	err := s.persistLocked("restore invoice")
	s.mu.Unlock()

	if err != nil {
		log.Printf("invoice store: %v", err)
	}
	s.hub.Notify(ws.EventInvoiceRestored, record)
	return true
}

func (s *invoiceService) Get(id string) (model.InvoiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return model.InvoiceRecord{}, fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}
	return s.records[idx].Clone(), nil
}

// List returns a working copy of the collection in stored order.
func (s *invoiceService) List() []model.InvoiceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.InvoiceRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Preview computes the live totals breakdown for an in-progress form without
// touching the collection.
func (s *invoiceService) Preview(lineItems []model.LineItem, adj model.Adjustments) model.Totals {
	items := normalizeLineItems(lineItems)
	return CalculateTotals(items, adj, s.settings.Get().DefaultTaxRates)
}

// --- Helpers ---

func (s *invoiceService) indexOfLocked(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the whole collection through the port. A failed write
// is logged and returned as a *PersistenceError but never rolls back the
// in-memory mutation.
func (s *invoiceService) persistLocked(op string) error {
	if err := s.store.SaveInvoices(s.records); err != nil {
		perr := &PersistenceError{Op: op, Err: err}
		log.Printf("invoice store: %v", perr)
		return perr
	}
	return nil
}

// normalizeLineItems deep-copies the incoming items, drops duplicate ids
// (re-adding a catalog item already on the invoice is a no-op) and refreshes
// each cached line total so the derived-field invariant holds at rest.
func normalizeLineItems(items []model.LineItem) []model.LineItem {
	seen := make(map[string]bool, len(items))
	out := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		item.Recompute()
		out = append(out, item)
	}
	return out
}

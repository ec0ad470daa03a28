package repository

import (
	"sync"

	"proforma/internal/model"
)

// MemoryStore keeps the collection blobs in process memory. Used by tests and
// as a fallback when no durable storage is configured; the stored slices are
// copied on the way in and out so callers never share backing arrays.
type MemoryStore struct {
	mu        sync.Mutex
	invoices  []model.InvoiceRecord
	templates []model.InvoiceTemplate
	settings  *model.Settings

	// FailWrites makes every Save return this error, for exercising the
	// persistence-failure path.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadInvoices() ([]model.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InvoiceRecord, len(s.invoices))
	for i, r := range s.invoices {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *MemoryStore) SaveInvoices(records []model.InvoiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.invoices = make([]model.InvoiceRecord, len(records))
	for i, r := range records {
		s.invoices[i] = r.Clone()
	}
	return nil
}

func (s *MemoryStore) LoadTemplates() ([]model.InvoiceTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InvoiceTemplate, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out, nil
}

func (s *MemoryStore) SaveTemplates(templates []model.InvoiceTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.templates = make([]model.InvoiceTemplate, len(templates))
	for i, t := range templates {
		s.templates[i] = t.Clone()
	}
	return nil
}

func (s *MemoryStore) LoadSettings() (*model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil, nil
	}
	cp := *s.settings
	return &cp, nil
}

func (s *MemoryStore) SaveSettings(settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	cp := settings
	s.settings = &cp
	return nil
}

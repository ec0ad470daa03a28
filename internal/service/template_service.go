package service

import (
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"proforma/internal/model"
	"proforma/internal/repository"
)

// TemplateService manages the named reusable invoice seeds. Templates are
// deliberately lax: beyond a non-empty name they may be entirely incomplete,
// since a template is never submitted for tax computation directly.
type TemplateService struct {
	mu        sync.RWMutex
	templates []model.InvoiceTemplate
	store     repository.Store
}

func NewTemplateService(store repository.Store) (*TemplateService, error) {
	s := &TemplateService{store: store}

	templates, err := store.LoadTemplates()
	if err != nil {
		return s, &PersistenceError{Op: "load templates", Err: err}
	}
	s.templates = templates
	return s, nil
}

// Save appends a new template under a fresh id.
func (s *TemplateService) Save(name string, client model.ClientInfo, lineItems []model.LineItem) (model.InvoiceTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return model.InvoiceTemplate{}, &ValidationError{Fields: FieldErrors{"name": "Template name is required"}}
	}

	tpl := model.InvoiceTemplate{
		ID:         uuid.NewString(),
		Name:       name,
		ClientInfo: client,
		LineItems:  model.CloneLineItems(lineItems),
	}

	s.mu.Lock()
	s.templates = append(s.templates, tpl)
	err := s.persistLocked("save template")
	s.mu.Unlock()

	return tpl.Clone(), err
}

// Remove deletes a template by id. Removing an absent id is a no-op, so the
// operation is idempotent.
func (s *TemplateService) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.templates[:0]
	removed := false
	for _, t := range s.templates {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return nil
	}
	s.templates = kept
	return s.persistLocked("remove template")
}

// Apply returns a deep-copied seed for a new editing session. The stored
// template is untouched; the working copy never aliases its line-item list.
func (s *TemplateService) Apply(id string) (model.ClientInfo, []model.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == id {
			cp := t.Clone()
			return cp.ClientInfo, cp.LineItems, nil
		}
	}
	return model.ClientInfo{}, nil, ErrNotFound
}

// List returns a copy of the stored templates.
func (s *TemplateService) List() []model.InvoiceTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.InvoiceTemplate, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out
}

func (s *TemplateService) persistLocked(op string) error {
	if err := s.store.SaveTemplates(s.templates); err != nil {
		perr := &PersistenceError{Op: op, Err: err}
		log.Printf("template store: %v", perr)
		return perr
	}
	return nil
}

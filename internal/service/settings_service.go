package service

import (
	"log"
	"sync"

	"proforma/internal/model"
	"proforma/internal/repository"
	ws "proforma/internal/websocket"
)

// SettingsService holds the single process-wide configuration. It is seeded
// with defaults on first run and only ever replaced whole: no field-level
// patching, so the configuration can never end up half-updated.
type SettingsService struct {
	mu      sync.RWMutex
	current model.Settings
	store   repository.Store
	hub     *ws.Hub
}

// NewSettingsService loads the persisted settings or falls back to the seed
// configuration. A failed load is reported alongside the usable service.
func NewSettingsService(store repository.Store, hub *ws.Hub) (*SettingsService, error) {
	s := &SettingsService{
		current: model.DefaultSettings(),
		store:   store,
		hub:     hub,
	}

	loaded, err := store.LoadSettings()
	if err != nil {
		return s, &PersistenceError{Op: "load settings", Err: err}
	}
	if loaded != nil {
		s.current = *loaded
	}
	return s, nil
}

// Get returns the current configuration by value.
func (s *SettingsService) Get() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the configuration whole and persists it.
func (s *SettingsService) Update(settings model.Settings) (model.Settings, error) {
	s.mu.Lock()
	s.current = settings
	var err error
	if werr := s.store.SaveSettings(settings); werr != nil {
		err = &PersistenceError{Op: "update settings", Err: werr}
		log.Printf("settings store: %v", err)
	}
	s.mu.Unlock()

	s.hub.Notify(ws.EventSettingsUpdated, settings)
	return settings, err
}

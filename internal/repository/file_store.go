package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"proforma/internal/model"
)

// FileStore persists each collection as a JSON file under a data directory.
// Writes go to a temp file first and are renamed into place so a crash
// mid-write never leaves a truncated collection behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) LoadInvoices() ([]model.InvoiceRecord, error) {
	var records []model.InvoiceRecord
	if err := s.read(KeyInvoices, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *FileStore) SaveInvoices(records []model.InvoiceRecord) error {
	return s.write(KeyInvoices, records)
}

func (s *FileStore) LoadTemplates() ([]model.InvoiceTemplate, error) {
	var templates []model.InvoiceTemplate
	if err := s.read(KeyTemplates, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *FileStore) SaveTemplates(templates []model.InvoiceTemplate) error {
	return s.write(KeyTemplates, templates)
}

func (s *FileStore) LoadSettings() (*model.Settings, error) {
	path := s.path(KeySettings)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	var settings model.Settings
	if err := s.read(KeySettings, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *FileStore) SaveSettings(settings model.Settings) error {
	return s.write(KeySettings, settings)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) read(key string, out interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) write(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}

	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"proforma/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is one persisted collection stored as a JSON payload keyed by name.
// The payload shapes are identical to the file store's, so the two drivers
// are interchangeable behind the Store port.
type Blob struct {
	Key       string `gorm:"primaryKey;type:varchar(50)"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLiteStore persists the three collection blobs in an embedded database.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadInvoices() ([]model.InvoiceRecord, error) {
	var records []model.InvoiceRecord
	if err := s.read(KeyInvoices, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *SQLiteStore) SaveInvoices(records []model.InvoiceRecord) error {
	return s.write(KeyInvoices, records)
}

func (s *SQLiteStore) LoadTemplates() ([]model.InvoiceTemplate, error) {
	var templates []model.InvoiceTemplate
	if err := s.read(KeyTemplates, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *SQLiteStore) SaveTemplates(templates []model.InvoiceTemplate) error {
	return s.write(KeyTemplates, templates)
}

func (s *SQLiteStore) LoadSettings() (*model.Settings, error) {
	var row Blob
	err := s.db.First(&row, "key = ?", KeySettings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeySettings, err)
	}
	var settings model.Settings
	if err := json.Unmarshal(row.Payload, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", KeySettings, err)
	}
	return &settings, nil
}

func (s *SQLiteStore) SaveSettings(settings model.Settings) error {
	return s.write(KeySettings, settings)
}

func (s *SQLiteStore) read(key string, out interface{}) error {
	var row Blob
	err := s.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(row.Payload, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) write(key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	row := Blob{Key: key, Payload: payload}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

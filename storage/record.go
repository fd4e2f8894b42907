package storage

import (
	"errors"

	"storefront/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordStore keeps the cart as a single row of the kv_records table. It
// works over any gorm dialect; the storefront uses SQLite locally and
// Postgres when configured.
type RecordStore struct {
	failures
	db  *gorm.DB
	key string
}

func NewRecordStore(db *gorm.DB, key string) *RecordStore {
	if key == "" {
		key = DefaultKey
	}
	return &RecordStore{db: db, key: key}
}

// Load returns the stored items. A missing row or an undecodable value yields
// an empty list.
func (s *RecordStore) Load() []models.LineItem {
	var record models.Record
	err := s.db.Where("record_key = ?", s.key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.LineItem{}
	}
	if err != nil {
		s.report("load", s.key, err)
		return []models.LineItem{}
	}

	items, err := Decode([]byte(record.Value))
	if err != nil {
		s.report("load", s.key, err)
		return []models.LineItem{}
	}
	return items
}

// Save overwrites the stored record with the full item list.
func (s *RecordStore) Save(items []models.LineItem) {
	data, err := Encode(items)
	if err != nil {
		s.report("save", s.key, err)
		return
	}

	record := models.Record{Key: s.key, Value: string(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		s.report("save", s.key, err)
	}
}

// Erase removes the record entirely.
func (s *RecordStore) Erase() {
	if err := s.db.Where("record_key = ?", s.key).Delete(&models.Record{}).Error; err != nil {
		s.report("erase", s.key, err)
	}
}

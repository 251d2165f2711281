package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the row layout of the GORM backend.
type Entry struct {
	Key   string `gorm:"column:entry_key;primaryKey;type:varchar(255)"`
	Value string `gorm:"column:entry_value;type:text"`
}

func (Entry) TableName() string { return "kv_entries" }

// GORMBackend stores entries in a single SQL table.
type GORMBackend struct {
	db *gorm.DB
}

// NewGORMBackend migrates the entry table and returns the backend.
func NewGORMBackend(db *gorm.DB) (*GORMBackend, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &GORMBackend{db: db}, nil
}

func (g *GORMBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := g.db.WithContext(ctx).First(&e, "entry_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Set upserts so repeated writes keep last-write-wins semantics.
func (g *GORMBackend) Set(ctx context.Context, key, value string) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
}

func (g *GORMBackend) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&Entry{}, "entry_key = ?", key).Error
}

func (g *GORMBackend) Clear(ctx context.Context, prefix string) error {
	tx := g.db.WithContext(ctx)
	if prefix == "" {
		return tx.Where("1 = 1").Delete(&Entry{}).Error
	}
	// SUBSTR avoids LIKE, whose wildcards collide with '_' in keys.
	return tx.Where("SUBSTR(entry_key, 1, ?) = ?", len(prefix), prefix).Delete(&Entry{}).Error
}

package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the registry tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Batch{}, &Record{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// GetOrCreateBatch resolves a batch by its unique name, creating it if
// absent. The unique index on batches.name guarantees that concurrent
// callers cannot produce duplicates; the loser of that race fails its
// transaction rather than inserting a second row.
func GetOrCreateBatch(tx *gorm.DB, name string) (Batch, error) {
	if name == "" {
		return Batch{}, fmt.Errorf("batch name is required")
	}

	var batch Batch
	err := tx.Where(Batch{Name: name}).FirstOrCreate(&batch).Error
	if err != nil {
		return Batch{}, fmt.Errorf("failed to resolve batch %q: %w", name, err)
	}
	return batch, nil
}

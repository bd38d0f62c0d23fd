package dashboard

import (
	"context"
	"fmt"

	"voter-registry/feature/registry/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Stats holds the aggregate counts shown on the dashboard.
type Stats struct {
	TotalRecords int64 `json:"total_records"`
	TotalBatches int64 `json:"total_batches"`
	FriendCount  int64 `json:"friend_count"`
	EnemyCount   int64 `json:"enemy_count"`
}

// Service computes dashboard statistics.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new dashboard service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// GetStats returns the aggregate counts over the whole store.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Record{}).Count(&stats.TotalRecords).Error; err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if err := db.Model(&models.Batch{}).Count(&stats.TotalBatches).Error; err != nil {
		return nil, fmt.Errorf("failed to count batches: %w", err)
	}
	if err := db.Model(&models.Record{}).
		Where("relationship_status = ?", "Friend").
		Count(&stats.FriendCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count friends: %w", err)
	}
	if err := db.Model(&models.Record{}).
		Where("relationship_status = ?", "Enemy").
		Count(&stats.EnemyCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count enemies: %w", err)
	}

	return &stats, nil
}

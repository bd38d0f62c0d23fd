package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voter-registry/core/cache"
	"voter-registry/core/storage"
	"voter-registry/feature/registry/models"
	"voter-registry/feature/registry/roll"
	"voter-registry/feature/registry/sync"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns roll ingestion and the cached full-dataset reads.
type Service struct {
	db         *gorm.DB
	cache      cache.Cache
	store      storage.Client
	bucket     string
	logger     *zap.Logger
	parser     *roll.Parser
	reconciler *sync.Reconciler
	cacheTTL   time.Duration
}

// NewService creates a registry service. cache and store may be nil when
// the snapshot cache or the roll archive are not configured.
func NewService(db *gorm.DB, c cache.Cache, store storage.Client, bucket string, logger *zap.Logger, cacheTTL time.Duration) *Service {
	return &Service{
		db:         db,
		cache:      c,
		store:      store,
		bucket:     bucket,
		logger:     logger,
		parser:     roll.NewParser(nil),
		cacheTTL:   cacheTTL,
		reconciler: sync.NewReconciler(db, c, logger),
	}
}

// Reconciler exposes the sync reconciler wired to this service's store and
// cache.
func (s *Service) Reconciler() *sync.Reconciler {
	return s.reconciler
}

// ParseRoll parses raw roll bytes with the given reference date for age
// derivation.
func (s *Service) ParseRoll(payload []byte, ref time.Time) ([]roll.ParsedRecord, []roll.Warning, error) {
	return s.parser.ParseBytes(payload, ref)
}

// Ingest persists one parsed roll under the named batch as a single atomic
// unit: the batch is resolved (or created) by name and all records are
// bulk-inserted with their provenance stamped, or nothing is.
func (s *Service) Ingest(ctx context.Context, batchName, fileName string, records []roll.ParsedRecord) (int, error) {
	if batchName == "" {
		return 0, ErrNoBatchName
	}
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batch, err := models.GetOrCreateBatch(tx, batchName)
		if err != nil {
			return err
		}

		rows := make([]models.Record, 0, len(records))
		for _, pr := range records {
			rec := models.NewRecord()
			rec.BatchID = batch.ID
			rec.FileName = fileName
			rec.SerialNo = pr.SerialNo
			rec.Name = pr.Name
			rec.VoterNo = pr.VoterNo
			rec.FatherName = pr.FatherName
			rec.MotherName = pr.MotherName
			rec.Occupation = pr.Occupation
			rec.BirthDate = pr.BirthDate
			rec.Address = pr.Address
			rec.Age = pr.Age
			rows = append(rows, rec)
		}

		if err := tx.CreateInBatches(&rows, 500).Error; err != nil {
			return fmt.Errorf("failed to persist records: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidateSnapshot(ctx)
	return len(records), nil
}

// IngestRoll parses and ingests one uploaded roll file, archiving the
// original bytes for provenance.
func (s *Service) IngestRoll(ctx context.Context, batchName, fileName string, payload []byte, ref time.Time) (int, []roll.Warning, error) {
	records, warnings, err := s.ParseRoll(payload, ref)
	if err != nil {
		return 0, nil, err
	}

	count, err := s.Ingest(ctx, batchName, fileName, records)
	if err != nil {
		return 0, warnings, err
	}

	s.archiveRoll(ctx, batchName, fileName, payload)
	return count, warnings, nil
}

// archiveRoll stores the original roll bytes under rolls/<batch>/<file>.
// Best effort: archive failure never undoes a committed ingestion.
func (s *Service) archiveRoll(ctx context.Context, batchName, fileName string, payload []byte) {
	if s.store == nil {
		return
	}

	objectName := fmt.Sprintf("rolls/%s/%s", batchName, fileName)
	_, err := s.store.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		s.logger.Warn("Roll archive upload failed",
			zap.String("object", objectName),
			zap.Error(err))
		return
	}
	s.logger.Info("Roll archived", zap.String("object", objectName))
}

// ListRecords returns the full record dataset, reading through the snapshot
// cache: a hit is served as-is, a miss is computed from the store and
// written back.
func (s *Service) ListRecords(ctx context.Context) ([]models.Record, error) {
	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, cache.RecordsKey)
		if err != nil {
			s.logger.Warn("Snapshot cache read failed", zap.Error(err))
		} else if ok {
			var records []models.Record
			if err := json.Unmarshal([]byte(raw), &records); err == nil {
				return records, nil
			}
			// A corrupt snapshot falls through to the store.
			s.logger.Warn("Discarding undecodable snapshot", zap.String("key", cache.RecordsKey))
		}
	}

	var records []models.Record
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := s.cache.Set(ctx, cache.RecordsKey, string(data), s.cacheTTL); err != nil {
				s.logger.Warn("Snapshot cache write failed", zap.Error(err))
			}
		}
	}

	return records, nil
}

// ListBatches returns all batches, newest first.
func (s *Service) ListBatches(ctx context.Context) ([]models.Batch, error) {
	var batches []models.Batch
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to load batches: %w", err)
	}
	return batches, nil
}

func (s *Service) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.RecordsKey); err != nil {
		s.logger.Warn("Snapshot cache invalidation failed",
			zap.String("key", cache.RecordsKey),
			zap.Error(err))
	}
}

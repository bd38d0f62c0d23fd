package sync

import (
	"context"
	"errors"
	"fmt"

	"voter-registry/core/cache"
	"voter-registry/feature/registry/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Request carries one client-submitted batch of offline operations. The
// client may have been working from a stale full-dataset snapshot; the
// reconciler applies its operations against the authoritative store as one
// atomic unit.
type Request struct {
	Created []models.RecordPatch `json:"created"`
	Updated []models.RecordPatch `json:"updated"`
	Deleted []uint               `json:"deleted"`
}

// Result reports per-category counts for one reconciliation.
// Skipped counts updates whose record no longer exists and creates
// de-duplicated by voter number, so callers can detect drift.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
}

var (
	// ErrEmptyRequest means the request carried no operations at all.
	ErrEmptyRequest = errors.New("sync request contains no operations")
	// ErrConflictingOps means an identifier appears in both the update and
	// delete lists, which violates the client contract.
	ErrConflictingOps = errors.New("identifier present in both update and delete lists")
	// ErrInvalidRecord means a create entry failed schema validation.
	ErrInvalidRecord = errors.New("invalid record")
)

// Reconciler merges offline create/update/delete batches into the store.
type Reconciler struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.Logger
}

// NewReconciler creates a reconciler. cache may be nil when no snapshot
// cache is configured.
func NewReconciler(db *gorm.DB, c cache.Cache, logger *zap.Logger) *Reconciler {
	return &Reconciler{db: db, cache: c, logger: logger}
}

// Reconcile applies the request inside one transaction: either the whole
// create/update/delete triple commits or none of it does. Batch-name
// references are resolved once per call through the same get-or-create rule
// as ingestion. After a successful commit the full-dataset snapshot is
// invalidated exactly once; invalidation failure is logged, never fatal.
func (r *Reconciler) Reconcile(ctx context.Context, req Request) (Result, error) {
	if len(req.Created)+len(req.Updated)+len(req.Deleted) == 0 {
		return Result{}, ErrEmptyRequest
	}
	if err := checkOverlap(req); err != nil {
		return Result{}, err
	}

	var res Result
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Batch names resolve once per call, so two creates naming the
		// same new batch share a single row.
		batches := make(map[string]models.Batch)
		resolve := func(name string) (models.Batch, error) {
			if b, ok := batches[name]; ok {
				return b, nil
			}
			b, err := models.GetOrCreateBatch(tx, name)
			if err != nil {
				return models.Batch{}, err
			}
			batches[name] = b
			return b, nil
		}

		created, skipped, err := r.applyCreates(tx, req.Created, resolve)
		if err != nil {
			return err
		}
		res.Created = created
		res.Skipped += skipped

		updated, skipped, err := r.applyUpdates(tx, req.Updated, resolve)
		if err != nil {
			return err
		}
		res.Updated = updated
		res.Skipped += skipped

		deleted, err := r.applyDeletes(tx, req.Deleted)
		if err != nil {
			return err
		}
		res.Deleted = deleted

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	r.invalidateSnapshot(ctx)
	return res, nil
}

// applyCreates strips client identities, resolves batch references,
// validates, de-duplicates by voter number within the target batch, and
// bulk-inserts the survivors.
func (r *Reconciler) applyCreates(tx *gorm.DB, patches []models.RecordPatch, resolve func(string) (models.Batch, error)) (created, skipped int, err error) {
	var rows []models.Record
	for i, p := range patches {
		rec := models.NewRecord()
		p.Apply(&rec)
		// Any client-assigned placeholder identity is discarded; the store
		// assigns the real one.
		rec.ID = 0

		if p.BatchName != nil && *p.BatchName != "" {
			b, err := resolve(*p.BatchName)
			if err != nil {
				return 0, 0, err
			}
			rec.BatchID = b.ID
		}

		if err := rec.Validate(); err != nil {
			return 0, 0, fmt.Errorf("%w: create entry %d: %v", ErrInvalidRecord, i+1, err)
		}

		// Natural-key de-duplication: a voter number already present in
		// the target batch means this create was applied before.
		if rec.VoterNo != "" {
			var count int64
			if err := tx.Model(&models.Record{}).
				Where("batch_id = ? AND voter_no = ?", rec.BatchID, rec.VoterNo).
				Count(&count).Error; err != nil {
				return 0, 0, fmt.Errorf("duplicate check for voter %s: %w", rec.VoterNo, err)
			}
			if count > 0 {
				skipped++
				continue
			}
		}

		rows = append(rows, rec)
	}

	if len(rows) > 0 {
		if err := tx.CreateInBatches(&rows, 500).Error; err != nil {
			return 0, 0, fmt.Errorf("failed to insert created records: %w", err)
		}
	}
	return len(rows), skipped, nil
}

// applyUpdates loads each record by its authoritative identity and merges
// the supplied fields over it. A missing record is skipped, not fatal: it
// may have been deleted concurrently.
func (r *Reconciler) applyUpdates(tx *gorm.DB, patches []models.RecordPatch, resolve func(string) (models.Batch, error)) (updated, skipped int, err error) {
	for _, p := range patches {
		if p.ID == 0 {
			skipped++
			continue
		}

		var rec models.Record
		if err := tx.First(&rec, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				skipped++
				continue
			}
			return 0, 0, fmt.Errorf("failed to load record %d: %w", p.ID, err)
		}

		if p.BatchName != nil && *p.BatchName != "" {
			b, err := resolve(*p.BatchName)
			if err != nil {
				return 0, 0, err
			}
			rec.BatchID = b.ID
		}

		p.Apply(&rec)

		if err := tx.Save(&rec).Error; err != nil {
			return 0, 0, fmt.Errorf("failed to update record %d: %w", p.ID, err)
		}
		updated++
	}
	return updated, skipped, nil
}

// applyDeletes removes all supplied identifiers in one bulk operation.
// Already-gone identifiers are no-ops, reflected only in the count.
func (r *Reconciler) applyDeletes(tx *gorm.DB, ids []uint) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	out := tx.Where("id IN ?", ids).Delete(&models.Record{})
	if out.Error != nil {
		return 0, fmt.Errorf("failed to delete records: %w", out.Error)
	}
	return int(out.RowsAffected), nil
}

// invalidateSnapshot signals the snapshot cache exactly once per successful
// reconciliation. Best effort: staleness is tolerable, data loss is not.
func (r *Reconciler) invalidateSnapshot(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, cache.RecordsKey); err != nil {
		r.logger.Warn("Snapshot cache invalidation failed",
			zap.String("key", cache.RecordsKey),
			zap.Error(err))
	}
}

func checkOverlap(req Request) error {
	deleted := make(map[uint]bool, len(req.Deleted))
	for _, id := range req.Deleted {
		deleted[id] = true
	}
	for _, p := range req.Updated {
		if p.ID != 0 && deleted[p.ID] {
			return fmt.Errorf("%w: id %d", ErrConflictingOps, p.ID)
		}
	}
	return nil
}

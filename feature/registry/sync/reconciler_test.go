package sync

import (
	"context"
	"testing"

	"voter-registry/core/cache"
	"voter-registry/core/cache/mocks"
	"voter-registry/feature/registry/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func strPtr(s string) *string { return &s }

func TestReconcile_EmptyRequest(t *testing.T) {
	db, _ := setupMockDB(t)
	r := NewReconciler(db, nil, zap.NewNop())

	_, err := r.Reconcile(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrEmptyRequest)
}

func TestReconcile_ConflictingOps(t *testing.T) {
	db, _ := setupMockDB(t)
	r := NewReconciler(db, nil, zap.NewNop())

	req := Request{
		Updated: []models.RecordPatch{{ID: 7, Name: strPtr("X")}},
		Deleted: []uint{7},
	}

	_, err := r.Reconcile(context.Background(), req)
	assert.ErrorIs(t, err, ErrConflictingOps)
}

func TestReconcile_FullTriple(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cacheMock := new(mocks.Cache)
	cacheMock.On("Delete", mock.Anything, cache.RecordsKey).Return(nil).Once()

	r := NewReconciler(db, cacheMock, zap.NewNop())

	sqlMock.ExpectBegin()
	// Create: resolve new batch by name (select miss, then insert)
	sqlMock.ExpectQuery("SELECT (.+) FROM `batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	sqlMock.ExpectExec("INSERT INTO `batches`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	// Create: voter-number duplicate check
	sqlMock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Create: bulk insert
	sqlMock.ExpectExec("INSERT INTO `records`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	// Update id=1: exists
	sqlMock.ExpectQuery("SELECT (.+) FROM `records`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "batch_id", "name"}).AddRow(1, 3, "Old Name"))
	sqlMock.ExpectExec("UPDATE `records`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Update id=99: gone, skipped
	sqlMock.ExpectQuery("SELECT (.+) FROM `records`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// Delete: only one of the two ids still exists
	sqlMock.ExpectExec("DELETE FROM `records`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	req := Request{
		Created: []models.RecordPatch{
			{BatchName: strPtr("BatchA"), Name: strPtr("New Person"), VoterNo: strPtr("1001")},
		},
		Updated: []models.RecordPatch{
			{ID: 1, Name: strPtr("New Name")},
			{ID: 99, Name: strPtr("Ghost")},
		},
		Deleted: []uint{5, 6},
	}

	res, err := r.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, 1, res.Skipped)

	require.NoError(t, sqlMock.ExpectationsWereMet())
	cacheMock.AssertNumberOfCalls(t, "Delete", 1)
}

func TestReconcile_CreateDeduplicatedByVoterNo(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cacheMock := new(mocks.Cache)
	cacheMock.On("Delete", mock.Anything, cache.RecordsKey).Return(nil).Once()

	r := NewReconciler(db, cacheMock, zap.NewNop())

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery("SELECT (.+) FROM `batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "BatchA"))
	// Duplicate check finds an existing record with the same voter number
	sqlMock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	sqlMock.ExpectCommit()

	req := Request{
		Created: []models.RecordPatch{
			{BatchName: strPtr("BatchA"), Name: strPtr("Resubmitted"), VoterNo: strPtr("1001")},
		},
	}

	res, err := r.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Skipped)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestReconcile_DeleteMissingIsNoOp(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cacheMock := new(mocks.Cache)
	cacheMock.On("Delete", mock.Anything, cache.RecordsKey).Return(nil).Once()

	r := NewReconciler(db, cacheMock, zap.NewNop())

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `records`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectCommit()

	res, err := r.Reconcile(context.Background(), Request{Deleted: []uint{424242}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Deleted)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestReconcile_InvalidCreateAborts(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cacheMock := new(mocks.Cache)

	r := NewReconciler(db, cacheMock, zap.NewNop())

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	// Create without a name fails validation; nothing persists and the
	// cache is untouched.
	req := Request{
		Created: []models.RecordPatch{{VoterNo: strPtr("1001")}},
	}

	_, err := r.Reconcile(context.Background(), req)
	require.Error(t, err)
	require.NoError(t, sqlMock.ExpectationsWereMet())
	cacheMock.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconcile_PersistenceFailureRollsBack(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cacheMock := new(mocks.Cache)

	r := NewReconciler(db, cacheMock, zap.NewNop())

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	sqlMock.ExpectExec("INSERT INTO `records`").
		WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()

	req := Request{
		Created: []models.RecordPatch{{Name: strPtr("Person"), VoterNo: strPtr("1001")}},
	}

	_, err := r.Reconcile(context.Background(), req)
	require.Error(t, err)
	require.NoError(t, sqlMock.ExpectationsWereMet())
	cacheMock.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconcile_CacheFailureTolerated(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cacheMock := new(mocks.Cache)
	cacheMock.On("Delete", mock.Anything, cache.RecordsKey).Return(assert.AnError).Once()

	r := NewReconciler(db, cacheMock, zap.NewNop())

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `records`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	res, err := r.Reconcile(context.Background(), Request{Deleted: []uint{1}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	cacheMock.AssertNumberOfCalls(t, "Delete", 1)
}

func TestReconcile_SameBatchNameResolvedOnce(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	cacheMock := new(mocks.Cache)
	cacheMock.On("Delete", mock.Anything, cache.RecordsKey).Return(nil).Once()

	r := NewReconciler(db, cacheMock, zap.NewNop())

	sqlMock.ExpectBegin()
	// Exactly one batch lookup despite two creates naming the same batch
	sqlMock.ExpectQuery("SELECT (.+) FROM `batches`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	sqlMock.ExpectExec("INSERT INTO `batches`").
		WillReturnResult(sqlmock.NewResult(4, 1))
	sqlMock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	sqlMock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	sqlMock.ExpectExec("INSERT INTO `records`").
		WillReturnResult(sqlmock.NewResult(20, 2))
	sqlMock.ExpectCommit()

	req := Request{
		Created: []models.RecordPatch{
			{BatchName: strPtr("NewBatch"), Name: strPtr("First"), VoterNo: strPtr("1")},
			{BatchName: strPtr("NewBatch"), Name: strPtr("Second"), VoterNo: strPtr("2")},
		},
	}

	res, err := r.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

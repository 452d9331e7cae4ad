package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/movelabhq/movelab/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testRecord struct {
	ID         string `gorm:"primaryKey"`
	WorkshopID string
	Position   int
}

type testDomain struct {
	ID         string
	WorkshopID string
	Position   int
}

type testMapper struct{}

func (testMapper) ToDomain(e testRecord) testDomain {
	return testDomain{ID: e.ID, WorkshopID: e.WorkshopID, Position: e.Position}
}

func (testMapper) ToModel(d testDomain) testRecord {
	return testRecord{ID: d.ID, WorkshopID: d.WorkshopID, Position: d.Position}
}

func openTestDB(t *testing.T) Database {
	t.Helper()
	url := fmt.Sprintf("sqlite:///%s", filepath.Join(t.TempDir(), "test.db"))
	db, err := NewDatabase(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.GORM().AutoMigrate(&testRecord{}))
	return db
}

func seedRecords(t *testing.T, db Database, records ...testRecord) {
	t.Helper()
	for _, rec := range records {
		require.NoError(t, db.Session(context.Background()).Create(&rec).Error)
	}
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(context.Background(), "mysql://localhost/db")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewDatabase_SQLite(t *testing.T) {
	db := openTestDB(t)
	assert.True(t, db.IsSQLite())
	assert.False(t, db.IsPostgres())
}

func TestRepository_FindAndFindOne(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository[testDomain, testRecord](db, testMapper{}, "test record")

	seedRecords(t, db,
		testRecord{ID: "a", WorkshopID: "w-1", Position: 2},
		testRecord{ID: "b", WorkshopID: "w-1", Position: 1},
		testRecord{ID: "c", WorkshopID: "w-2", Position: 1},
	)

	found, err := repo.Find(ctx, store.WithWorkshopID("w-1"), store.WithOrderAsc("position"))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "b", found[0].ID)
	assert.Equal(t, "a", found[1].ID)

	one, err := repo.FindOne(ctx, store.WithID("c"))
	require.NoError(t, err)
	assert.Equal(t, "w-2", one.WorkshopID)
}

func TestRepository_FindOne_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository[testDomain, testRecord](db, testMapper{}, "test record")

	_, err := repo.FindOne(context.Background(), store.WithID("missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_CountExistsDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository[testDomain, testRecord](db, testMapper{}, "test record")

	seedRecords(t, db,
		testRecord{ID: "a", WorkshopID: "w-1"},
		testRecord{ID: "b", WorkshopID: "w-1"},
	)

	count, err := repo.Count(ctx, store.WithWorkshopID("w-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	exists, err := repo.Exists(ctx, store.WithID("a"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteBy(ctx, store.WithWorkshopID("w-1")))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_FindLimitOffset(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository[testDomain, testRecord](db, testMapper{}, "test record")

	seedRecords(t, db,
		testRecord{ID: "a", Position: 1},
		testRecord{ID: "b", Position: 2},
		testRecord{ID: "c", Position: 3},
	)

	found, err := repo.Find(ctx, store.WithOrderAsc("position"), store.WithLimit(1), store.WithOffset(1))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "b", found[0].ID)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Create(&testRecord{ID: "a"}).Error; err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Session(ctx).Model(&testRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWithTransaction_Commits(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Create(&testRecord{ID: "a"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Session(ctx).Model(&testRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

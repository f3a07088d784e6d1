package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
)

// newTestRepo opens an in-memory database with the extraction schema applied.
func newTestRepo(t *testing.T) *SqliteRepo {
	t.Helper()
	logger.Log = zaptest.NewLogger(t).Named("test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := &SqliteRepo{db: db}
	require.NoError(t, repo.ensureSchema(context.Background()))
	return repo
}

func TestEnsureSchemaCreatesAllTables(t *testing.T) {
	repo := newTestRepo(t)

	migrator := repo.db.Migrator()
	for _, table := range []string{"tasks", "task_activities", "agent_sessions", "agent_activities", "task_aggregations"} {
		assert.True(t, migrator.HasTable(table), table)
	}
}

func TestEnsureSchemaSafeToRepeat(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Existing data must survive a second schema pass untouched.
	require.NoError(t, repo.SaveTask(ctx, *model.NewTask()))
	require.NoError(t, repo.ensureSchema(ctx))

	var count int64
	require.NoError(t, repo.db.Model(&model.Task{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIsBusyError(t *testing.T) {
	assert.True(t, isBusyError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, isBusyError(errors.New("database table is locked")))
	assert.False(t, isBusyError(errors.New("UNIQUE constraint failed: tasks.id")))
	assert.False(t, isBusyError(nil))
}

package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
)

// newMockRepo wires a SqliteRepo over sqlmock to exercise engine failures the
// in-memory database cannot produce on demand.
func newMockRepo(t *testing.T) (*SqliteRepo, sqlmock.Sqlmock) {
	t.Helper()
	logger.Log = zaptest.NewLogger(t).Named("test")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// The dialector probes the engine version to decide on RETURNING support;
	// report one predating it so inserts stay plain Execs.
	mock.ExpectQuery(regexp.QuoteMeta("select sqlite_version()")).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.30.0"))

	gormDB, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite3", Conn: db}, &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &SqliteRepo{db: gormDB}, mock
}

func TestSaveTaskRejectedWriteIsStorageError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO").
		WillReturnError(errors.New("attempt to write a readonly database"))

	err := repo.SaveTask(context.Background(), *model.NewTask(&model.Task{ID: "T1"}))
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.True(t, apperrors.IsDatabaseError(err))
	// Rejected statements are not retried.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTaskWaitsOutBusyHandle(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO").
		WillReturnError(errors.New("database is locked (5) (SQLITE_BUSY)"))
	mock.ExpectExec("INSERT INTO").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveTask(context.Background(), *model.NewTask(&model.Task{ID: "T1"}))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAgentActivityRejectedWriteIsStorageError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO").
		WillReturnError(errors.New("no such table: agent_activities"))

	err := repo.SaveAgentActivity(context.Background(), *model.NewAgentActivity("S1"))
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

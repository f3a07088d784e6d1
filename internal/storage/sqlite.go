package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
)

// --- Retry Logic Configuration ---
//
// SQLite serializes writers; a second handle on the same file surfaces as a
// busy/locked error on an otherwise healthy connection. Writes wait those out
// with bounded backoff. Any other engine error is permanent and surfaces on
// the first attempt, so failed operations are never re-run.
const (
	defaultRetryInitialInterval = 50 * time.Millisecond
	defaultRetryMaxInterval     = 2 * time.Second
	writeRetryMaxElapsedTime    = 10 * time.Second
)

// SqliteRepo is the single storage handle for one extraction run. It is opened
// once at startup and closed once at shutdown; all row writes go through it
// strictly sequentially.
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo opens (or creates) the database file and ensures the
// extraction schema exists.
func NewSqliteRepo(ctx context.Context, dbPath string) (*SqliteRepo, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, apperrors.NewStorage(
			fmt.Errorf("%w: opening %s: %w", apperrors.ErrDatabase, dbPath, err),
			"failed to open database")
	}

	repo := &SqliteRepo{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureSchema creates any missing tables. Existing tables are left untouched
// even when their layout disagrees with the models; an incompatible
// pre-existing table surfaces as a StorageError on the first write against it,
// matching the databases this tool has historically produced.
func (r *SqliteRepo) ensureSchema(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	tables := []interface{}{
		&model.Task{},
		&model.TaskActivity{},
		&model.AgentSession{},
		&model.AgentActivity{},
		&model.TaskAggregation{},
	}
	for _, table := range tables {
		if migrator.HasTable(table) {
			continue
		}
		if err := migrator.CreateTable(table); err != nil {
			return apperrors.NewStorage(
				fmt.Errorf("%w: creating table for %T: %w", apperrors.ErrDatabase, table, err),
				"failed to create schema")
		}
	}
	logger.FromContext(ctx).Info("Database tables created/verified", zap.Int("tables", len(tables)))
	return nil
}

// Close releases the storage handle. Safe to call on both success and failure
// paths.
func (r *SqliteRepo) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return apperrors.NewStorage(fmt.Errorf("%w: %w", apperrors.ErrDatabase, err), "failed to access underlying connection")
	}
	if err := sqlDB.Close(); err != nil {
		return apperrors.NewStorage(fmt.Errorf("%w: %w", apperrors.ErrDatabase, err), "failed to close database")
	}
	logger.FromContext(ctx).Info("Database connection closed")
	return nil
}

// newRetryPolicy creates a new exponential backoff policy with context awareness.
func newRetryPolicy(ctx context.Context, maxElapsedTime time.Duration) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultRetryInitialInterval
	b.MaxInterval = defaultRetryMaxInterval
	b.MaxElapsedTime = maxElapsedTime
	b.Reset() // Important: Reset before first use
	return backoff.WithContext(b, ctx)
}

// retryableOperation wraps a write with busy-wait handling. Only lock
// contention is waited out; every other error is permanent.
func retryableOperation(ctx context.Context, policy backoff.BackOffContext, opName string, operation func() error) error {
	notify := func(err error, d time.Duration) {
		logger.FromContext(ctx).Warn("Database busy, retrying write",
			zap.String("operation", opName),
			zap.Error(err),
			zap.Duration("after", d),
		)
	}

	return backoff.RetryNotify(func() error {
		err := operation()
		if err != nil {
			if isBusyError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}, policy, notify)
}

// isBusyError checks whether the error is SQLite lock contention rather than a
// rejected statement.
func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	busyIndicators := []string{
		"database is locked",       // SQLITE_BUSY
		"database table is locked", // SQLITE_LOCKED
	}
	for _, indicator := range busyIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

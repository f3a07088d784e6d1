package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
)

// --- Task Repository Methods ---

// SaveTask upserts one tasks row keyed on the source-assigned ID. Re-running
// an extraction overwrites the raw snapshot in place (last write wins).
func (r *SqliteRepo) SaveTask(ctx context.Context, task model.Task) error {
	operation := func() error {
		result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(model.TaskUpdateColumns()),
		}).Create(&task)
		if result.Error != nil {
			return fmt.Errorf("%w: upsert task failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	policy := newRetryPolicy(ctx, writeRetryMaxElapsedTime)
	if err := retryableOperation(ctx, policy, "SaveTask", operation); err != nil {
		logger.FromContext(ctx).Error("Failed to save task",
			zap.String("task_id", task.ID),
			zap.Error(err))
		return apperrors.NewStorage(err, "saving task %s", task.ID)
	}
	return nil
}

// SaveTaskActivity upserts one task_activities row keyed on the
// source-assigned activity ID. The caller guarantees the referenced tasks row
// was written earlier in the same batch.
func (r *SqliteRepo) SaveTaskActivity(ctx context.Context, activity model.TaskActivity) error {
	operation := func() error {
		result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(model.TaskActivityUpdateColumns()),
		}).Create(&activity)
		if result.Error != nil {
			return fmt.Errorf("%w: upsert task activity failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	policy := newRetryPolicy(ctx, writeRetryMaxElapsedTime)
	if err := retryableOperation(ctx, policy, "SaveTaskActivity", operation); err != nil {
		logger.FromContext(ctx).Error("Failed to save task activity",
			zap.String("activity_id", activity.ID),
			zap.String("task_id", activity.TaskID),
			zap.Error(err))
		return apperrors.NewStorage(err, "saving task activity %s", activity.ID)
	}
	return nil
}

// FindTask loads one tasks row by ID.
func (r *SqliteRepo) FindTask(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, apperrors.NewStorage(
			fmt.Errorf("%w: %w", apperrors.ErrDatabase, err), "finding task %s", id)
	}
	return &task, nil
}

// FindTaskActivities loads the task_activities rows for one task, in insertion
// order.
func (r *SqliteRepo) FindTaskActivities(ctx context.Context, taskID string) ([]model.TaskActivity, error) {
	var activities []model.TaskActivity
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&activities).Error; err != nil {
		return nil, apperrors.NewStorage(
			fmt.Errorf("%w: %w", apperrors.ErrDatabase, err), "finding activities for task %s", taskID)
	}
	return activities, nil
}

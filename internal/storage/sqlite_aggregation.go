package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
)

// --- Aggregation Repository Methods ---

// SaveAggregation appends one task_aggregations row. Always a new row;
// metrics are recomputed per run rather than keyed.
func (r *SqliteRepo) SaveAggregation(ctx context.Context, aggregation model.TaskAggregation) error {
	operation := func() error {
		result := r.db.WithContext(ctx).Create(&aggregation)
		if result.Error != nil {
			return fmt.Errorf("%w: insert aggregation failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	policy := newRetryPolicy(ctx, writeRetryMaxElapsedTime)
	if err := retryableOperation(ctx, policy, "SaveAggregation", operation); err != nil {
		logger.FromContext(ctx).Error("Failed to save aggregation",
			zap.String("query_name", aggregation.QueryName),
			zap.Error(err))
		return apperrors.NewStorage(err, "saving aggregation for %s", aggregation.QueryName)
	}
	return nil
}

// FindAggregations loads the task_aggregations rows written under one query
// name, in insertion order.
func (r *SqliteRepo) FindAggregations(ctx context.Context, queryName string) ([]model.TaskAggregation, error) {
	var rows []model.TaskAggregation
	if err := r.db.WithContext(ctx).Where("query_name = ?", queryName).Find(&rows).Error; err != nil {
		return nil, apperrors.NewStorage(
			fmt.Errorf("%w: %w", apperrors.ErrDatabase, err), "finding aggregations for %s", queryName)
	}
	return rows, nil
}

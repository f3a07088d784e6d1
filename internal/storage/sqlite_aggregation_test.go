package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
)

func TestSaveAggregationRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAggregation(ctx, model.TaskAggregation{
		QueryName:        "task_statistics_by_agent",
		AggregationName:  model.String("Total Contacts Handled"),
		AggregationValue: model.Float64(42),
		GroupByField:     model.String("owner_id"),
		GroupByValue:     model.String("AG1"),
		TimePeriodStart:  1000,
		TimePeriodEnd:    2000,
	}))

	var got model.TaskAggregation
	require.NoError(t, repo.db.First(&got, "query_name = ?", "task_statistics_by_agent").Error)
	assert.Equal(t, "Total Contacts Handled", *got.AggregationName)
	assert.Equal(t, float64(42), *got.AggregationValue)
	assert.Equal(t, "owner_id", *got.GroupByField)
	assert.Equal(t, "AG1", *got.GroupByValue)
	assert.Equal(t, int64(1000), got.TimePeriodStart)
	assert.Equal(t, int64(2000), got.TimePeriodEnd)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveAggregationUngroupedStoresNulls(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAggregation(ctx, model.TaskAggregation{
		QueryName:       "totals",
		AggregationName: model.String("Total Contacts Handled"),
		TimePeriodStart: 1000,
		TimePeriodEnd:   2000,
	}))

	var got model.TaskAggregation
	require.NoError(t, repo.db.First(&got, "query_name = ?", "totals").Error)
	assert.Nil(t, got.GroupByField)
	assert.Nil(t, got.GroupByValue)
	assert.Nil(t, got.AggregationValue)
}

func TestSaveAggregationAppendsOnRerun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	row := *model.NewTaskAggregation("task_statistics_by_agent")
	require.NoError(t, repo.SaveAggregation(ctx, row))
	require.NoError(t, repo.SaveAggregation(ctx, row))

	var count int64
	require.NoError(t, repo.db.Model(&model.TaskAggregation{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

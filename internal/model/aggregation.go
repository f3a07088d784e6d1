package model

import (
	"time"
)

// TaskAggregation represents the task_aggregations table structure: one named
// metric value computed by the search API over a time window, optionally
// grouped by a single field/value pair. Metrics are recomputed per run and
// carry no natural key, so rows are append-only on a local surrogate key.
type TaskAggregation struct {
	// ID is the locally generated surrogate key.
	ID               int64     `json:"-" gorm:"column:id;primaryKey;autoIncrement"`
	QueryName        string    `json:"query_name" gorm:"column:query_name"`
	AggregationName  *string   `json:"aggregation_name,omitempty" gorm:"column:aggregation_name"`
	AggregationValue *float64  `json:"aggregation_value,omitempty" gorm:"column:aggregation_value"`
	GroupByField     *string   `json:"group_by_field,omitempty" gorm:"column:group_by_field"`
	GroupByValue     *string   `json:"group_by_value,omitempty" gorm:"column:group_by_value"`
	TimePeriodStart  int64     `json:"time_period_start" gorm:"column:time_period_start"`
	TimePeriodEnd    int64     `json:"time_period_end" gorm:"column:time_period_end"`
	CreatedAt        time.Time `json:"created_at,omitempty" gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM.
func (TaskAggregation) TableName() string {
	return "task_aggregations"
}

// GroupBy is an optional grouping pair attached to a batch of metric values.
type GroupBy struct {
	Field string  `json:"field"`
	Value *string `json:"value"`
}

// AggregationInput is one aggregation ingest call: a non-empty batch of named
// metric values over a window, optionally grouped. The window is validated
// before any row is written.
type AggregationInput struct {
	QueryName string             `json:"query_name" validate:"required"`
	StartMs   int64              `json:"time_period_start" validate:"required"`
	EndMs     int64              `json:"time_period_end" validate:"required,gtfield=StartMs"`
	Metrics   []AggregationValue `json:"metrics" validate:"required,min=1"`
	GroupBy   *GroupBy           `json:"group_by,omitempty"`
}

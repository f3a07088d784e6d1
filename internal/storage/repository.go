package storage

import (
	"context"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
)

// TaskRepo defines task extraction storage operations. Both writes are
// idempotent upserts keyed on the source-assigned ID.
type TaskRepo interface {
	SaveTask(ctx context.Context, task model.Task) error
	SaveTaskActivity(ctx context.Context, activity model.TaskActivity) error
}

// AgentSessionRepo defines agent session storage operations. Sessions upsert
// on their source-assigned ID; activities are append-only (no natural key).
type AgentSessionRepo interface {
	SaveAgentSession(ctx context.Context, session model.AgentSession) error
	SaveAgentActivity(ctx context.Context, activity model.AgentActivity) error
}

// AggregationRepo defines aggregation metric storage operations. Append-only;
// metrics are recomputed per run, not keyed.
type AggregationRepo interface {
	SaveAggregation(ctx context.Context, aggregation model.TaskAggregation) error
}

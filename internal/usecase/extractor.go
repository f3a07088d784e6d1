package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/graphql"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/utils"
)

// aggregationQueryName tags task_aggregations rows written by the third pass.
// Kept stable for databases produced by earlier versions of this tool.
const aggregationQueryName = "task_statistics_by_agent"

// QueryExecutor is the slice of the search API client the extractor needs.
type QueryExecutor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
}

// Extractor drives the three extraction passes over one lookback window. The
// passes run strictly sequentially; the first failing pass aborts the rest.
type Extractor struct {
	client   QueryExecutor
	ingest   *IngestService
	daysBack int
}

// NewExtractor creates a new extractor over the given lookback window.
func NewExtractor(client QueryExecutor, ingest *IngestService, daysBack int) *Extractor {
	return &Extractor{
		client:   client,
		ingest:   ingest,
		daysBack: daysBack,
	}
}

// Run executes the task, agent-session and aggregation passes in order and
// logs a count per pass. The caller releases the storage handle regardless of
// the outcome.
func (e *Extractor) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Starting data extraction", zap.Int("days_back", e.daysBack))

	taskCount, err := e.ExtractTasks(ctx)
	if err != nil {
		return err
	}
	log.Info("Extracted tasks", zap.Int("count", taskCount))

	sessionCount, err := e.ExtractAgentSessions(ctx)
	if err != nil {
		return err
	}
	log.Info("Extracted agent sessions", zap.Int("count", sessionCount))

	aggCount, err := e.ExtractTaskAggregations(ctx)
	if err != nil {
		return err
	}
	log.Info("Extracted aggregations", zap.Int("agents", aggCount))

	log.Info("Data extraction completed successfully")
	return nil
}

// ExtractTasks fetches task detail trees over the window and ingests them.
// Only the first result page is consumed.
func (e *Extractor) ExtractTasks(ctx context.Context) (int, error) {
	startMs, endMs := utils.LookbackWindow(e.daysBack)

	data, err := e.client.Execute(ctx, graphql.TaskDetailsQuery(startMs, endMs), nil)
	if err != nil {
		return 0, err
	}

	var result model.TaskDetailsResult
	if err := utils.UnmarshalJSON(data, &result); err != nil {
		return 0, apperrors.NewQuery(err, "decoding task details result")
	}

	tasks := result.TaskDetails.Tasks
	logger.FromContext(ctx).Info("Retrieved tasks",
		zap.Int("count", len(tasks)),
		zap.Bool("has_next_page", result.TaskDetails.PageInfo.HasNextPage))

	if len(tasks) == 0 {
		return 0, nil
	}
	return e.ingest.IngestTasks(ctx, tasks)
}

// ExtractAgentSessions fetches agent session trees over the window and
// ingests them. Only the first result page is consumed.
func (e *Extractor) ExtractAgentSessions(ctx context.Context) (int, error) {
	startMs, endMs := utils.LookbackWindow(e.daysBack)

	data, err := e.client.Execute(ctx, graphql.AgentSessionQuery(startMs, endMs), nil)
	if err != nil {
		return 0, err
	}

	var result model.AgentSessionResult
	if err := utils.UnmarshalJSON(data, &result); err != nil {
		return 0, apperrors.NewQuery(err, "decoding agent session result")
	}

	sessions := result.AgentSession.AgentSessions
	logger.FromContext(ctx).Info("Retrieved agent sessions",
		zap.Int("count", len(sessions)),
		zap.Bool("has_next_page", result.AgentSession.PageInfo.HasNextPage))

	if len(sessions) == 0 {
		return 0, nil
	}
	return e.ingest.IngestAgentSessions(ctx, sessions)
}

// ExtractTaskAggregations fetches per-agent task metrics over the window and
// appends them grouped by owning agent ID. Returns the number of grouped task
// rows the endpoint reported.
func (e *Extractor) ExtractTaskAggregations(ctx context.Context) (int, error) {
	startMs, endMs := utils.LookbackWindow(e.daysBack)

	data, err := e.client.Execute(ctx, graphql.TaskAggregationsQuery(startMs, endMs), nil)
	if err != nil {
		return 0, err
	}

	var result model.TaskDetailsResult
	if err := utils.UnmarshalJSON(data, &result); err != nil {
		return 0, apperrors.NewQuery(err, "decoding task aggregation result")
	}

	tasks := result.TaskDetails.Tasks
	for i := range tasks {
		task := &tasks[i]
		if len(task.Aggregation) == 0 {
			continue
		}
		groupBy := &model.GroupBy{Field: "owner_id"}
		if task.Owner != nil {
			groupBy.Value = task.Owner.ID
		}
		input := model.AggregationInput{
			QueryName: aggregationQueryName,
			StartMs:   startMs,
			EndMs:     endMs,
			Metrics:   task.Aggregation,
			GroupBy:   groupBy,
		}
		if err := e.ingest.IngestAggregations(ctx, input); err != nil {
			return 0, err
		}
	}

	logger.FromContext(ctx).Info("Inserted aggregations",
		zap.Int("agents", len(tasks)))
	return len(tasks), nil
}

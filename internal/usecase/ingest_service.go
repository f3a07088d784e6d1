package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/storage"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/validator"
	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/logger"
)

// IngestService flattens decoded search API result trees into rows and writes
// them through the storage layer. Rows are written one at a time in input
// order; the first storage failure aborts the remainder of the batch.
type IngestService struct {
	taskRepo    storage.TaskRepo
	sessionRepo storage.AgentSessionRepo
	aggRepo     storage.AggregationRepo
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	taskRepo storage.TaskRepo,
	sessionRepo storage.AgentSessionRepo,
	aggRepo storage.AggregationRepo,
) *IngestService {
	return &IngestService{
		taskRepo:    taskRepo,
		sessionRepo: sessionRepo,
		aggRepo:     aggRepo,
	}
}

// IngestTasks upserts each task row and then its first page of nested
// activities. The parent row is always written before its children, so every
// task_activities.task_id references a tasks row from the same batch. Returns
// the number of top-level tasks processed, not the number of activities.
func (s *IngestService) IngestTasks(ctx context.Context, tasks []model.TaskPayload) (int, error) {
	log := logger.FromContext(ctx)

	for i := range tasks {
		task := &tasks[i]
		if err := s.taskRepo.SaveTask(ctx, task.ToRow()); err != nil {
			return 0, err
		}
		for j := range task.Activities.Nodes {
			row := task.Activities.Nodes[j].ToRow(task.ID)
			if err := s.taskRepo.SaveTaskActivity(ctx, row); err != nil {
				return 0, err
			}
		}
	}

	log.Info("Inserted task records", zap.Int("tasks", len(tasks)))
	return len(tasks), nil
}

// IngestAgentSessions normalizes each session's channel info, upserts the
// session row, and appends the normalized channel's activities under the
// session ID. Sessions without channel info get NULL channel columns and no
// activity rows. Returns the number of sessions processed.
func (s *IngestService) IngestAgentSessions(ctx context.Context, sessions []model.AgentSessionPayload) (int, error) {
	log := logger.FromContext(ctx)

	for i := range sessions {
		session := &sessions[i]
		if err := s.sessionRepo.SaveAgentSession(ctx, session.ToRow()); err != nil {
			return 0, err
		}
		if ch := session.ChannelInfo.First(); ch != nil && len(ch.Activities.Nodes) > 0 {
			if err := s.IngestAgentActivities(ctx, session.AgentSessionID, ch.Activities.Nodes); err != nil {
				return 0, err
			}
		}
	}

	log.Info("Inserted agent session records", zap.Int("sessions", len(sessions)))
	return len(sessions), nil
}

// IngestAgentActivities appends one agent_activities row per activity object
// under the given session, flattening nested idleCode/queue/wrapupCode
// sub-objects to {id, name} pairs. Always append-only: the source carries no
// stable identifier, so re-running over an overlapping window duplicates rows.
func (s *IngestService) IngestAgentActivities(ctx context.Context, agentSessionID string, activities []model.AgentActivityPayload) error {
	for i := range activities {
		row := activities[i].ToRow(agentSessionID)
		if err := s.sessionRepo.SaveAgentActivity(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// IngestAggregations appends one task_aggregations row per metric value. The
// window is validated before any row is written; the grouping pair is stored
// as-is, or as NULLs when absent.
func (s *IngestService) IngestAggregations(ctx context.Context, input model.AggregationInput) error {
	if err := validator.Validate(input); err != nil {
		logger.FromContext(ctx).Error("Aggregation input validation failed",
			zap.String("query_name", input.QueryName),
			zap.Error(err))
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	for _, metric := range input.Metrics {
		row := model.TaskAggregation{
			QueryName:        input.QueryName,
			AggregationName:  metric.Name,
			AggregationValue: metric.Value,
			TimePeriodStart:  input.StartMs,
			TimePeriodEnd:    input.EndMs,
		}
		if input.GroupBy != nil {
			field := input.GroupBy.Field
			row.GroupByField = &field
			row.GroupByValue = input.GroupBy.Value
		}
		if err := s.aggRepo.SaveAggregation(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

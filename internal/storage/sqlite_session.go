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

// --- Agent Session Repository Methods ---

// SaveAgentSession upserts one agent_sessions row keyed on the
// source-assigned session ID (last write wins).
func (r *SqliteRepo) SaveAgentSession(ctx context.Context, session model.AgentSession) error {
	operation := func() error {
		result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "agent_session_id"}},
			DoUpdates: clause.AssignmentColumns(model.AgentSessionUpdateColumns()),
		}).Create(&session)
		if result.Error != nil {
			return fmt.Errorf("%w: upsert agent session failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	policy := newRetryPolicy(ctx, writeRetryMaxElapsedTime)
	if err := retryableOperation(ctx, policy, "SaveAgentSession", operation); err != nil {
		logger.FromContext(ctx).Error("Failed to save agent session",
			zap.String("agent_session_id", session.AgentSessionID),
			zap.Error(err))
		return apperrors.NewStorage(err, "saving agent session %s", session.AgentSessionID)
	}
	return nil
}

// SaveAgentActivity appends one agent_activities row. Always a new row: the
// source carries no stable identifier for these records, so overlapping
// extraction windows duplicate them by design.
func (r *SqliteRepo) SaveAgentActivity(ctx context.Context, activity model.AgentActivity) error {
	operation := func() error {
		result := r.db.WithContext(ctx).Create(&activity)
		if result.Error != nil {
			return fmt.Errorf("%w: insert agent activity failed: %w", apperrors.ErrDatabase, result.Error)
		}
		return nil
	}

	policy := newRetryPolicy(ctx, writeRetryMaxElapsedTime)
	if err := retryableOperation(ctx, policy, "SaveAgentActivity", operation); err != nil {
		logger.FromContext(ctx).Error("Failed to save agent activity",
			zap.String("agent_session_id", activity.AgentSessionID),
			zap.Error(err))
		return apperrors.NewStorage(err, "saving agent activity for session %s", activity.AgentSessionID)
	}
	return nil
}

// FindAgentSession loads one agent_sessions row by ID.
func (r *SqliteRepo) FindAgentSession(ctx context.Context, agentSessionID string) (*model.AgentSession, error) {
	var session model.AgentSession
	if err := r.db.WithContext(ctx).First(&session, "agent_session_id = ?", agentSessionID).Error; err != nil {
		return nil, apperrors.NewStorage(
			fmt.Errorf("%w: %w", apperrors.ErrDatabase, err), "finding agent session %s", agentSessionID)
	}
	return &session, nil
}

// FindAgentActivities loads the agent_activities rows for one session, in
// insertion order.
func (r *SqliteRepo) FindAgentActivities(ctx context.Context, agentSessionID string) ([]model.AgentActivity, error) {
	var activities []model.AgentActivity
	if err := r.db.WithContext(ctx).Where("agent_session_id = ?", agentSessionID).Find(&activities).Error; err != nil {
		return nil, apperrors.NewStorage(
			fmt.Errorf("%w: %w", apperrors.ErrDatabase, err), "finding activities for session %s", agentSessionID)
	}
	return activities, nil
}

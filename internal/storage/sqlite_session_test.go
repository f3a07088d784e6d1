package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/internal/model"
)

func TestSaveAgentSessionIdempotentLastWriteWins(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := model.NewAgentSession(&model.AgentSession{AgentSessionID: "S1", AgentName: model.String("Ada")})
	second := model.NewAgentSession(&model.AgentSession{AgentSessionID: "S1", AgentName: model.String("Grace")})
	require.NoError(t, repo.SaveAgentSession(ctx, *first))
	require.NoError(t, repo.SaveAgentSession(ctx, *second))

	var count int64
	require.NoError(t, repo.db.Model(&model.AgentSession{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var got model.AgentSession
	require.NoError(t, repo.db.First(&got, "agent_session_id = ?", "S1").Error)
	assert.Equal(t, "Grace", *got.AgentName)
}

func TestSaveAgentSessionNullChannelColumns(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAgentSession(ctx, model.AgentSession{
		AgentSessionID: "S1",
		AgentID:        model.String("AG1"),
	}))

	var got model.AgentSession
	require.NoError(t, repo.db.First(&got, "agent_session_id = ?", "S1").Error)
	assert.Equal(t, "AG1", *got.AgentID)
	assert.Nil(t, got.ChannelID)
	assert.Nil(t, got.ChannelType)
	assert.Nil(t, got.AgentPhoneNumber)
	assert.Nil(t, got.SubChannelType)
}

func TestSaveAgentActivityAppendsNewRowEveryTime(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAgentSession(ctx, *model.NewAgentSession(&model.AgentSession{AgentSessionID: "S1"})))

	activity := model.AgentActivity{
		AgentSessionID: "S1",
		Duration:       model.Int64(100),
		State:          model.String("Idle"),
	}
	// Identical input twice: no natural key, so the row count doubles.
	require.NoError(t, repo.SaveAgentActivity(ctx, activity))
	require.NoError(t, repo.SaveAgentActivity(ctx, activity))

	var rows []model.AgentActivity
	require.NoError(t, repo.db.Where("agent_session_id = ?", "S1").Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
	assert.Equal(t, int64(100), *rows[0].Duration)
	assert.Equal(t, "Idle", *rows[1].State)
}

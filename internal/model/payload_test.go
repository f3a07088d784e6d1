package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelInfoListDecodesSingleObject(t *testing.T) {
	var c ChannelInfoList
	require.NoError(t, json.Unmarshal([]byte(`{"channelId":"C1","channelType":"telephony"}`), &c))

	ch := c.First()
	require.NotNil(t, ch)
	assert.Equal(t, "C1", *ch.ChannelID)
	assert.Equal(t, "telephony", *ch.ChannelType)
}

func TestChannelInfoListDecodesListFirstElementWins(t *testing.T) {
	var c ChannelInfoList
	require.NoError(t, json.Unmarshal([]byte(`[
		{"channelId":"C1","activities":{"nodes":[{"state":"Idle"}]}},
		{"channelId":"C2","activities":{"nodes":[{"state":"Connected"}]}}
	]`), &c))

	ch := c.First()
	require.NotNil(t, ch)
	assert.Equal(t, "C1", *ch.ChannelID)
	require.Len(t, ch.Activities.Nodes, 1)
	assert.Equal(t, "Idle", *ch.Activities.Nodes[0].State)
}

func TestChannelInfoListTreatsNonObjectAsAbsent(t *testing.T) {
	for _, raw := range []string{`null`, `"telephony"`, `42`, `[]`} {
		var c ChannelInfoList
		require.NoError(t, json.Unmarshal([]byte(raw), &c), raw)
		assert.Nil(t, c.First(), raw)
	}
}

func TestAgentSessionToRowWithoutChannelInfo(t *testing.T) {
	var p AgentSessionPayload
	require.NoError(t, json.Unmarshal([]byte(`{"agentSessionId":"S1","agentName":"Ada"}`), &p))

	row := p.ToRow()
	assert.Equal(t, "S1", row.AgentSessionID)
	assert.Equal(t, "Ada", *row.AgentName)
	assert.Nil(t, row.ChannelID)
	assert.Nil(t, row.ChannelType)
	assert.Nil(t, row.AgentPhoneNumber)
	assert.Nil(t, row.SubChannelType)
}

func TestAgentSessionToRowKeepsVerbatimRaw(t *testing.T) {
	src := []byte(`{"agentSessionId":"S1","channelInfo":[{"channelId":"C1"}],"extraField":"kept"}`)
	var p AgentSessionPayload
	require.NoError(t, json.Unmarshal(src, &p))

	row := p.ToRow()
	assert.JSONEq(t, string(src), string(row.RawData))
	assert.Equal(t, "C1", *row.ChannelID)
}

func TestTaskActivityToRowPartialFields(t *testing.T) {
	src := []byte(`{"id":"A1","agentId":"AG1","duration":30}`)
	var p TaskActivityPayload
	require.NoError(t, json.Unmarshal(src, &p))

	row := p.ToRow("T1")
	assert.Equal(t, "A1", row.ID)
	assert.Equal(t, "T1", row.TaskID)
	assert.Equal(t, "AG1", *row.AgentID)
	assert.Equal(t, int64(30), *row.Duration)

	// Everything the source object omitted stays NULL.
	assert.Nil(t, row.IsActive)
	assert.Nil(t, row.CreatedTime)
	assert.Nil(t, row.EndedTime)
	assert.Nil(t, row.AgentName)
	assert.Nil(t, row.QueueID)
	assert.Nil(t, row.TeamName)
	assert.Nil(t, row.TerminationReason)
	assert.Nil(t, row.IvrScriptTagName)
	assert.Nil(t, row.LastActivityTime)
	assert.Nil(t, row.SkillsAssignedIn)

	assert.JSONEq(t, string(src), string(row.RawData))
}

func TestTaskActivityToRowTypePreserving(t *testing.T) {
	src := []byte(`{"id":"A2","isActive":true,"createdTime":1700000000000,"duration":0}`)
	var p TaskActivityPayload
	require.NoError(t, json.Unmarshal(src, &p))

	row := p.ToRow("T2")
	assert.True(t, *row.IsActive)
	assert.Equal(t, int64(1700000000000), *row.CreatedTime)
	// A present zero is a value, not NULL.
	require.NotNil(t, row.Duration)
	assert.Equal(t, int64(0), *row.Duration)
}

func TestAgentActivityToRowFlattensCodeRefs(t *testing.T) {
	src := []byte(`{
		"startTime":100,"endTime":200,"duration":100,"state":"Idle",
		"idleCode":{"id":"I1","name":"Break"},
		"queue":{"id":"Q1","name":"Support"}
	}`)
	var p AgentActivityPayload
	require.NoError(t, json.Unmarshal(src, &p))

	row := p.ToRow("S1")
	assert.Equal(t, "S1", row.AgentSessionID)
	assert.Equal(t, int64(100), *row.StartTime)
	assert.Equal(t, "Idle", *row.State)
	assert.Equal(t, "I1", *row.IdleCodeID)
	assert.Equal(t, "Break", *row.IdleCodeName)
	assert.Equal(t, "Q1", *row.QueueID)
	assert.Equal(t, "Support", *row.QueueName)

	// Absent wrapupCode flattens to a nil pair.
	assert.Nil(t, row.WrapupCodeID)
	assert.Nil(t, row.WrapupCodeName)
}

func TestTaskDetailsResultDecode(t *testing.T) {
	data := []byte(`{"taskDetails":{"tasks":[
		{"id":"T1","activities":{"totalCount":1,"nodes":[{"id":"A1","agentId":"AG1"}],
			"pageInfo":{"hasNextPage":true,"endCursor":"abc"}}}
	],"pageInfo":{"hasNextPage":false}}}`)

	var result TaskDetailsResult
	require.NoError(t, json.Unmarshal(data, &result))

	require.Len(t, result.TaskDetails.Tasks, 1)
	task := result.TaskDetails.Tasks[0]
	assert.Equal(t, "T1", task.ID)
	require.Len(t, task.Activities.Nodes, 1)
	assert.Equal(t, "A1", task.Activities.Nodes[0].ID)
	assert.True(t, task.Activities.PageInfo.HasNextPage)
	assert.JSONEq(t,
		`{"id":"A1","agentId":"AG1"}`,
		string(task.Activities.Nodes[0].Raw))
}

func TestAggregationTaskDecode(t *testing.T) {
	data := []byte(`{"taskDetails":{"tasks":[
		{"owner":{"id":"AG1","name":"Ada"},"aggregation":[
			{"name":"Total Contacts Handled","value":42},
			{"name":"Average Talk Time","value":120.5}
		]}
	]}}`)

	var result TaskDetailsResult
	require.NoError(t, json.Unmarshal(data, &result))

	require.Len(t, result.TaskDetails.Tasks, 1)
	task := result.TaskDetails.Tasks[0]
	require.NotNil(t, task.Owner)
	assert.Equal(t, "AG1", *task.Owner.ID)
	require.Len(t, task.Aggregation, 2)
	assert.Equal(t, float64(42), *task.Aggregation[0].Value)
}

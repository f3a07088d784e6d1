package model

import (
	"encoding/json"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/datatypes"

	"gitlab.com/timkado/api/daisi-wxcc-extractor/pkg/utils"
)

// init ensures gofakeit is seeded.
func init() {
	gofakeit.Seed(time.Now().UnixNano())
}

// RandomRawJSON generates a small random JSON object for raw_data columns in tests.
func RandomRawJSON() datatypes.JSON {
	jsonData := map[string]interface{}{
		"stub_key": gofakeit.Word(),
		"stub_num": gofakeit.Number(1, 100),
	}
	bytes, _ := json.Marshal(jsonData)
	return datatypes.JSON(bytes)
}

// NewTask creates a new Task row with default fake data.
func NewTask(overrideDefaults ...*Task) *Task {
	base := &Task{
		ID:      gofakeit.UUID(),
		RawData: RandomRawJSON(),
	}

	if len(overrideDefaults) > 0 && overrideDefaults[0] != nil {
		ovr := overrideDefaults[0]
		if ovr.ID != "" {
			base.ID = ovr.ID
		}
		if ovr.RawData != nil {
			base.RawData = ovr.RawData
		}
	}
	return base
}

// NewTaskActivity creates a new TaskActivity row with default fake data for
// the commonly asserted columns.
func NewTaskActivity(taskID string) *TaskActivity {
	return &TaskActivity{
		ID:           gofakeit.UUID(),
		TaskID:       taskID,
		IsActive:     Bool(gofakeit.Bool()),
		CreatedTime:  Int64(utils.EpochMillis(utils.Now().Add(-time.Hour))),
		EndedTime:    Int64(utils.EpochMillis(utils.Now())),
		AgentID:      String(gofakeit.UUID()),
		AgentName:    String(gofakeit.Name()),
		QueueID:      String(gofakeit.UUID()),
		QueueName:    String(gofakeit.Word()),
		ActivityType: String(gofakeit.RandomString([]string{"connected", "consult", "hold", "wrapup"})),
		Duration:     Int64(int64(gofakeit.Number(1, 600))),
		RawData:      RandomRawJSON(),
	}
}

// NewAgentSession creates a new AgentSession row with default fake data.
func NewAgentSession(overrideDefaults ...*AgentSession) *AgentSession {
	base := &AgentSession{
		AgentSessionID:   gofakeit.UUID(),
		AgentID:          String(gofakeit.UUID()),
		AgentName:        String(gofakeit.Name()),
		UserLoginID:      String(gofakeit.Email()),
		SiteID:           String(gofakeit.UUID()),
		SiteName:         String(gofakeit.City()),
		TeamID:           String(gofakeit.UUID()),
		TeamName:         String(gofakeit.Word()),
		ChannelID:        String(gofakeit.UUID()),
		ChannelType:      String("telephony"),
		AgentPhoneNumber: String(gofakeit.Phone()),
		RawData:          RandomRawJSON(),
	}

	if len(overrideDefaults) > 0 && overrideDefaults[0] != nil {
		ovr := overrideDefaults[0]
		if ovr.AgentSessionID != "" {
			base.AgentSessionID = ovr.AgentSessionID
		}
		if ovr.AgentName != nil {
			base.AgentName = ovr.AgentName
		}
		if ovr.ChannelID != nil {
			base.ChannelID = ovr.ChannelID
		}
		if ovr.RawData != nil {
			base.RawData = ovr.RawData
		}
	}
	return base
}

// NewAgentActivity creates a new AgentActivity row under the given session.
func NewAgentActivity(agentSessionID string) *AgentActivity {
	start := utils.EpochMillis(utils.Now().Add(-30 * time.Minute))
	end := utils.EpochMillis(utils.Now())
	return &AgentActivity{
		AgentSessionID: agentSessionID,
		AgentID:        String(gofakeit.UUID()),
		StartTime:      Int64(start),
		EndTime:        Int64(end),
		Duration:       Int64(end - start),
		State:          String(gofakeit.RandomString([]string{"Available", "Idle", "Connected", "Wrapup"})),
		RawData:        RandomRawJSON(),
	}
}

// NewTaskAggregation creates a new TaskAggregation row with default fake data.
func NewTaskAggregation(queryName string) *TaskAggregation {
	startMs, endMs := utils.LookbackWindow(gofakeit.Number(1, 30))
	return &TaskAggregation{
		QueryName:        queryName,
		AggregationName:  String(gofakeit.RandomString([]string{"Total Contacts Handled", "Average Talk Time", "Maximum Hold Time"})),
		AggregationValue: Float64(gofakeit.Float64Range(0, 5000)),
		GroupByField:     String("owner_id"),
		GroupByValue:     String(gofakeit.UUID()),
		TimePeriodStart:  startMs,
		TimePeriodEnd:    endMs,
	}
}

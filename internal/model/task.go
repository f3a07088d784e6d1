package model

import (
	"time"

	"gorm.io/datatypes"
)

// Task represents the tasks table structure: one contact-center interaction.
// Only the identity is modeled explicitly; the full source tree is kept in
// RawData for fields the activity schema does not cover.
type Task struct {
	// ID is the opaque task identifier assigned by the search API.
	ID string `json:"id" gorm:"column:id;primaryKey"`
	// CreatedAt is the timestamp when the row was first inserted locally.
	CreatedAt time.Time      `json:"created_at,omitempty" gorm:"column:created_at;autoCreateTime"`
	RawData   datatypes.JSON `json:"raw_data,omitempty" gorm:"column:raw_data"`
}

// TableName specifies the table name for GORM.
func (Task) TableName() string {
	return "tasks"
}

// TaskUpdateColumns returns a list of column names that are overwritten when an
// upsert hits an existing row. Excludes the primary key and created_at.
func TaskUpdateColumns() []string {
	return []string{
		"raw_data",
	}
}

// TaskActivity represents the task_activities table structure: one activity
// event nested under a task. All mapped columns are pointers so fields absent
// from the source object persist as NULL, and present fields keep their source
// type (integers as integers, booleans as booleans).
type TaskActivity struct {
	// ID is the opaque activity identifier assigned by the search API.
	ID string `json:"id" gorm:"column:id;primaryKey"`
	// TaskID references the owning tasks row, written earlier in the same batch.
	TaskID                      string  `json:"task_id" gorm:"column:task_id;index"`
	IsActive                    *bool   `json:"is_active,omitempty" gorm:"column:is_active"`
	CreatedTime                 *int64  `json:"created_time,omitempty" gorm:"column:created_time"`
	EndedTime                   *int64  `json:"ended_time,omitempty" gorm:"column:ended_time"`
	AgentID                     *string `json:"agent_id,omitempty" gorm:"column:agent_id"`
	AgentName                   *string `json:"agent_name,omitempty" gorm:"column:agent_name"`
	AgentPhoneNumber            *string `json:"agent_phone_number,omitempty" gorm:"column:agent_phone_number"`
	AgentSessionID              *string `json:"agent_session_id,omitempty" gorm:"column:agent_session_id"`
	AgentChannelID              *string `json:"agent_channel_id,omitempty" gorm:"column:agent_channel_id"`
	EntrypointID                *string `json:"entrypoint_id,omitempty" gorm:"column:entrypoint_id"`
	EntrypointName              *string `json:"entrypoint_name,omitempty" gorm:"column:entrypoint_name"`
	QueueID                     *string `json:"queue_id,omitempty" gorm:"column:queue_id"`
	QueueName                   *string `json:"queue_name,omitempty" gorm:"column:queue_name"`
	SiteID                      *string `json:"site_id,omitempty" gorm:"column:site_id"`
	SiteName                    *string `json:"site_name,omitempty" gorm:"column:site_name"`
	TeamID                      *string `json:"team_id,omitempty" gorm:"column:team_id"`
	TeamName                    *string `json:"team_name,omitempty" gorm:"column:team_name"`
	TransferType                *string `json:"transfer_type,omitempty" gorm:"column:transfer_type"`
	ActivityType                *string `json:"activity_type,omitempty" gorm:"column:activity_type"`
	ActivityName                *string `json:"activity_name,omitempty" gorm:"column:activity_name"`
	EventName                   *string `json:"event_name,omitempty" gorm:"column:event_name"`
	PreviousState               *string `json:"previous_state,omitempty" gorm:"column:previous_state"`
	NextState                   *string `json:"next_state,omitempty" gorm:"column:next_state"`
	ConsultEpID                 *string `json:"consult_ep_id,omitempty" gorm:"column:consult_ep_id"`
	ConsultEpName               *string `json:"consult_ep_name,omitempty" gorm:"column:consult_ep_name"`
	ChildContactID              *string `json:"child_contact_id,omitempty" gorm:"column:child_contact_id"`
	ChildContactType            *string `json:"child_contact_type,omitempty" gorm:"column:child_contact_type"`
	Duration                    *int64  `json:"duration,omitempty" gorm:"column:duration"`
	DestinationAgentPhoneNumber *string `json:"destination_agent_phone_number,omitempty" gorm:"column:destination_agent_phone_number"`
	DestinationAgentID          *string `json:"destination_agent_id,omitempty" gorm:"column:destination_agent_id"`
	DestinationAgentName        *string `json:"destination_agent_name,omitempty" gorm:"column:destination_agent_name"`
	DestinationAgentSessionID   *string `json:"destination_agent_session_id,omitempty" gorm:"column:destination_agent_session_id"`
	DestinationAgentChannelID   *string `json:"destination_agent_channel_id,omitempty" gorm:"column:destination_agent_channel_id"`
	DestinationAgentTeamID      *string `json:"destination_agent_team_id,omitempty" gorm:"column:destination_agent_team_id"`
	DestinationAgentTeamName    *string `json:"destination_agent_team_name,omitempty" gorm:"column:destination_agent_team_name"`
	DestinationQueueName        *string `json:"destination_queue_name,omitempty" gorm:"column:destination_queue_name"`
	DestinationQueueID          *string `json:"destination_queue_id,omitempty" gorm:"column:destination_queue_id"`
	TerminationReason           *string `json:"termination_reason,omitempty" gorm:"column:termination_reason"`
	IvrScriptID                 *string `json:"ivr_script_id,omitempty" gorm:"column:ivr_script_id"`
	IvrScriptName               *string `json:"ivr_script_name,omitempty" gorm:"column:ivr_script_name"`
	IvrScriptTagID              *string `json:"ivr_script_tag_id,omitempty" gorm:"column:ivr_script_tag_id"`
	IvrScriptTagName            *string `json:"ivr_script_tag_name,omitempty" gorm:"column:ivr_script_tag_name"`
	LastActivityTime            *int64  `json:"last_activity_time,omitempty" gorm:"column:last_activity_time"`
	SkillsAssignedIn            *string `json:"skills_assigned_in,omitempty" gorm:"column:skills_assigned_in"`
	CreatedAt                   time.Time      `json:"created_at,omitempty" gorm:"column:created_at;autoCreateTime"`
	RawData                     datatypes.JSON `json:"raw_data,omitempty" gorm:"column:raw_data"`
}

// TableName specifies the table name for GORM.
func (TaskActivity) TableName() string {
	return "task_activities"
}

// TaskActivityUpdateColumns returns a list of column names that are overwritten
// when an upsert hits an existing row (last write wins). Excludes the primary
// key and created_at.
func TaskActivityUpdateColumns() []string {
	return []string{
		"task_id",
		"is_active",
		"created_time",
		"ended_time",
		"agent_id",
		"agent_name",
		"agent_phone_number",
		"agent_session_id",
		"agent_channel_id",
		"entrypoint_id",
		"entrypoint_name",
		"queue_id",
		"queue_name",
		"site_id",
		"site_name",
		"team_id",
		"team_name",
		"transfer_type",
		"activity_type",
		"activity_name",
		"event_name",
		"previous_state",
		"next_state",
		"consult_ep_id",
		"consult_ep_name",
		"child_contact_id",
		"child_contact_type",
		"duration",
		"destination_agent_phone_number",
		"destination_agent_id",
		"destination_agent_name",
		"destination_agent_session_id",
		"destination_agent_channel_id",
		"destination_agent_team_id",
		"destination_agent_team_name",
		"destination_queue_name",
		"destination_queue_id",
		"termination_reason",
		"ivr_script_id",
		"ivr_script_name",
		"ivr_script_tag_id",
		"ivr_script_tag_name",
		"last_activity_time",
		"skills_assigned_in",
		"raw_data",
	}
}

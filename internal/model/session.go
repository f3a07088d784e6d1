package model

import (
	"time"

	"gorm.io/datatypes"
)

// AgentSession represents the agent_sessions table structure. The channel_*
// columns come from the normalized channel-info object and stay NULL when the
// session carried no channel info.
type AgentSession struct {
	// AgentSessionID is the opaque session identifier assigned by the search API.
	AgentSessionID   string         `json:"agent_session_id" gorm:"column:agent_session_id;primaryKey"`
	AgentID          *string        `json:"agent_id,omitempty" gorm:"column:agent_id"`
	AgentName        *string        `json:"agent_name,omitempty" gorm:"column:agent_name"`
	UserLoginID      *string        `json:"user_login_id,omitempty" gorm:"column:user_login_id"`
	SiteID           *string        `json:"site_id,omitempty" gorm:"column:site_id"`
	SiteName         *string        `json:"site_name,omitempty" gorm:"column:site_name"`
	TeamID           *string        `json:"team_id,omitempty" gorm:"column:team_id"`
	TeamName         *string        `json:"team_name,omitempty" gorm:"column:team_name"`
	ChannelID        *string        `json:"channel_id,omitempty" gorm:"column:channel_id"`
	ChannelType      *string        `json:"channel_type,omitempty" gorm:"column:channel_type"`
	AgentPhoneNumber *string        `json:"agent_phone_number,omitempty" gorm:"column:agent_phone_number"`
	SubChannelType   *string        `json:"sub_channel_type,omitempty" gorm:"column:sub_channel_type"`
	CreatedAt        time.Time      `json:"created_at,omitempty" gorm:"column:created_at;autoCreateTime"`
	RawData          datatypes.JSON `json:"raw_data,omitempty" gorm:"column:raw_data"`
}

// TableName specifies the table name for GORM.
func (AgentSession) TableName() string {
	return "agent_sessions"
}

// AgentSessionUpdateColumns returns a list of column names that are overwritten
// when an upsert hits an existing row. Excludes the primary key and created_at.
func AgentSessionUpdateColumns() []string {
	return []string{
		"agent_id",
		"agent_name",
		"user_login_id",
		"site_id",
		"site_name",
		"team_id",
		"team_name",
		"channel_id",
		"channel_type",
		"agent_phone_number",
		"sub_channel_type",
		"raw_data",
	}
}

// AgentActivity represents the agent_activities table structure: one
// fine-grained agent state change under a session. The source carries no
// stable identifier for these records, so rows use a local surrogate key and
// are append-only; re-running an extraction over an overlapping window
// duplicates them.
type AgentActivity struct {
	// ID is the locally generated surrogate key.
	ID int64 `json:"-" gorm:"column:id;primaryKey;autoIncrement"`
	// AgentSessionID references the owning agent_sessions row.
	AgentSessionID    string         `json:"agent_session_id" gorm:"column:agent_session_id;index"`
	AgentID           *string        `json:"agent_id,omitempty" gorm:"column:agent_id"`
	StartTime         *int64         `json:"start_time,omitempty" gorm:"column:start_time"`
	EndTime           *int64         `json:"end_time,omitempty" gorm:"column:end_time"`
	Duration          *int64         `json:"duration,omitempty" gorm:"column:duration"`
	State             *string        `json:"state,omitempty" gorm:"column:state"`
	IdleCodeID        *string        `json:"idle_code_id,omitempty" gorm:"column:idle_code_id"`
	IdleCodeName      *string        `json:"idle_code_name,omitempty" gorm:"column:idle_code_name"`
	TaskID            *string        `json:"task_id,omitempty" gorm:"column:task_id"`
	QueueID           *string        `json:"queue_id,omitempty" gorm:"column:queue_id"`
	QueueName         *string        `json:"queue_name,omitempty" gorm:"column:queue_name"`
	WrapupCodeID      *string        `json:"wrapup_code_id,omitempty" gorm:"column:wrapup_code_id"`
	WrapupCodeName    *string        `json:"wrapup_code_name,omitempty" gorm:"column:wrapup_code_name"`
	IsOutdial         *bool          `json:"is_outdial,omitempty" gorm:"column:is_outdial"`
	OutboundType      *string        `json:"outbound_type,omitempty" gorm:"column:outbound_type"`
	IsCurrentActivity *bool          `json:"is_current_activity,omitempty" gorm:"column:is_current_activity"`
	IsLoginActivity   *bool          `json:"is_login_activity,omitempty" gorm:"column:is_login_activity"`
	IsLogoutActivity  *bool          `json:"is_logout_activity,omitempty" gorm:"column:is_logout_activity"`
	ChangedByID       *string        `json:"changed_by_id,omitempty" gorm:"column:changed_by_id"`
	ChangedByName     *string        `json:"changed_by_name,omitempty" gorm:"column:changed_by_name"`
	CreatedAt         time.Time      `json:"created_at,omitempty" gorm:"column:created_at;autoCreateTime"`
	RawData           datatypes.JSON `json:"raw_data,omitempty" gorm:"column:raw_data"`
}

// TableName specifies the table name for GORM.
func (AgentActivity) TableName() string {
	return "agent_activities"
}

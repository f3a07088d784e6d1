package model

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// PageInfo mirrors the relay-style page cursor the search API attaches to
// every connection. Only the first page of any result set is consumed; the
// cursor is decoded for visibility but never followed.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// TaskDetailsResult mirrors the data tree of the taskDetails query. The same
// shape serves the aggregation query, where each task node carries owner and
// aggregation fields instead of activities.
type TaskDetailsResult struct {
	TaskDetails struct {
		Tasks    []TaskPayload `json:"tasks"`
		PageInfo PageInfo      `json:"pageInfo"`
	} `json:"taskDetails"`
}

// TaskPayload is one task node as returned by the search API.
type TaskPayload struct {
	ID          string                 `json:"id"`
	Activities  TaskActivityConnection `json:"activities"`
	Owner       *OwnerPayload          `json:"owner,omitempty"`
	Aggregation []AggregationValue     `json:"aggregation,omitempty"`

	// Raw is the verbatim source object, kept for the raw_data column.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the node and keeps a verbatim copy of its source bytes.
func (p *TaskPayload) UnmarshalJSON(data []byte) error {
	type alias TaskPayload
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = TaskPayload(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// ToRow converts the task node to its tasks row.
func (p *TaskPayload) ToRow() Task {
	return Task{
		ID:      p.ID,
		RawData: datatypes.JSON(p.Raw),
	}
}

// TaskActivityConnection is the bounded activity list nested under a task.
type TaskActivityConnection struct {
	TotalCount int                   `json:"totalCount"`
	Nodes      []TaskActivityPayload `json:"nodes"`
	PageInfo   PageInfo              `json:"pageInfo"`
}

// OwnerPayload is the owning agent reference on aggregation query results.
type OwnerPayload struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// AggregationValue is one named metric value computed by the search API.
type AggregationValue struct {
	Name  *string  `json:"name"`
	Value *float64 `json:"value"`
}

// TaskActivityPayload is one activity node nested under a task. Every field is
// optional in the source; absent fields stay nil and persist as NULL.
type TaskActivityPayload struct {
	ID                          string  `json:"id"`
	IsActive                    *bool   `json:"isActive"`
	CreatedTime                 *int64  `json:"createdTime"`
	EndedTime                   *int64  `json:"endedTime"`
	AgentID                     *string `json:"agentId"`
	AgentName                   *string `json:"agentName"`
	AgentPhoneNumber            *string `json:"agentPhoneNumber"`
	AgentSessionID              *string `json:"agentSessionId"`
	AgentChannelID              *string `json:"agentChannelId"`
	EntrypointID                *string `json:"entrypointId"`
	EntrypointName              *string `json:"entrypointName"`
	QueueID                     *string `json:"queueId"`
	QueueName                   *string `json:"queueName"`
	SiteID                      *string `json:"siteId"`
	SiteName                    *string `json:"siteName"`
	TeamID                      *string `json:"teamId"`
	TeamName                    *string `json:"teamName"`
	TransferType                *string `json:"transferType"`
	ActivityType                *string `json:"activityType"`
	ActivityName                *string `json:"activityName"`
	EventName                   *string `json:"eventName"`
	PreviousState               *string `json:"previousState"`
	NextState                   *string `json:"nextState"`
	ConsultEpID                 *string `json:"consultEpId"`
	ConsultEpName               *string `json:"consultEpName"`
	ChildContactID              *string `json:"childContactId"`
	ChildContactType            *string `json:"childContactType"`
	Duration                    *int64  `json:"duration"`
	DestinationAgentPhoneNumber *string `json:"destinationAgentPhoneNumber"`
	DestinationAgentID          *string `json:"destinationAgentId"`
	DestinationAgentName        *string `json:"destinationAgentName"`
	DestinationAgentSessionID   *string `json:"destinationAgentSessionId"`
	DestinationAgentChannelID   *string `json:"destinationAgentChannelId"`
	DestinationAgentTeamID      *string `json:"destinationAgentTeamId"`
	DestinationAgentTeamName    *string `json:"destinationAgentTeamName"`
	DestinationQueueName        *string `json:"destinationQueueName"`
	DestinationQueueID          *string `json:"destinationQueueId"`
	TerminationReason           *string `json:"terminationReason"`
	IvrScriptID                 *string `json:"ivrScriptId"`
	IvrScriptName               *string `json:"ivrScriptName"`
	IvrScriptTagID              *string `json:"ivrScriptTagId"`
	IvrScriptTagName            *string `json:"ivrScriptTagName"`
	LastActivityTime            *int64  `json:"lastActivityTime"`
	SkillsAssignedIn            *string `json:"skillsAssignedIn"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the node and keeps a verbatim copy of its source bytes.
func (p *TaskActivityPayload) UnmarshalJSON(data []byte) error {
	type alias TaskActivityPayload
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = TaskActivityPayload(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// ToRow flattens the activity node into its task_activities row under the
// given parent task.
func (p *TaskActivityPayload) ToRow(taskID string) TaskActivity {
	return TaskActivity{
		ID:                          p.ID,
		TaskID:                      taskID,
		IsActive:                    p.IsActive,
		CreatedTime:                 p.CreatedTime,
		EndedTime:                   p.EndedTime,
		AgentID:                     p.AgentID,
		AgentName:                   p.AgentName,
		AgentPhoneNumber:            p.AgentPhoneNumber,
		AgentSessionID:              p.AgentSessionID,
		AgentChannelID:              p.AgentChannelID,
		EntrypointID:                p.EntrypointID,
		EntrypointName:              p.EntrypointName,
		QueueID:                     p.QueueID,
		QueueName:                   p.QueueName,
		SiteID:                      p.SiteID,
		SiteName:                    p.SiteName,
		TeamID:                      p.TeamID,
		TeamName:                    p.TeamName,
		TransferType:                p.TransferType,
		ActivityType:                p.ActivityType,
		ActivityName:                p.ActivityName,
		EventName:                   p.EventName,
		PreviousState:               p.PreviousState,
		NextState:                   p.NextState,
		ConsultEpID:                 p.ConsultEpID,
		ConsultEpName:               p.ConsultEpName,
		ChildContactID:              p.ChildContactID,
		ChildContactType:            p.ChildContactType,
		Duration:                    p.Duration,
		DestinationAgentPhoneNumber: p.DestinationAgentPhoneNumber,
		DestinationAgentID:          p.DestinationAgentID,
		DestinationAgentName:        p.DestinationAgentName,
		DestinationAgentSessionID:   p.DestinationAgentSessionID,
		DestinationAgentChannelID:   p.DestinationAgentChannelID,
		DestinationAgentTeamID:      p.DestinationAgentTeamID,
		DestinationAgentTeamName:    p.DestinationAgentTeamName,
		DestinationQueueName:        p.DestinationQueueName,
		DestinationQueueID:          p.DestinationQueueID,
		TerminationReason:           p.TerminationReason,
		IvrScriptID:                 p.IvrScriptID,
		IvrScriptName:               p.IvrScriptName,
		IvrScriptTagID:              p.IvrScriptTagID,
		IvrScriptTagName:            p.IvrScriptTagName,
		LastActivityTime:            p.LastActivityTime,
		SkillsAssignedIn:            p.SkillsAssignedIn,
		RawData:                     datatypes.JSON(p.Raw),
	}
}

// AgentSessionResult mirrors the data tree of the agentSession query.
type AgentSessionResult struct {
	AgentSession struct {
		AgentSessions []AgentSessionPayload `json:"agentSessions"`
		PageInfo      PageInfo              `json:"pageInfo"`
	} `json:"agentSession"`
}

// AgentSessionPayload is one agent session node as returned by the search API.
type AgentSessionPayload struct {
	AgentSessionID string          `json:"agentSessionId"`
	AgentID        *string         `json:"agentId"`
	AgentName      *string         `json:"agentName"`
	UserLoginID    *string         `json:"userLoginId"`
	SiteID         *string         `json:"siteId"`
	SiteName       *string         `json:"siteName"`
	TeamID         *string         `json:"teamId"`
	TeamName       *string         `json:"teamName"`
	ChannelInfo    ChannelInfoList `json:"channelInfo"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the node and keeps a verbatim copy of its source bytes.
func (p *AgentSessionPayload) UnmarshalJSON(data []byte) error {
	type alias AgentSessionPayload
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = AgentSessionPayload(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// ToRow converts the session node to its agent_sessions row, folding in the
// normalized channel object. Channel columns stay nil when the session carried
// no channel info.
func (p *AgentSessionPayload) ToRow() AgentSession {
	row := AgentSession{
		AgentSessionID: p.AgentSessionID,
		AgentID:        p.AgentID,
		AgentName:      p.AgentName,
		UserLoginID:    p.UserLoginID,
		SiteID:         p.SiteID,
		SiteName:       p.SiteName,
		TeamID:         p.TeamID,
		TeamName:       p.TeamName,
		RawData:        datatypes.JSON(p.Raw),
	}
	if ch := p.ChannelInfo.First(); ch != nil {
		row.ChannelID = ch.ChannelID
		row.ChannelType = ch.ChannelType
		row.AgentPhoneNumber = ch.AgentPhoneNumber
		row.SubChannelType = ch.SubChannelType
	}
	return row
}

// ChannelInfoList holds the channelInfo field, which the search API returns as
// either a single object or a list depending on the session shape. Decoding
// canonicalizes both forms to a list; anything else (absent, null, a scalar)
// becomes the empty list. All consumers go through First, so shape handling
// lives here and nowhere else.
type ChannelInfoList []ChannelInfoPayload

// UnmarshalJSON implements the object-or-list decoding rule.
func (c *ChannelInfoList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	switch trimmed[0] {
	case '[':
		var list []ChannelInfoPayload
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*c = list
	case '{':
		var one ChannelInfoPayload
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*c = ChannelInfoList{one}
	default:
		// Not an object shape at all; treat as absent.
		*c = nil
	}
	return nil
}

// First returns the effective channel object: the first element when any are
// present, nil otherwise.
func (c ChannelInfoList) First() *ChannelInfoPayload {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// ChannelInfoPayload is one channel-info object under an agent session.
type ChannelInfoPayload struct {
	ChannelID        *string                 `json:"channelId"`
	ChannelType      *string                 `json:"channelType"`
	AgentPhoneNumber *string                 `json:"agentPhoneNumber"`
	SubChannelType   *string                 `json:"subChannelType"`
	Activities       AgentActivityConnection `json:"activities"`
}

// AgentActivityConnection is the activity list nested under a channel object.
type AgentActivityConnection struct {
	Nodes []AgentActivityPayload `json:"nodes"`
}

// CodeRef is a nested {id, name} sub-object (idleCode, queue, wrapupCode).
type CodeRef struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// AgentActivityPayload is one fine-grained agent state change under a channel.
type AgentActivityPayload struct {
	ID                *string  `json:"id"`
	AgentID           *string  `json:"agentId"`
	StartTime         *int64   `json:"startTime"`
	EndTime           *int64   `json:"endTime"`
	Duration          *int64   `json:"duration"`
	State             *string  `json:"state"`
	IdleCode          *CodeRef `json:"idleCode"`
	TaskID            *string  `json:"taskId"`
	Queue             *CodeRef `json:"queue"`
	WrapupCode        *CodeRef `json:"wrapupCode"`
	IsOutdial         *bool    `json:"isOutdial"`
	OutboundType      *string  `json:"outboundType"`
	IsCurrentActivity *bool    `json:"isCurrentActivity"`
	IsLoginActivity   *bool    `json:"isLoginActivity"`
	IsLogoutActivity  *bool    `json:"isLogoutActivity"`
	ChangedByID       *string  `json:"changedById"`
	ChangedByName     *string  `json:"changedByName"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the node and keeps a verbatim copy of its source bytes.
func (p *AgentActivityPayload) UnmarshalJSON(data []byte) error {
	type alias AgentActivityPayload
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = AgentActivityPayload(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// ToRow flattens the activity node into its agent_activities row under the
// given session. Absent {id, name} sub-objects flatten to nil pairs.
func (p *AgentActivityPayload) ToRow(agentSessionID string) AgentActivity {
	row := AgentActivity{
		AgentSessionID:    agentSessionID,
		AgentID:           p.AgentID,
		StartTime:         p.StartTime,
		EndTime:           p.EndTime,
		Duration:          p.Duration,
		State:             p.State,
		TaskID:            p.TaskID,
		IsOutdial:         p.IsOutdial,
		OutboundType:      p.OutboundType,
		IsCurrentActivity: p.IsCurrentActivity,
		IsLoginActivity:   p.IsLoginActivity,
		IsLogoutActivity:  p.IsLogoutActivity,
		ChangedByID:       p.ChangedByID,
		ChangedByName:     p.ChangedByName,
		RawData:           datatypes.JSON(p.Raw),
	}
	if p.IdleCode != nil {
		row.IdleCodeID = p.IdleCode.ID
		row.IdleCodeName = p.IdleCode.Name
	}
	if p.Queue != nil {
		row.QueueID = p.Queue.ID
		row.QueueName = p.Queue.Name
	}
	if p.WrapupCode != nil {
		row.WrapupCodeID = p.WrapupCode.ID
		row.WrapupCodeName = p.WrapupCode.Name
	}
	return row
}

package graphql

import "fmt"

// The three search API query bodies, templated with the extraction window in
// epoch milliseconds. Field lists must stay in sync with the column sets in
// internal/model; databases produced by this tool are read by downstream
// reporting that expects exactly these columns.
//
// Every connection requests pageInfo but only the first page is consumed; see
// DESIGN.md for the pagination decision.

const taskDetailsQueryTmpl = `
{
    taskDetails(from: %d, to: %d) {
        tasks {
            id
            activities {
                totalCount
                nodes {
                    id
                    isActive
                    createdTime
                    endedTime
                    agentId
                    agentName
                    agentPhoneNumber
                    agentSessionId
                    agentChannelId
                    entrypointId
                    entrypointName
                    queueId
                    queueName
                    siteId
                    siteName
                    teamId
                    teamName
                    transferType
                    activityType
                    activityName
                    eventName
                    previousState
                    nextState
                    consultEpId
                    consultEpName
                    childContactId
                    childContactType
                    duration
                    destinationAgentPhoneNumber
                    destinationAgentId
                    destinationAgentName
                    destinationAgentSessionId
                    destinationAgentChannelId
                    destinationAgentTeamId
                    destinationAgentTeamName
                    destinationQueueName
                    destinationQueueId
                    terminationReason
                    ivrScriptId
                    ivrScriptName
                    ivrScriptTagId
                    ivrScriptTagName
                    lastActivityTime
                    skillsAssignedIn
                }
                pageInfo {
                    hasNextPage
                    endCursor
                }
            }
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}
`

const agentSessionQueryTmpl = `
{
    agentSession(from: %d, to: %d) {
        agentSessions {
            agentSessionId
            agentId
            agentName
            userLoginId
            siteId
            siteName
            teamId
            teamName
            channelInfo {
                channelId
                channelType
                agentPhoneNumber
                subChannelType
                activities {
                    nodes {
                        id
                        startTime
                        endTime
                        duration
                        state
                        idleCode {
                            id
                            name
                        }
                        taskId
                        queue {
                            id
                            name
                        }
                        wrapupCode {
                            id
                            name
                        }
                        isOutdial
                        outboundType
                        isCurrentActivity
                        isLoginActivity
                        isLogoutActivity
                        changedById
                        changedByName
                    }
                }
            }
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}
`

const taskAggregationsQueryTmpl = `
{
    taskDetails(
        from: %d,
        to: %d,
        filter: {
            and: [
                { direction: { equals: "inbound" } }
                { channelType: { equals: telephony } }
                { owner: { notequals: { id: null } } }
            ]
        },
        aggregations: [
            { field: "id", type: count, name: "Total Contacts Handled" }
            { field: "connectedDuration", type: average, name: "Average Talk Time" }
            { field: "holdDuration", type: max, name: "Maximum Hold Time" }
            { field: "totalDuration", type: average, name: "Average Handle Time" }
        ]
    ) {
        tasks {
            owner {
                name
                id
            }
            aggregation {
                name
                value
            }
        }
        pageInfo {
            hasNextPage
            endCursor
        }
    }
}
`

// TaskDetailsQuery renders the task-details query over [from, to].
func TaskDetailsQuery(fromMs, toMs int64) string {
	return fmt.Sprintf(taskDetailsQueryTmpl, fromMs, toMs)
}

// AgentSessionQuery renders the agent-session query over [from, to].
func AgentSessionQuery(fromMs, toMs int64) string {
	return fmt.Sprintf(agentSessionQueryTmpl, fromMs, toMs)
}

// TaskAggregationsQuery renders the per-agent aggregation query over [from, to],
// filtered to inbound telephony tasks with an owner.
func TaskAggregationsQuery(fromMs, toMs int64) string {
	return fmt.Sprintf(taskAggregationsQueryTmpl, fromMs, toMs)
}

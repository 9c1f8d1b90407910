package events

import "time"

const EscalationRaisedType = "ESCALATION_RAISED"

// TopicEscalationRaised is the in-process pub/sub topic carrying
// escalation events from the pipeline to alert consumers.
const TopicEscalationRaised = "escalation.raised"

// NewEscalationRaised builds the event published when the pipeline
// decides a query needs human follow-up.
func NewEscalationRaised(sessionID, userType, department, priority string, reasons []string, recommendedDepartment string) Event {
	return BaseEvent{
		Type: EscalationRaisedType,
		Data: map[string]interface{}{
			"session_id":             sessionID,
			"user_type":              userType,
			"department":             department,
			"priority":               priority,
			"reasons":                reasons,
			"recommended_department": recommendedDepartment,
		},
		OccurredAt: time.Now(),
	}
}

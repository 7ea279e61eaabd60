package monitor

// Event type tags pushed to monitoring observers.
const (
	EventInit         = "init"
	EventHeartbeat    = "heartbeat"
	EventNotification = "notification"
)

// Event is one JSON message pushed to monitoring observers.
type Event map[string]any

// InitEvent is the snapshot sent to an observer immediately after subscribe.
func InitEvent(activeSessions, totalViolations int) Event {
	return Event{
		"type":            EventInit,
		"activeSessions":  activeSessions,
		"totalViolations": totalViolations,
	}
}

// HeartbeatEvent keeps an observer's stream alive between notifications.
func HeartbeatEvent() Event {
	return Event{"type": EventHeartbeat}
}

// TerminationEvent announces a policy-driven forced session end.
func TerminationEvent(sessionID, studentID string, violations int) Event {
	return Event{
		"type":       EventNotification,
		"event":      "exam_terminated",
		"sessionId":  sessionID,
		"studentId":  studentID,
		"violations": violations,
	}
}

// SessionStartedEvent announces a newly created session.
func SessionStartedEvent(sessionID, studentID string) Event {
	return Event{
		"type":      EventNotification,
		"event":     "session_started",
		"sessionId": sessionID,
		"studentId": studentID,
	}
}

// SessionEndedEvent announces a manual session end.
func SessionEndedEvent(sessionID, reason string) Event {
	return Event{
		"type":      EventNotification,
		"event":     "session_ended",
		"sessionId": sessionID,
		"reason":    reason,
	}
}

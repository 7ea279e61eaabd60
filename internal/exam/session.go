package exam

import "time"

// Session status values. A session leaves StatusActive at most once and
// never returns to it.
const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusEnded      = "ended"
)

// Session is one proctored exam attempt, tracked from creation until
// termination or manual end. Records are kept for the process lifetime.
type Session struct {
	SessionID      string     `json:"sessionId"`
	StudentID      string     `json:"studentId"`
	StudentName    string     `json:"studentName"`
	ExamID         string     `json:"examId"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	LastActivity   time.Time  `json:"lastActivity"`
	LastViolation  *time.Time `json:"lastViolation,omitempty"`
	ViolationCount int        `json:"violationCount"`
	Status         string     `json:"status"`
	EndReason      string     `json:"endReason,omitempty"`
}

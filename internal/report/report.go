// Package report derives the terminal summary for a proctoring session from
// the session store and the violation log.
package report

import (
	"fmt"
	"time"

	"github.com/proctorhub/backend/internal/exam"
	"github.com/proctorhub/backend/internal/policy"
	"github.com/proctorhub/backend/internal/violation"
)

// Report is the terminal summary for one session.
type Report struct {
	SessionID       string                `json:"sessionId"`
	StudentID       string                `json:"studentId"`
	StudentName     string                `json:"studentName"`
	ExamID          string                `json:"examId"`
	StartTime       time.Time             `json:"startTime"`
	EndTime         time.Time             `json:"endTime"`
	Duration        string                `json:"duration"`
	TotalViolations int                   `json:"totalViolations"`
	Status          string                `json:"status"`
	EndReason       string                `json:"endReason,omitempty"`
	RiskLevel       string                `json:"riskLevel"`
	Violations      []violation.Violation `json:"violations"`
}

// Generator reads the session store and violation log to build reports.
type Generator struct {
	store *exam.Store
	vlog  *violation.Log
	now   func() time.Time
}

// NewGenerator creates a report generator over the given store and log.
func NewGenerator(store *exam.Store, vlog *violation.Log) *Generator {
	return &Generator{store: store, vlog: vlog, now: time.Now}
}

// Generate builds the report for a session. Returns false when the session
// is unknown. For sessions that have not ended, the end time is now.
func (g *Generator) Generate(sessionID string) (Report, bool) {
	s, ok := g.store.Get(sessionID)
	if !ok {
		return Report{}, false
	}
	end := g.now()
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return Report{
		SessionID:       s.SessionID,
		StudentID:       s.StudentID,
		StudentName:     s.StudentName,
		ExamID:          s.ExamID,
		StartTime:       s.StartTime,
		EndTime:         end,
		Duration:        formatDuration(end.Sub(s.StartTime)),
		TotalViolations: s.ViolationCount,
		Status:          s.Status,
		EndReason:       s.EndReason,
		RiskLevel:       policy.RiskLevel(s.ViolationCount),
		Violations:      g.vlog.ForSession(sessionID),
	}, true
}

// formatDuration renders floored hours/minutes/seconds. Negative intervals
// (end before start, e.g. a skewed client clock) clamp to zero.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

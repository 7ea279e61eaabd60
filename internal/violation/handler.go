package violation

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proctorhub/backend/internal/audit"
	"github.com/proctorhub/backend/internal/exam"
	"github.com/proctorhub/backend/internal/monitor"
	"github.com/proctorhub/backend/internal/policy"
	"github.com/proctorhub/backend/pkg/response"
)

// Handler ingests violation reports and serves the admin query endpoint.
// Every report is appended to the log and audited even when it references an
// unknown session; only the session-side counter mutation is skipped then.
type Handler struct {
	vlog   *Log
	store  *exam.Store
	engine policy.Engine
	hub    *monitor.Hub
	sink   audit.Sink
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a violation handler.
func NewHandler(vlog *Log, store *exam.Store, engine policy.Engine, hub *monitor.Hub, sink audit.Sink, logger *zap.Logger) *Handler {
	return &Handler{
		vlog:   vlog,
		store:  store,
		engine: engine,
		hub:    hub,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// Report handles POST /violations. The body is a free-form JSON object; only
// sessionId, studentId and timestamp are interpreted, everything else is
// kept opaque in the record's details.
func (h *Handler) Report(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	sessionID, _ := body["sessionId"].(string)
	studentID, _ := body["studentId"].(string)
	ts := h.now()
	if raw, ok := body["timestamp"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			ts = parsed
		}
	}
	details := make(map[string]any)
	for k, v := range body {
		switch k {
		case "sessionId", "studentId", "timestamp":
		default:
			details[k] = v
		}
	}

	h.vlog.Append(Violation{
		SessionID: sessionID,
		StudentID: studentID,
		Timestamp: ts,
		Details:   details,
	})
	if err := h.sink.Append("violations", body); err != nil {
		h.logger.Error("audit append failed", zap.Error(err))
	}

	if s, ok := h.store.RecordViolation(sessionID, ts); ok {
		if h.engine.ShouldTerminate(s.ViolationCount) {
			// TerminateIfActive wins at most once per session, so the
			// notification cannot be re-triggered by later violations.
			if t, terminated := h.store.TerminateIfActive(sessionID); terminated {
				h.hub.Broadcast(monitor.TerminationEvent(t.SessionID, t.StudentID, t.ViolationCount))
			}
		}
	} else if sessionID != "" {
		h.logger.Debug("violation for unknown session", zap.String("session_id", sessionID))
	}

	response.OK(c, gin.H{"message": "violation logged"})
}

// List handles GET /admin/violations with optional startDate, endDate and
// studentId query filters. Unparseable dates impose no constraint.
func (h *Handler) List(c *gin.Context) {
	var f Filter
	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.StartDate = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.EndDate = &t
		}
	}
	f.StudentID = c.Query("studentId")

	list := h.vlog.Query(f)
	response.OK(c, gin.H{"count": len(list), "violations": list})
}

package exam

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proctorhub/backend/internal/audit"
	"github.com/proctorhub/backend/internal/monitor"
	"github.com/proctorhub/backend/pkg/response"
)

// Handler serves session creation and status lookups.
type Handler struct {
	store  *Store
	hub    *monitor.Hub
	sink   audit.Sink
	logger *zap.Logger
}

// NewHandler creates a session handler.
func NewHandler(store *Store, hub *monitor.Hub, sink audit.Sink, logger *zap.Logger) *Handler {
	return &Handler{store: store, hub: hub, sink: sink, logger: logger}
}

type createRequest struct {
	StudentID   string `json:"studentId"`
	ExamID      string `json:"examId"`
	StudentName string `json:"studentName"`
}

// Create handles POST /sessions. Identifiers are opaque and unvalidated;
// missing fields default to empty strings rather than rejecting.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	_ = c.ShouldBindJSON(&req)

	s := h.store.Create(req.StudentID, req.ExamID, req.StudentName)

	if err := h.sink.Append("sessions", map[string]any{
		"sessionId":   s.SessionID,
		"studentId":   s.StudentID,
		"studentName": s.StudentName,
		"examId":      s.ExamID,
	}); err != nil {
		h.logger.Error("audit append failed", zap.Error(err))
	}
	h.hub.Broadcast(monitor.SessionStartedEvent(s.SessionID, s.StudentID))

	h.logger.Info("session created",
		zap.String("session_id", s.SessionID),
		zap.String("student_id", s.StudentID),
		zap.String("exam_id", s.ExamID),
	)
	response.OK(c, gin.H{"sessionId": s.SessionID, "message": "session created"})
}

// Status handles GET /sessions/:id.
func (h *Handler) Status(c *gin.Context) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "session not found")
		return
	}
	response.OK(c, gin.H{"session": s})
}

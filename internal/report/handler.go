package report

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proctorhub/backend/internal/exam"
	"github.com/proctorhub/backend/internal/monitor"
	"github.com/proctorhub/backend/pkg/response"
)

// Handler serves manual session end (which returns the terminal report) and
// standalone report retrieval.
type Handler struct {
	store  *exam.Store
	gen    *Generator
	hub    *monitor.Hub
	logger *zap.Logger
}

// NewHandler creates a report handler.
func NewHandler(store *exam.Store, gen *Generator, hub *monitor.Hub, logger *zap.Logger) *Handler {
	return &Handler{store: store, gen: gen, hub: hub, logger: logger}
}

type endRequest struct {
	Reason string `json:"reason"`
}

// EndSession handles POST /sessions/:id/end. The reason defaults to
// "manual". Unknown session ids mutate nothing and return 404.
func (h *Handler) EndSession(c *gin.Context) {
	id := c.Param("id")
	var req endRequest
	_ = c.ShouldBindJSON(&req)

	s, ok := h.store.End(id, req.Reason)
	if !ok {
		response.NotFound(c, "session not found")
		return
	}

	rep, _ := h.gen.Generate(id)
	h.hub.Broadcast(monitor.SessionEndedEvent(s.SessionID, s.EndReason))
	h.logger.Info("session ended",
		zap.String("session_id", s.SessionID),
		zap.String("reason", s.EndReason),
	)
	response.OK(c, gin.H{"message": "session ended", "report": rep})
}

// GetReport handles GET /sessions/:id/report for sessions in any state.
func (h *Handler) GetReport(c *gin.Context) {
	rep, ok := h.gen.Generate(c.Param("id"))
	if !ok {
		response.NotFound(c, "session not found")
		return
	}
	response.OK(c, gin.H{"report": rep})
}

// Package dashboard aggregates session and violation counts for the
// monitoring dashboard.
package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/proctorhub/backend/internal/exam"
	"github.com/proctorhub/backend/internal/violation"
	"github.com/proctorhub/backend/pkg/response"
)

// Handler serves GET /dashboard/stats.
type Handler struct {
	store       *exam.Store
	vlog        *violation.Log
	recentLimit int
}

// NewHandler creates a dashboard handler. recentLimit caps the recent
// violations list; non-positive values fall back to 10.
func NewHandler(store *exam.Store, vlog *violation.Log, recentLimit int) *Handler {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &Handler{store: store, vlog: vlog, recentLimit: recentLimit}
}

// GetStats returns aggregate counts plus the most recent violations,
// most-recent-first.
func (h *Handler) GetStats(c *gin.Context) {
	tail := h.vlog.RecentTail(h.recentLimit)
	recent := make([]violation.Violation, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		recent = append(recent, tail[i])
	}

	response.OK(c, gin.H{"stats": gin.H{
		"totalSessions":      h.store.Count(),
		"activeSessions":     h.store.CountByStatus(exam.StatusActive),
		"terminatedSessions": h.store.CountByStatus(exam.StatusTerminated),
		"totalViolations":    h.vlog.Len(),
		"recentViolations":   recent,
	}})
}

package monitor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// StreamHandler serves GET /monitor/stream: a long-lived SSE stream that
// delivers the init snapshot immediately, then broadcasts and a heartbeat on
// the given interval until the client disconnects. The heartbeat ticker is
// scoped to this connection and stopped on teardown.
func StreamHandler(hub *Hub, heartbeat time.Duration) gin.HandlerFunc {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")
		c.Writer.WriteHeaderNow()

		obs := hub.Subscribe()
		defer hub.Unsubscribe(obs)

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		write := func(ev Event) bool {
			data, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
				return false
			}
			c.Writer.Flush()
			return true
		}

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-obs.Done():
				return
			case ev := <-obs.Events():
				if !write(ev) {
					return
				}
			case <-ticker.C:
				if !write(HeartbeatEvent()) {
					return
				}
			}
		}
	}
}

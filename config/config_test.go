package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Proctor.ViolationThreshold)
	assert.Equal(t, 10, cfg.Proctor.RecentViolationLimit)
	assert.Equal(t, 30*time.Second, cfg.Monitor.HeartbeatInterval)
	assert.Equal(t, "logs", cfg.Audit.Dir)
	assert.Zero(t, cfg.Server.WriteTimeout, "no write deadline so monitor streams stay open")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("VIOLATION_THRESHOLD", "3")
	t.Setenv("MONITOR_HEARTBEAT_SEC", "5")
	t.Setenv("AUDIT_LOG_DIR", "/tmp/audit")
	t.Setenv("RECENT_VIOLATION_LIMIT", "notanumber")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Proctor.ViolationThreshold)
	assert.Equal(t, 5*time.Second, cfg.Monitor.HeartbeatInterval)
	assert.Equal(t, "/tmp/audit", cfg.Audit.Dir)
	assert.Equal(t, 10, cfg.Proctor.RecentViolationLimit, "bad values fall back to defaults")
}

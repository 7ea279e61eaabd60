package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server  ServerConfig
	Proctor ProctorConfig
	Monitor MonitorConfig
	Audit   AuditConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// ProctorConfig holds session policy settings.
type ProctorConfig struct {
	ViolationThreshold   int // violation count that forces termination
	RecentViolationLimit int // how many violations the dashboard shows
}

// MonitorConfig holds live-monitoring stream settings.
type MonitorConfig struct {
	HeartbeatInterval time.Duration // per-observer heartbeat push interval
	ObserverBuffer    int           // buffered events per observer before it is dropped
}

// AuditConfig holds the file audit sink settings.
type AuditConfig struct {
	Dir string // directory for the daily audit files
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SEC", "30"))
	// WriteTimeout defaults to 0 (no deadline) so monitor streams stay open.
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SEC", "0"))
	heartbeat, _ := strconv.Atoi(getEnv("MONITOR_HEARTBEAT_SEC", "30"))

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Proctor: ProctorConfig{
			ViolationThreshold:   getEnvInt("VIOLATION_THRESHOLD", 5),
			RecentViolationLimit: getEnvInt("RECENT_VIOLATION_LIMIT", 10),
		},
		Monitor: MonitorConfig{
			HeartbeatInterval: time.Duration(heartbeat) * time.Second,
			ObserverBuffer:    getEnvInt("MONITOR_OBSERVER_BUFFER", 64),
		},
		Audit: AuditConfig{
			Dir: getEnv("AUDIT_LOG_DIR", "logs"),
		},
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

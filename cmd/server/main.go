// Package main runs the exam proctoring backend: session tracking, violation
// ingestion, auto-termination policy and the live monitoring stream.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/proctorhub/backend/config"
	"github.com/proctorhub/backend/internal/audit"
	"github.com/proctorhub/backend/internal/dashboard"
	"github.com/proctorhub/backend/internal/exam"
	"github.com/proctorhub/backend/internal/middleware"
	"github.com/proctorhub/backend/internal/monitor"
	"github.com/proctorhub/backend/internal/policy"
	"github.com/proctorhub/backend/internal/report"
	"github.com/proctorhub/backend/internal/violation"
	"github.com/proctorhub/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	var sink audit.Sink
	fileSink, err := audit.NewFileSink(cfg.Audit.Dir)
	if err != nil {
		logger.Warn("audit sink disabled", zap.Error(err))
		sink = audit.Nop()
	} else {
		sink = fileSink
	}

	store := exam.NewStore()
	vlog := violation.NewLog()
	engine := policy.NewEngine(cfg.Proctor.ViolationThreshold)

	hub := monitor.NewHub(logger, cfg.Monitor.ObserverBuffer)
	hub.SetStatsFunc(func() (int, int) {
		return store.CountByStatus(exam.StatusActive), vlog.Len()
	})

	reportGen := report.NewGenerator(store, vlog)

	examHandler := exam.NewHandler(store, hub, sink, logger)
	violationHandler := violation.NewHandler(vlog, store, engine, hub, sink, logger)
	reportHandler := report.NewHandler(store, reportGen, hub, logger)
	dashboardHandler := dashboard.NewHandler(store, vlog, cfg.Proctor.RecentViolationLimit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	router.POST("/sessions", examHandler.Create)
	router.GET("/sessions/:id", examHandler.Status)
	router.POST("/sessions/:id/end", reportHandler.EndSession)
	router.GET("/sessions/:id/report", reportHandler.GetReport)

	router.POST("/violations", violationHandler.Report)

	admin := router.Group("/admin")
	admin.GET("/violations", violationHandler.List)

	router.GET("/dashboard/stats", dashboardHandler.GetStats)

	router.GET("/monitor/stream", monitor.StreamHandler(hub, cfg.Monitor.HeartbeatInterval))
	router.GET("/ws", monitor.ServeWs(hub, logger, cfg.Monitor.HeartbeatInterval))

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     router,
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		// WriteTimeout stays zero by default: monitor streams are long-lived.
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

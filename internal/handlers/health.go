package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todolist-web/internal/session"
)

// Version is reported by the detailed health check
var Version = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	db        *gorm.DB
	sessions  *session.Store
	startTime time.Time
}

// NewHealthHandler creates a new health handler. db is nil when lists are
// kept in sessions.
func NewHealthHandler(db *gorm.DB, sessions *session.Store) *HealthHandler {
	return &HealthHandler{
		db:        db,
		sessions:  sessions,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Version   string                 `json:"version"`
	Checks    map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BasicHealth handles GET /health
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// DetailedHealth handles GET /health/detailed with database connectivity,
// session and runtime information
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	checks := make(map[string]HealthCheck)
	overallStatus := "healthy"

	if h.db != nil {
		dbCheck := h.checkDatabase(c.Request.Context())
		checks["database"] = dbCheck
		if dbCheck.Status != "healthy" {
			overallStatus = "unhealthy"
		}
	}

	checks["sessions"] = h.checkSessions()
	checks["system"] = h.getSystemInfo()

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    formatDuration(time.Since(h.startTime)),
		Version:   Version,
		Checks:    checks,
	}

	if overallStatus == "unhealthy" {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessProbe handles GET /health/ready. Session mode has no
// dependency to wait for.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	if h.db != nil {
		dbCheck := h.checkDatabase(c.Request.Context())
		if dbCheck.Status != "healthy" {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not_ready",
				"reason":  "database_unavailable",
				"message": dbCheck.Message,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessProbe handles GET /health/live
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// checkDatabase verifies database connectivity
func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	sqlDB, err := h.db.DB()
	if err != nil {
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Failed to get database instance",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Database ping failed",
			Details: map[string]interface{}{
				"error": err.Error(),
			},
		}
	}

	stats := sqlDB.Stats()

	return HealthCheck{
		Status:  "healthy",
		Message: "Database connection is healthy",
		Details: map[string]interface{}{
			"open_connections":    stats.OpenConnections,
			"in_use":              stats.InUse,
			"idle":                stats.Idle,
			"wait_count":          stats.WaitCount,
			"wait_duration_ms":    stats.WaitDuration.Milliseconds(),
			"max_idle_closed":     stats.MaxIdleClosed,
			"max_lifetime_closed": stats.MaxLifetimeClosed,
		},
	}
}

func (h *HealthHandler) checkSessions() HealthCheck {
	if h.sessions == nil {
		return HealthCheck{
			Status:  "unknown",
			Message: "Session store not initialized",
		}
	}
	return HealthCheck{
		Status:  "info",
		Message: "Session store",
		Details: map[string]interface{}{
			"active":      h.sessions.Len(),
			"ttl_seconds": int(h.sessions.TTL().Seconds()),
		},
	}
}

// getSystemInfo returns system information
func (h *HealthHandler) getSystemInfo() HealthCheck {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return HealthCheck{
		Status:  "info",
		Message: "System information",
		Details: map[string]interface{}{
			"goroutines":      runtime.NumGoroutine(),
			"memory_alloc_mb": m.Alloc / 1024 / 1024,
			"memory_sys_mb":   m.Sys / 1024 / 1024,
			"num_gc":          m.NumGC,
			"go_version":      runtime.Version(),
		},
	}
}

// formatDuration formats a duration into a human-readable string
func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

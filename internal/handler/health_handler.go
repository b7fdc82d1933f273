package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/nextstopchina/forms-api/internal/service"
)

// HealthHandler exposes liveness, readiness and the metrics scrape endpoint.
type HealthHandler struct {
	db      *sqlx.DB
	metrics *service.MetricsService
}

// NewHealthHandler constructs HealthHandler. The database handle may be nil
// in tests, in which case readiness always reports ready.
func NewHealthHandler(db *sqlx.DB, metrics *service.MetricsService) *HealthHandler {
	return &HealthHandler{db: db, metrics: metrics}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness to accept submissions. The database is the only
// hard dependency; Redis and the email provider degrade gracefully.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "database"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Prometheus serves the metrics scrape endpoint.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

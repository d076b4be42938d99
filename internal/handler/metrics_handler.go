package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modern-research-group/course-validator/internal/service"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	catalog *service.CatalogService
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, catalog *service.CatalogService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, catalog: catalog}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness. The service cannot validate without a loaded
// catalog, so readiness requires at least one course.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.catalog == nil || h.catalog.Size() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "catalog not loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "courses": h.catalog.Size()})
}

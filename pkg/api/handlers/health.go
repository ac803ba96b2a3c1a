package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmarsden/feedbox/pkg/api/types"
	"github.com/tmarsden/feedbox/pkg/feeder"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	guard       *feeder.Guard
	bridgeSetUp bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(guard *feeder.Guard, bridgeConfigured bool) *HealthHandler {
	return &HealthHandler{guard: guard, bridgeSetUp: bridgeConfigured}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and its devices
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	feederStatus := "unconfigured"
	if h.guard.IsConfigured() {
		feederStatus = "configured"
	}

	bridgeStatus := "unconfigured"
	if h.bridgeSetUp {
		bridgeStatus = "configured"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if feederStatus == "unconfigured" {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Feeder:    feederStatus,
		Bridge:    bridgeStatus,
		Timestamp: time.Now(),
	})
}

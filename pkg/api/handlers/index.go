package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmarsden/feedbox/pkg/api/types"
)

// Version is the service version reported by the capability listing.
const Version = "1.0.0"

// IndexHandler handles the root capability listing
type IndexHandler struct{}

// NewIndexHandler creates a new index handler
func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

// Index handles GET /
// @Summary      Capability listing
// @Description  Lists the endpoints this service exposes
// @Tags         meta
// @Produce      json
// @Success      200  {object}  types.CapabilitiesResponse
// @Router       / [get]
func (h *IndexHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, types.CapabilitiesResponse{
		Service: "feedbox",
		Version: Version,
		Endpoints: map[string]string{
			"POST /feed":           "Dispense one manual feed",
			"GET /scan-dps":        "Scan the feeder's data points",
			"GET /feed-history":    "Read and decode the feeder's status report",
			"GET /health":          "Service and device health",
			"GET /api/lamps":       "List lamps on the vendor bridge",
			"POST /api/auth/login": "Exchange credentials for a bearer token",
		},
	})
}

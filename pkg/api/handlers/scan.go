package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tmarsden/feedbox/pkg/api/types"
	"github.com/tmarsden/feedbox/pkg/feeder"
)

// ScanHandler handles the data-point scan endpoint
type ScanHandler struct {
	guard *feeder.Guard
}

// NewScanHandler creates a new scan handler
func NewScanHandler(guard *feeder.Guard) *ScanHandler {
	return &ScanHandler{guard: guard}
}

// Scan handles GET /scan-dps
// @Summary      Scan data points
// @Description  Probes the fixed allow-list of data points over one device session. Points that fail to read are skipped; the scan is best-effort.
// @Tags         feeder
// @Produce      json
// @Success      200  {object}  types.ScanResponse
// @Failure      500  {object}  types.ScanResponse  "Device error"
// @Router       /scan-dps [get]
func (h *ScanHandler) Scan(c *gin.Context) {
	ctx := c.Request.Context()

	available := make(map[string]any)
	err := h.guard.WithSession(ctx, func(client feeder.Client) error {
		// Sequential on purpose: the device handles one request at a time.
		for _, dp := range feeder.ScanDPs {
			value, err := client.Get(ctx, dp)
			if err != nil {
				log.Debug().Int("dp", dp).Err(err).Msg("Data point not readable")
				continue
			}
			available[strconv.Itoa(dp)] = value
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ScanResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.ScanResponse{
		Success:      true,
		AvailableDPs: available,
		TotalFound:   len(available),
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmarsden/feedbox/pkg/api/types"
	"github.com/tmarsden/feedbox/pkg/feeder"
)

// HistoryHandler handles the feed-history endpoint
type HistoryHandler struct {
	guard *feeder.Guard
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(guard *feeder.Guard) *HistoryHandler {
	return &HistoryHandler{guard: guard}
}

// History handles GET /feed-history
// @Summary      Read feed history
// @Description  Reads the feeder's status report and decodes it into remaining/count/timestamp fields. A report in an unexpected encoding is returned as-is.
// @Tags         feeder
// @Produce      json
// @Success      200  {object}  types.HistoryResponse
// @Failure      500  {object}  types.HistoryResponse  "Device error"
// @Router       /feed-history [get]
func (h *HistoryHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	var raw any
	err := h.guard.WithSession(ctx, func(client feeder.Client) error {
		var err error
		raw, err = client.Get(ctx, feeder.DPFeedHistory)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.HistoryResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	decoded := feeder.DecodeHistory(raw)

	var history any = decoded
	if decoded.IsRaw() {
		history = decoded.Raw
	}

	c.JSON(http.StatusOK, types.HistoryResponse{
		Success:     true,
		FeedHistory: history,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tmarsden/feedbox/pkg/api/types"
	"github.com/tmarsden/feedbox/pkg/db"
	"github.com/tmarsden/feedbox/pkg/feeder"
)

// FeedHandler handles the manual feed endpoint
type FeedHandler struct {
	guard  *feeder.Guard
	events db.FeedEventStore
}

// NewFeedHandler creates a new feed handler. events may be nil when no
// database is available.
func NewFeedHandler(guard *feeder.Guard, events db.FeedEventStore) *FeedHandler {
	return &FeedHandler{guard: guard, events: events}
}

// Feed handles POST /feed
// @Summary      Dispense a feed
// @Description  Triggers one manual feed. The command is issued at most once per call; a failure is not retried.
// @Tags         feeder
// @Produce      json
// @Success      200  {object}  types.FeedResponse
// @Failure      500  {object}  types.FeedResponse  "Device error"
// @Router       /feed [post]
func (h *FeedHandler) Feed(c *gin.Context) {
	ctx := c.Request.Context()

	err := h.guard.WithSession(ctx, func(client feeder.Client) error {
		return client.Set(ctx, feeder.DPManualFeed, feeder.ManualFeedPortions)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.FeedResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	// The feed already happened; a logging failure must not fail the call.
	if h.events != nil {
		if err := h.events.Record(ctx, "api", feeder.ManualFeedPortions); err != nil {
			log.Warn().Err(err).Msg("Failed to record feed event")
		}
	}

	c.JSON(http.StatusOK, types.FeedResponse{
		Success: true,
		Message: "Feed dispensed",
	})
}

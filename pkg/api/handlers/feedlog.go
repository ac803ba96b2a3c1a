package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tmarsden/feedbox/pkg/api/types"
	"github.com/tmarsden/feedbox/pkg/db"
)

// FeedLogHandler handles the local feed audit log endpoint
type FeedLogHandler struct {
	events db.FeedEventStore
}

// NewFeedLogHandler creates a new feed log handler
func NewFeedLogHandler(events db.FeedEventStore) *FeedLogHandler {
	return &FeedLogHandler{events: events}
}

// List handles GET /api/feed-log
// @Summary      List recent feeds
// @Description  Returns the local audit log of manual feeds dispatched through this service
// @Tags         feeder
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries to return (default 50)"
// @Success      200    {object}  types.FeedLogResponse
// @Failure      500    {object}  types.ErrorResponse
// @Router       /api/feed-log [get]
func (h *FeedLogHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	events, err := h.events.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "store_error",
			Message: err.Error(),
		})
		return
	}

	entries := make([]types.FeedLogEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, types.FeedLogEntry{
			ID:        e.ID,
			Source:    e.Source,
			Portions:  e.Portions,
			CreatedAt: e.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, types.FeedLogResponse{
		Events: entries,
		Count:  len(entries),
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmarsden/feedbox/pkg/api/types"
	"github.com/tmarsden/feedbox/pkg/lamps"
	"github.com/tmarsden/feedbox/pkg/schema"
)

// LampsHandler handles the lamp bridge endpoints
type LampsHandler struct {
	bridge    *lamps.Client
	validator *schema.Validator
}

// NewLampsHandler creates a new lamps handler. bridge may be nil when no
// bridge is configured; the routes then respond 503.
func NewLampsHandler(bridge *lamps.Client, validator *schema.Validator) *LampsHandler {
	return &LampsHandler{bridge: bridge, validator: validator}
}

func (h *LampsHandler) bridgeUnavailable(c *gin.Context) bool {
	if h.bridge != nil {
		return false
	}
	c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
		Error:   "bridge_unconfigured",
		Message: "No lamp bridge is configured",
	})
	return true
}

func mapBridgeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lamps.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Lamp not found",
		})
	case errors.Is(err, lamps.ErrBridgeUnavailable):
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:   "bridge_unavailable",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "bridge_error",
			Message: err.Error(),
		})
	}
}

// List handles GET /api/lamps
// @Summary      List lamps
// @Description  Returns all lamps known to the bridge
// @Tags         lamps
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.ListLampsResponse
// @Failure      502  {object}  types.ErrorResponse  "Bridge unreachable"
// @Failure      503  {object}  types.ErrorResponse  "Bridge not configured"
// @Router       /api/lamps [get]
func (h *LampsHandler) List(c *gin.Context) {
	if h.bridgeUnavailable(c) {
		return
	}

	result, err := h.bridge.List(c.Request.Context())
	if err != nil {
		mapBridgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ListLampsResponse{
		Lamps: result,
		Count: len(result),
	})
}

// Get handles GET /api/lamps/:id
// @Summary      Get a lamp
// @Tags         lamps
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bridge lamp ID"
// @Success      200  {object}  types.LampResponse
// @Failure      404  {object}  types.ErrorResponse  "Lamp not found"
// @Failure      502  {object}  types.ErrorResponse  "Bridge unreachable"
// @Router       /api/lamps/{id} [get]
func (h *LampsHandler) Get(c *gin.Context) {
	if h.bridgeUnavailable(c) {
		return
	}

	lamp, err := h.bridge.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapBridgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.LampResponse{Lamp: lamp})
}

// SetState handles PUT /api/lamps/:id/state
// @Summary      Set lamp state
// @Description  Writes a partial state (on/bri/hue/sat) to a lamp, validated before dispatch
// @Tags         lamps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Bridge lamp ID"
// @Param        request  body      object  true  "State to set"
// @Success      200      {object}  types.LampResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid state payload"
// @Failure      404      {object}  types.ErrorResponse  "Lamp not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge unreachable"
// @Router       /api/lamps/{id}/state [put]
func (h *LampsHandler) SetState(c *gin.Context) {
	if h.bridgeUnavailable(c) {
		return
	}

	var state map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&state); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.validator.Validate(lamps.StateSchema, state); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.bridge.SetState(ctx, id, state); err != nil {
		mapBridgeError(c, err)
		return
	}

	// Read back the lamp so the dashboard sees the applied state.
	lamp, err := h.bridge.Get(ctx, id)
	if err != nil {
		mapBridgeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.LampResponse{Lamp: lamp})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tmarsden/feedbox/pkg/api/types"
	"github.com/tmarsden/feedbox/pkg/auth"
)

// AuthHandler handles the session lifecycle endpoints
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// bearerToken mirrors api.BearerToken; duplicated here to keep the
// handlers package free of an import cycle with the router package.
func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return ""
	}
	return header[len(prefix):]
}

// Login handles POST /api/auth/login
// @Summary      Log in
// @Description  Exchanges credentials for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      types.LoginRequest  true  "Credentials"
// @Success      200      {object}  types.LoginResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      401      {object}  types.ErrorResponse  "Bad credentials"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "username and password are required",
		})
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, types.ErrorResponse{
				Error:   "bad_credentials",
				Message: "Invalid username or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "auth_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{
		Token: token,
		User:  user,
	})
}

// Verify handles GET /api/auth/verify
// @Summary      Verify a token
// @Description  Validates the presented bearer token and returns its user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  types.VerifyResponse
// @Failure      401  {object}  types.ErrorResponse  "Not authenticated"
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{
			Error:   "unauthorized",
			Message: "Missing bearer token",
		})
		return
	}

	user, err := h.svc.Verify(c.Request.Context(), token)
	if err != nil {
		// Every verification failure reads as "not authenticated".
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired token",
		})
		return
	}

	c.JSON(http.StatusOK, types.VerifyResponse{User: user})
}

// Logout handles POST /api/auth/logout
// @Summary      Log out
// @Description  Revokes the session behind the presented bearer token
// @Tags         auth
// @Produce      json
// @Success      204  "Session revoked"
// @Failure      500  {object}  types.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "auth_error",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

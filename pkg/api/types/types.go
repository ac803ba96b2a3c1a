package types

import (
	"time"

	"github.com/tmarsden/feedbox/pkg/auth"
	"github.com/tmarsden/feedbox/pkg/lamps"
)

// --- Request DTOs ---

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error on the authenticated routes
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FeedResponse is returned from POST /feed. Error carries the raw
// transport error on failure.
type FeedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ScanResponse is returned from GET /scan-dps
type ScanResponse struct {
	Success      bool           `json:"success"`
	AvailableDPs map[string]any `json:"available_dps"`
	TotalFound   int            `json:"total_found"`
	Error        string         `json:"error,omitempty"`
}

// HistoryResponse is returned from GET /feed-history. FeedHistory is the
// decoded structure when the device returned a status string, or the raw
// device value otherwise.
type HistoryResponse struct {
	Success     bool   `json:"success"`
	FeedHistory any    `json:"feed_history,omitempty"` // omitted only on failure
	Error       string `json:"error,omitempty"`
}

// CapabilitiesResponse is returned from GET /
type CapabilitiesResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Feeder    string    `json:"feeder"`
	Bridge    string    `json:"bridge"`
	Timestamp time.Time `json:"timestamp"`
}

// LoginResponse is returned from POST /api/auth/login
type LoginResponse struct {
	Token string         `json:"token"`
	User  *auth.Identity `json:"user"`
}

// VerifyResponse is returned from GET /api/auth/verify
type VerifyResponse struct {
	User *auth.Identity `json:"user"`
}

// ListLampsResponse is returned from GET /api/lamps
type ListLampsResponse struct {
	Lamps []lamps.Lamp `json:"lamps"`
	Count int          `json:"count"`
}

// LampResponse is returned from GET /api/lamps/:id and PUT .../state
type LampResponse struct {
	Lamp *lamps.Lamp `json:"lamp"`
}

// FeedLogEntry is one locally recorded manual feed
type FeedLogEntry struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`
	Portions  int       `json:"portions"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedLogResponse is returned from GET /api/feed-log
type FeedLogResponse struct {
	Events []FeedLogEntry `json:"events"`
	Count  int            `json:"count"`
}

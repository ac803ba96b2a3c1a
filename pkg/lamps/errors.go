package lamps

import "errors"

var (
	// ErrNotFound indicates the bridge does not know the requested lamp
	ErrNotFound = errors.New("lamp not found")

	// ErrBridgeUnavailable indicates the bridge could not be reached or
	// returned a transport-level failure
	ErrBridgeUnavailable = errors.New("lamp bridge unavailable")

	// ErrNotConfigured indicates no bridge address was provided
	ErrNotConfigured = errors.New("lamp bridge not configured")
)

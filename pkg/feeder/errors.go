package feeder

import "errors"

var (
	// ErrNotConnected indicates no session is established with the device
	ErrNotConnected = errors.New("feeder not connected")

	// ErrTimeout indicates a device operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrBadFrame indicates a malformed protocol frame was received
	ErrBadFrame = errors.New("malformed protocol frame")

	// ErrDPNotFound indicates the device did not report the requested data point
	ErrDPNotFound = errors.New("data point not reported by device")

	// ErrNotConfigured indicates no device credentials were provided
	ErrNotConfigured = errors.New("feeder not configured")
)

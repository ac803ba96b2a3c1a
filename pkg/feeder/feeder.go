package feeder

import "context"

// Client defines the interface for talking to a smart pet feeder.
// The feeder exposes its state as numbered data points (DPs); a client
// maintains a single session to the physical device and performs one
// operation at a time.
type Client interface {
	// Connect establishes a session with the device
	Connect(ctx context.Context) error

	// Disconnect tears down the session. Safe to call when not connected.
	Disconnect() error

	// Get reads the current value of a single data point
	Get(ctx context.Context, dp int) (any, error)

	// Set writes a value to a single data point
	Set(ctx context.Context, dp int, value any) error

	// IsConnected returns true if a session is established
	IsConnected() bool
}

// Data points exposed by the feeder.
const (
	// DPManualFeed triggers a feed when written; the value is the number
	// of portions to dispense.
	DPManualFeed = 3

	// DPFeedHistory holds the feeder's status report string
	// ("R:<remaining>  C:<count>  T:<timestamp>").
	DPFeedHistory = 104
)

// ManualFeedPortions is the fixed portion count dispensed per manual feed.
const ManualFeedPortions = 1

// ScanDPs is the allow-list of data points probed by a scan, in probe
// order. Points missing from a given firmware simply fail to read and are
// skipped.
var ScanDPs = []int{1, 2, 3, 4, 5, 6, 9, 11, 12, 14, 15, 101, 104}

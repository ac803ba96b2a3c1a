package mcp

import "github.com/tmarsden/feedbox/pkg/lamps"

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or degraded)"`
	Feeder    string `json:"feeder" jsonschema:"description=Feeder configuration status"`
	Bridge    string `json:"bridge" jsonschema:"description=Lamp bridge configuration status"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- Feed Now Tool ---

// FeedNowOutput is the output for the feed_now tool
type FeedNowOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the feed was dispensed"`
	Message string `json:"message" jsonschema:"description=Status message"`
}

// --- Feed History Tool ---

// GetFeedHistoryOutput is the output for the get_feed_history tool
type GetFeedHistoryOutput struct {
	Success     bool `json:"success" jsonschema:"description=Whether the report was read"`
	FeedHistory any  `json:"feed_history" jsonschema:"description=Decoded feed-history report, or the raw value if it could not be decoded"`
}

// --- Scan Tool ---

// ScanDataPointsOutput is the output for the scan_data_points tool
type ScanDataPointsOutput struct {
	Success      bool           `json:"success" jsonschema:"description=Whether the scan completed"`
	AvailableDPs map[string]any `json:"available_dps" jsonschema:"description=Responding data points keyed by ID"`
	TotalFound   int            `json:"total_found" jsonschema:"description=Number of responding data points"`
}

// --- List Lamps Tool ---

// ListLampsOutput is the output for the list_lamps tool
type ListLampsOutput struct {
	Lamps []LampInfo `json:"lamps" jsonschema:"description=List of lamps"`
	Count int        `json:"count" jsonschema:"description=Total number of lamps"`
}

// LampInfo represents a lamp in tool outputs
type LampInfo struct {
	ID    string          `json:"id" jsonschema:"description=Bridge lamp ID"`
	Name  string          `json:"name" jsonschema:"description=User-facing lamp name"`
	Model string          `json:"model,omitempty" jsonschema:"description=Lamp model"`
	State lamps.LampState `json:"state" jsonschema:"description=Current lamp state"`
}

// --- Get Lamp Tool ---

// GetLampOutput is the output for the get_lamp tool
type GetLampOutput struct {
	Lamp LampInfo `json:"lamp" jsonschema:"description=Lamp information"`
}

// --- Set Lamp State Tool ---

// SetLampStateOutput is the output for the set_lamp_state tool
type SetLampStateOutput struct {
	LampID string          `json:"lamp_id" jsonschema:"description=Bridge lamp ID"`
	State  lamps.LampState `json:"state" jsonschema:"description=Lamp state after the change"`
}

// --- Helper conversions ---

// LampToInfo converts a lamps.Lamp to LampInfo
func LampToInfo(l *lamps.Lamp) LampInfo {
	return LampInfo{
		ID:    l.ID,
		Name:  l.Name,
		Model: l.Model,
		State: l.State,
	}
}

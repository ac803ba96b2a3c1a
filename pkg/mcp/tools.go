package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the Feedbox service: feeder configuration and lamp bridge availability"),
		),
		s.handleGetHealth,
	)

	// Dispense a feed
	s.mcpServer.AddTool(
		mcp.NewTool("feed_now",
			mcp.WithDescription("Dispense one manual feed from the pet feeder. The command is issued at most once; a failure is reported, not retried."),
		),
		s.handleFeedNow,
	)

	// Read the feed history report
	s.mcpServer.AddTool(
		mcp.NewTool("get_feed_history",
			mcp.WithDescription("Read the feeder's feed-history report (remaining portions, feed count, last feed timestamp)"),
		),
		s.handleGetFeedHistory,
	)

	// Scan data points
	s.mcpServer.AddTool(
		mcp.NewTool("scan_data_points",
			mcp.WithDescription("Probe the feeder's known data points and report which ones respond, with their current values"),
		),
		s.handleScanDataPoints,
	)

	// List lamps
	s.mcpServer.AddTool(
		mcp.NewTool("list_lamps",
			mcp.WithDescription("List all lamps known to the bridge with their current state"),
		),
		s.handleListLamps,
	)

	// Get lamp
	s.mcpServer.AddTool(
		mcp.NewTool("get_lamp",
			mcp.WithDescription("Get detailed information about a specific lamp"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Bridge lamp ID"),
			),
		),
		s.handleGetLamp,
	)

	// Set lamp state
	s.mcpServer.AddTool(
		mcp.NewTool("set_lamp_state",
			mcp.WithDescription("Set the state of a lamp. Accepts on, bri (0-254), hue (0-65535) and sat (0-254), validated before dispatch."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Bridge lamp ID"),
			),
			mcp.WithObject("state",
				mcp.Required(),
				mcp.Description("State properties to set (e.g. {\"on\": true, \"bri\": 200})"),
			),
		),
		s.handleSetLampState,
	)

	// Turn on (convenience)
	s.mcpServer.AddTool(
		mcp.NewTool("turn_on_lamp",
			mcp.WithDescription("Turn on a lamp, optionally setting brightness"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Bridge lamp ID"),
			),
			mcp.WithNumber("brightness",
				mcp.Description("Brightness level 0-254 (optional)"),
			),
		),
		s.handleTurnOnLamp,
	)

	// Turn off (convenience)
	s.mcpServer.AddTool(
		mcp.NewTool("turn_off_lamp",
			mcp.WithDescription("Turn off a lamp"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Bridge lamp ID"),
			),
		),
		s.handleTurnOffLamp,
	)
}

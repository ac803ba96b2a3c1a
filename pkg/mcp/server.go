package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/tmarsden/feedbox/pkg/db"
	"github.com/tmarsden/feedbox/pkg/feeder"
	"github.com/tmarsden/feedbox/pkg/lamps"
	"github.com/tmarsden/feedbox/pkg/schema"
)

// Server wraps the MCP server with Feedbox's feeder and lamp tools
type Server struct {
	mcpServer *server.MCPServer
	guard     *feeder.Guard
	bridge    *lamps.Client
	validator *schema.Validator
	events    db.FeedEventStore
}

// NewServer creates a new MCP server. bridge and events may be nil when
// no lamp bridge or database is configured.
func NewServer(guard *feeder.Guard, bridge *lamps.Client, validator *schema.Validator, events db.FeedEventStore) *Server {
	s := &Server{
		guard:     guard,
		bridge:    bridge,
		validator: validator,
		events:    events,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"feedbox",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

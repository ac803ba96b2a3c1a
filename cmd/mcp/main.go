package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmarsden/feedbox/pkg/config"
	"github.com/tmarsden/feedbox/pkg/db"
	"github.com/tmarsden/feedbox/pkg/feeder"
	"github.com/tmarsden/feedbox/pkg/lamps"
	feedboxmcp "github.com/tmarsden/feedbox/pkg/mcp"
	"github.com/tmarsden/feedbox/pkg/schema"
	"github.com/tmarsden/feedbox/pkg/tuya"
)

func main() {
	// Logging must go to stderr — stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/feedbox/feedbox.db)")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if *dbPath == "" {
		*dbPath = cfg.DBPath
	}

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Build the feeder client; fall back to the null client when the
	// device credentials are absent or invalid
	var client feeder.Client
	if cfg.FeederConfigured() {
		tuyaClient, err := tuya.NewClient(tuya.Config{
			DeviceID: cfg.FeederDeviceID,
			LocalKey: cfg.FeederLocalKey,
			Addr:     cfg.FeederAddr,
			Port:     cfg.FeederPort,
			Version:  cfg.FeederVersion,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Feeder client unavailable, using null client")
			client = feeder.NewNullClient()
		} else {
			client = tuyaClient
		}
	} else {
		log.Warn().Msg("Feeder credentials not set, using null client")
		client = feeder.NewNullClient()
	}
	guard := feeder.NewGuard(client)

	// Lamp bridge is optional
	var bridge *lamps.Client
	if cfg.BridgeAddr != "" {
		bridge, err = lamps.NewClient(cfg.BridgeAddr, cfg.BridgeUsername)
		if err != nil {
			log.Warn().Err(err).Msg("Lamp bridge unavailable")
			bridge = nil
		}
	}

	validator := schema.NewValidator()

	// Create and start MCP server
	mcpServer := feedboxmcp.NewServer(guard, bridge, validator, database.FeedEvents())

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}

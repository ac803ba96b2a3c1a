package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmarsden/feedbox/pkg/api"
	"github.com/tmarsden/feedbox/pkg/auth"
	"github.com/tmarsden/feedbox/pkg/config"
	"github.com/tmarsden/feedbox/pkg/db"
	"github.com/tmarsden/feedbox/pkg/feeder"
	"github.com/tmarsden/feedbox/pkg/lamps"
	"github.com/tmarsden/feedbox/pkg/schema"
	"github.com/tmarsden/feedbox/pkg/tuya"

	_ "github.com/tmarsden/feedbox/docs"
)

// @title           Feedbox API
// @version         1.0
// @description     REST API for a pet feeder and lamp bridge

// @host      localhost:3000
// @BasePath  /
// @schemes   http

func main() {
	// Configure logging
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

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
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

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		password := cfg.AdminPassword
		if password == "" {
			password = uuid.New().String()
			log.Warn().
				Str("username", "admin").
				Str("password", password).
				Msg("FEEDBOX_ADMIN_PASSWORD not set, generated admin password (shown once)")
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash admin password")
		}
		if err := database.Bootstrap(ctx, "admin", hash); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
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
	} else {
		log.Info().Msg("No lamp bridge configured")
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Ephemeral secret: sessions won't survive a restart.
		secret = uuid.New().String()
		log.Warn().Msg("FEEDBOX_JWT_SECRET not set, sessions will not survive restarts")
	}

	validator := schema.NewValidator()
	authService := auth.NewService(database, secret, 0)

	// Create and start API router
	router := api.NewRouter(api.Deps{
		Guard:      guard,
		Bridge:     bridge,
		Validator:  validator,
		Auth:       authService,
		FeedEvents: database.FeedEvents(),
	})

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := cfg.HTTPAddress()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

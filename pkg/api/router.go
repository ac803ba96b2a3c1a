package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tmarsden/feedbox/pkg/api/handlers"
	"github.com/tmarsden/feedbox/pkg/auth"
	"github.com/tmarsden/feedbox/pkg/db"
	"github.com/tmarsden/feedbox/pkg/feeder"
	"github.com/tmarsden/feedbox/pkg/lamps"
	"github.com/tmarsden/feedbox/pkg/schema"
	"github.com/tmarsden/feedbox/web"
)

// Deps are the injected dependencies for the API router. Bridge and
// FeedEvents may be nil; the corresponding routes degrade gracefully.
type Deps struct {
	Guard      *feeder.Guard
	Bridge     *lamps.Client
	Validator  *schema.Validator
	Auth       *auth.Service
	FeedEvents db.FeedEventStore
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine *gin.Engine
	deps   Deps
}

// NewRouter creates a new API router
func NewRouter(deps Deps) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine: engine,
		deps:   deps,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Embedded dashboard (incl. the service worker)
	r.engine.StaticFS("/app", http.FS(web.Assets()))

	// Capability listing and health at root
	indexHandler := handlers.NewIndexHandler()
	healthHandler := handlers.NewHealthHandler(r.deps.Guard, r.deps.Bridge != nil)
	r.engine.GET("/", indexHandler.Index)
	r.engine.GET("/health", healthHandler.Health)

	// Feeder capabilities
	feedHandler := handlers.NewFeedHandler(r.deps.Guard, r.deps.FeedEvents)
	scanHandler := handlers.NewScanHandler(r.deps.Guard)
	historyHandler := handlers.NewHistoryHandler(r.deps.Guard)

	r.engine.POST("/feed", feedHandler.Feed)
	r.engine.GET("/scan-dps", scanHandler.Scan)
	r.engine.GET("/feed-history", historyHandler.History)

	// The dashboard talks to /api/* so its service worker can key its
	// network-only policy on the path prefix.
	api := r.engine.Group("/api")
	{
		api.POST("/feed", feedHandler.Feed)
		api.GET("/scan-dps", scanHandler.Scan)
		api.GET("/feed-history", historyHandler.History)

		authHandler := handlers.NewAuthHandler(r.deps.Auth)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/verify", authHandler.Verify)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// Lamp control and the local feed log need a session
		protected := api.Group("")
		protected.Use(RequireAuth(r.deps.Auth))
		{
			lampsHandler := handlers.NewLampsHandler(r.deps.Bridge, r.deps.Validator)
			protected.GET("/lamps", lampsHandler.List)
			protected.GET("/lamps/:id", lampsHandler.Get)
			protected.PUT("/lamps/:id/state", lampsHandler.SetState)

			if r.deps.FeedEvents != nil {
				feedLogHandler := handlers.NewFeedLogHandler(r.deps.FeedEvents)
				protected.GET("/feed-log", feedLogHandler.List)
			}
		}
	}
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Handler exposes the underlying engine, mainly for tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}

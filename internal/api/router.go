package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/store"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/ws"
)

// StateSource is the session store plus its snapshot feed.
type StateSource interface {
	handler.Session
	Subscribe() (<-chan store.ViewState, func())
}

type Dependencies struct {
	Session     StateSource
	BackendURL  string
	BackendName string
	MaxImageDim int
	// RateLimitMax is the per-client budget per minute; zero keeps the default
	RateLimitMax int
	// Host is advertised in the API docs
	Host string
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
	wsHub       *ws.Hub
	cancelHub   context.CancelFunc
	unsubscribe func()
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "facerecon",
		BodyLimit:    12 * 1024 * 1024,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))

	host := r.deps.Host
	if host == "" {
		host = "localhost:3000"
	}
	sw := docs.NewSwagger(host)
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	healthHandler := handler.NewHealthHandler(r.deps.BackendName)
	r.app.Get("/health", healthHandler.Health)

	presenter := handler.NewPresenter(r.deps.BackendURL)
	images := handler.ImageOptions{MaxDim: r.deps.MaxImageDim}

	// Snapshot stream
	r.wsHub = ws.NewHub(r.logger)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	r.cancelHub = hubCancel
	go r.wsHub.Run(hubCtx)

	snapshots, unsubscribe := r.deps.Session.Subscribe()
	r.unsubscribe = unsubscribe
	go func() {
		for snap := range snapshots {
			r.wsHub.Broadcast(ws.EventStateChanged, presenter.State(snap))
		}
	}()

	v1 := r.app.Group("/v1")

	// WebSocket endpoint is registered before the limiter so long-lived
	// observers do not use up the request budget
	v1.Get("/ws", ws.UpgradeMiddleware(), ws.Handler(r.wsHub))

	limits := middleware.DefaultRateLimiterConfig()
	if r.deps.RateLimitMax > 0 {
		limits.Max = r.deps.RateLimitMax
	}
	r.rateLimiter = middleware.NewRateLimiter(limits)
	v1.Use(r.rateLimiter.Handler())

	stateHandler := handler.NewStateHandler(r.deps.Session, presenter)
	recognitionHandler := handler.NewRecognitionHandler(r.deps.Session, presenter, images, r.logger)
	userHandler := handler.NewUserHandler(r.deps.Session, presenter, images)

	// State routes
	v1.Get("/state", stateHandler.Get)
	v1.Post("/health-check", stateHandler.CheckHealth)
	v1.Post("/alert/dismiss", stateHandler.DismissAlert)
	v1.Post("/notice/dismiss", stateHandler.DismissNotice)
	v1.Post("/error/dismiss", stateHandler.DismissError)

	// Recognition routes
	v1.Post("/recognize", recognitionHandler.Recognize)
	v1.Post("/recognition/clear", recognitionHandler.Clear)

	// User routes
	v1.Get("/users", userHandler.List)
	v1.Get("/users/:id", userHandler.Get)
	v1.Post("/users", userHandler.Register)
	v1.Put("/users/:id", userHandler.Update)
	v1.Delete("/users/:id", userHandler.Delete)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Hub() *ws.Hub {
	return r.wsHub
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop the snapshot feed, then the hub
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
	if r.cancelHub != nil {
		r.cancelHub()
	}

	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}

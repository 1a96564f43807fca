// Package server exposes the game library over HTTP.
package server

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/library"
)

// Option configures a Server.
type Option interface {
	apply(*options)
}

type options struct {
	logger       *zap.Logger
	gatherer     prometheus.Gatherer
	allowOrigins string
	bodyLimit    int
}

type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithLogger sets the logger used for request logs.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithMetrics serves the metrics of g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return optionFunc(func(o *options) {
		o.gatherer = g
	})
}

// WithAllowOrigins sets the CORS allowed origins, e.g. a viewer's dev
// server. Default "*".
func WithAllowOrigins(origins string) Option {
	return optionFunc(func(o *options) {
		o.allowOrigins = origins
	})
}

// WithBodyLimit sets the largest accepted request body in bytes.
func WithBodyLimit(n int) Option {
	return optionFunc(func(o *options) {
		o.bodyLimit = n
	})
}

// Server is the HTTP API in front of a Library.
type Server struct {
	app *fiber.App
}

// New creates a Server with all routes registered.
func New(lib *library.Library, opts ...Option) *Server {
	o := options{
		logger:       zap.NewNop(),
		allowOrigins: "*",
		bodyLimit:    4 << 20,
	}
	for _, opt := range opts {
		opt.apply(&o)
	}
	logger := o.logger.Named("http")

	app := fiber.New(fiber.Config{
		AppName:               "pgnview",
		BodyLimit:             o.bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(requestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: o.allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if o.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{})))
	}

	gc := NewGameController(lib)
	games := app.Group("/api/games")
	games.Get("/", gc.ListGames)
	games.Post("/", gc.AddGame)
	games.Get("/:id", gc.GetGame)
	games.Delete("/:id", gc.DeleteGame)
	games.Get("/:id/board", gc.GetBoard)

	return &Server{app: app}
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	}
}

// Package server assembles the fiber application: middleware, routes and the
// error handler.
package server

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"songboard/handlers"
	"songboard/middleware"
	"songboard/store"
)

const (
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// Options configures New. Zero values disable the optional pieces.
type Options struct {
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string

	RateLimitEnabled bool
	RateLimitMax     int
	RateLimitWindow  time.Duration
	// RateLimitStorage shares limiter counters, typically Redis. Nil keeps them in memory.
	RateLimitStorage fiber.Storage

	// Checks are probed by the health endpoint after the store.
	Checks []handlers.Check
}

// New returns a ready-to-listen app serving the songs API over s.
func New(s store.Store, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "songboard",
		ErrorHandler:          handlers.ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Instrument())
	app.Use(recover.New())

	if len(opts.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(opts.CORSOrigins, ","),
			AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPatch, fiber.MethodOptions}, ","),
			AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		}))
	}

	if opts.RateLimitEnabled {
		app.Use(middleware.RateLimit(opts.RateLimitMax, opts.RateLimitWindow, opts.RateLimitStorage, HealthPath, MetricsPath))
	}

	h := handlers.New(s, opts.Checks...)

	app.Get(HealthPath, h.Health)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(opts.BasePath)
	api.Get("/songs", middleware.ValidateListQuery, h.ListSongs)
	api.Patch("/songs/:id<int>/rate", h.RateSong)

	return app
}

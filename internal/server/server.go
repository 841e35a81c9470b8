// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes pricing, risk assessment, quote building, and
// catalog lookup over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pdiddy/quotewise/internal/catalog"
	"github.com/pdiddy/quotewise/internal/pricing"
	"github.com/pdiddy/quotewise/internal/quote"
	"github.com/pdiddy/quotewise/internal/risk"
	"github.com/pdiddy/quotewise/pkg/types"
)

// Deps holds the components the handlers call.
type Deps struct {
	Engine   *pricing.Engine
	Assessor *risk.Assessor
	Catalog  *catalog.Catalog
	Builder  *quote.Builder
	Quote    types.QuoteConfig
	Version  string

	// Log receives one access log line per request; nil means stdout.
	// io.Discard silences it.
	Log io.Writer
}

// Server is the HTTP API.
type Server struct {
	app  *fiber.App
	deps Deps
}

// New builds the fiber app and registers every route.
func New(d Deps) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "quotewise",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	out := d.Log
	if out == nil {
		out = os.Stdout
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(cors.New())

	s := &Server{app: app, deps: d}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)

	v1 := s.app.Group("/v1")
	v1.Get("/rules", s.handleRules)
	v1.Post("/price", s.handlePrice)
	v1.Post("/risk", s.handleRisk)
	v1.Post("/quote", s.handleQuote)
	v1.Get("/products", s.handleProducts)
}

// App returns the underlying fiber app, for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() { errc <- s.app.Listen(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := s.app.Shutdown(); err != nil {
			return err
		}
		return <-errc
	}
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func fail(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(errorResponse{Status: "error", Message: msg})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return fail(c, code, err.Error())
}

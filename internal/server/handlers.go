// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/pdiddy/quotewise/internal/pricing"
	"github.com/pdiddy/quotewise/internal/quote"
	"github.com/pdiddy/quotewise/internal/render"
	"github.com/pdiddy/quotewise/pkg/types"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": s.deps.Version})
}

func (s *Server) handleRules(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"rules":  s.deps.Engine.Rules(),
		"config": s.deps.Engine.Config(),
	})
}

// handlePrice prices a batch of {product_json, quantity} entries. One bad
// entry yields an error object in its slot; only an unparsable payload
// fails the request.
func (s *Server) handlePrice(c *fiber.Ctx) error {
	entries, err := pricing.ParseBatch(c.Body())
	if err != nil {
		var pe *pricing.ParseError
		if errors.As(err, &pe) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(s.deps.Engine.CalculateBatch(entries))
}

func (s *Server) handleRisk(c *fiber.Ctx) error {
	var item types.PricedLineItem
	if err := json.Unmarshal(c.Body(), &item); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid priced item: "+err.Error())
	}
	return c.JSON(s.deps.Assessor.Assess(item))
}

// quoteRequest is the body of POST /v1/quote.
type quoteRequest struct {
	Items []types.LineRequest `json:"items"`
}

// handleQuote builds a quote from line requests. ?format=md or yaml
// returns the rendered document instead of JSON.
func (s *Server) handleQuote(c *fiber.Ctx) error {
	if s.deps.Builder == nil {
		return fail(c, fiber.StatusServiceUnavailable, "no catalog configured")
	}
	var req quoteRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid quote request: "+err.Error())
	}

	format := render.FormatJSON
	if f := c.Query("format"); f != "" {
		var err error
		if format, err = render.ParseFormat(f); err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	q, err := s.deps.Builder.Build(c.UserContext(), req.Items)
	if err != nil {
		if errors.Is(err, quote.ErrInvalidRequest) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		return fail(c, fiber.StatusBadGateway, err.Error())
	}

	switch format {
	case render.FormatJSON:
		return c.JSON(q)
	case render.FormatMarkdown:
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	case render.FormatYAML:
		c.Set(fiber.HeaderContentType, "application/yaml")
	}
	data, err := render.Encode(q, format, s.deps.Quote)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+render.FileName(q, format)+`"`)
	return c.Send(data)
}

// handleProducts resolves ?name= values (repeatable) against the catalog.
// Without names it lists every product name.
func (s *Server) handleProducts(c *fiber.Ctx) error {
	if s.deps.Catalog == nil {
		return fail(c, fiber.StatusServiceUnavailable, "no catalog configured")
	}

	var names []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("name") {
		if n := strings.TrimSpace(string(raw)); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		all, err := s.deps.Catalog.Names(c.UserContext())
		if err != nil {
			return fail(c, fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"names": all})
	}

	result, err := s.deps.Catalog.Lookup(c.UserContext(), names)
	if err != nil {
		return fail(c, fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{
		"products":    result.Products,
		"not_found":   result.NotFound,
		"suggestions": result.Suggestions,
		"message":     result.Message(),
	})
}

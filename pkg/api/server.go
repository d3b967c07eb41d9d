// Package api exposes the compatibility engine, build sessions and catalog over HTTP.
package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/acexeno/BuildIT-PC-sub000/internal/metrics"
	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/catalog"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/session"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/suggestion"
)

// BuildStore is the named build repository.
type BuildStore interface {
	session.BuildRepository
	UpdateBuild(ctx context.Context, id, name string, payload models.BuildPayload) (models.SavedBuild, error)
	GetBuild(ctx context.Context, id string) (models.SavedBuild, error)
	DeleteBuild(ctx context.Context, id string) error
}

// ComponentWriter stores imported components.
type ComponentWriter interface {
	Upsert(ctx context.Context, c models.Component) error
}

// PartSource searches and imports PCPartPicker products.
type PartSource interface {
	SearchPCParts(searchTerm string, region string) ([]models.SearchPart, error)
	GetPart(URL string) (*models.Part, error)
	ImportPart(URL string, category models.Category) (models.Component, error)
	ImportPartList(URL string) ([]models.Component, error)
}

// Exporter pushes a selection to a PCPartPicker part list and returns the list.
type Exporter func(region string, sel models.BuildSelection) (*models.SearchPart, error)

// Config wires the server. Scraper, Export and Components may be nil, which disables the import and export
// routes.
type Config struct {
	Catalog    suggestion.Catalog
	Builds     BuildStore
	Components ComponentWriter
	Sessions   *session.Manager
	Scraper    PartSource
	Export     Exporter
	Metrics    *metrics.Registry
	Region     string
	Logger     *zap.SugaredLogger
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

type Server struct {
	cfg Config
	s   *zap.SugaredLogger
}

// New builds the fiber app with every route registered.
func New(cfg Config) *fiber.App {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewRegistry()
	}
	srv := &Server{cfg: cfg, s: cfg.Logger}
	if srv.s == nil {
		srv.s = zap.NewNop().Sugar()
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(helmet.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${pid} | ${time} | ${latency} | [${ip}]:${port} | ${status} - ${method} ${path}\n",
		}))
	}

	app.Get("/components", srv.components)
	app.Get("/recommendations", srv.recommendations)
	app.Post("/compatibility", srv.compatibility)

	app.Post("/sessions", srv.createSession)
	app.Get("/sessions/:id", srv.getSession)
	app.Delete("/sessions/:id", srv.discardSession)
	app.Put("/sessions/:id/components", srv.selectComponent)
	app.Delete("/sessions/:id/components", srv.clearComponents)
	app.Delete("/sessions/:id/components/:category", srv.removeComponent)
	app.Put("/sessions/:id/step", srv.setStep)
	app.Post("/sessions/:id/step/next", srv.nextStep)
	app.Post("/sessions/:id/step/prev", srv.prevStep)
	app.Get("/sessions/:id/suggestions/:category", srv.loadSuggestions)
	app.Post("/sessions/:id/suggestions/:category", srv.requestSuggestions)
	app.Post("/sessions/:id/builds", srv.saveBuild)
	app.Post("/sessions/:id/import-list", srv.importList)
	app.Post("/sessions/:id/export", srv.export)

	app.Get("/builds/:id", srv.getBuild)
	app.Put("/builds/:id", srv.updateBuild)
	app.Delete("/builds/:id", srv.deleteBuild)

	app.Post("/catalog/search", srv.search)
	app.Post("/catalog/import", srv.importPart)

	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	return app
}

// fail maps err to a status code and writes an error body.
func (srv *Server) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, catalog.ErrBuildNotFound),
		errors.Is(err, catalog.ErrComponentNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrUnknownCategory),
		errors.Is(err, models.ErrCategoryMismatch),
		errors.Is(err, session.ErrInvalidStep),
		errors.Is(err, session.ErrEmptyBuild),
		errors.Is(err, catalog.ErrEmptyBuildName):
		status = fiber.StatusBadRequest
	}
	if status == fiber.StatusInternalServerError {
		srv.s.Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func unavailable(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": what + " is not configured"})
}

package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/compatibility"
)

type CompatibilityRequest struct {
	Selection models.BuildSelection `json:"selection"`
}

func (srv *Server) components(c *fiber.Ctx) error {
	category, err := models.ParseCategory(c.Query("category"))
	if err != nil {
		return srv.fail(c, err)
	}
	items, err := srv.cfg.Catalog.Components(c.UserContext(), category)
	if err != nil {
		return srv.fail(c, err)
	}
	if items == nil {
		items = []models.Component{}
	}
	return c.JSON(items)
}

func (srv *Server) recommendations(c *fiber.Ctx) error {
	category, err := models.ParseCategory(c.Query("category"))
	if err != nil {
		return srv.fail(c, err)
	}
	var req models.Requirements
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "Invalid requirements")
	}
	items, err := srv.cfg.Catalog.Recommendations(c.UserContext(), category, req)
	if err != nil {
		return srv.fail(c, err)
	}
	if items == nil {
		items = []models.Component{}
	}
	return c.JSON(items)
}

func (srv *Server) compatibility(c *fiber.Ctx) error {
	var req CompatibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if req.Selection == nil {
		req.Selection = models.BuildSelection{}
	}
	if err := req.Selection.Validate(); err != nil {
		return srv.fail(c, err)
	}
	report := compatibility.Report(req.Selection)
	srv.cfg.Metrics.ObserveReport(report)
	return c.JSON(report)
}

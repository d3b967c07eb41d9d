package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/scraper"
)

type SearchRequest struct {
	Query  string `json:"query"`
	Region string `json:"region"`
}

type ImportRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

type ExportRequest struct {
	Region string `json:"region"`
}

func (srv *Server) region(r string) string {
	if r == "" {
		return srv.cfg.Region
	}
	return r
}

func (srv *Server) search(c *fiber.Ctx) error {
	if srv.cfg.Scraper == nil {
		return unavailable(c, "Scraper")
	}
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return badRequest(c, "Invalid request payload")
	}

	results, err := srv.cfg.Scraper.SearchPCParts(req.Query, srv.region(req.Region))
	if err != nil {
		var redirectError *scraper.RedirectError
		if errors.As(err, &redirectError) {
			part, err := srv.cfg.Scraper.GetPart(redirectError.URL)
			if err != nil {
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error fetching product details"})
			}
			return c.JSON(part)
		}
		if errors.Is(err, scraper.ErrInvalidRegion) {
			return badRequest(c, err.Error())
		}
		srv.s.Warnf("Search for %q failed: %v", req.Query, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error searching parts"})
	}
	return c.JSON(results)
}

func (srv *Server) importPart(c *fiber.Ctx) error {
	if srv.cfg.Scraper == nil || srv.cfg.Components == nil {
		return unavailable(c, "Catalog import")
	}
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return badRequest(c, "Invalid request payload")
	}
	var category models.Category
	if req.Category != "" {
		parsed, err := models.ParseCategory(req.Category)
		if err != nil {
			return srv.fail(c, err)
		}
		category = parsed
	}

	comp, err := srv.cfg.Scraper.ImportPart(req.URL, category)
	if err != nil {
		if errors.Is(err, scraper.ErrInvalidPartURL) || errors.Is(err, models.ErrUnknownCategory) {
			return badRequest(c, err.Error())
		}
		srv.s.Warnf("Import of %s failed: %v", req.URL, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error fetching part"})
	}
	if err := srv.cfg.Components.Upsert(c.UserContext(), comp); err != nil {
		return srv.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comp)
}

// importList scrapes a PCPartPicker part list, adds its parts to the catalog and selects them.
func (srv *Server) importList(c *fiber.Ctx) error {
	if srv.cfg.Scraper == nil || srv.cfg.Components == nil {
		return unavailable(c, "Catalog import")
	}
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return badRequest(c, "Invalid request payload")
	}

	components, err := srv.cfg.Scraper.ImportPartList(req.URL)
	if err != nil {
		if errors.Is(err, scraper.ErrInvalidListURL) {
			return badRequest(c, err.Error())
		}
		srv.s.Warnf("Import of list %s failed: %v", req.URL, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Error fetching part list"})
	}
	for _, comp := range components {
		if err := srv.cfg.Components.Upsert(c.UserContext(), comp); err != nil {
			return srv.fail(c, err)
		}
		if err := b.Select(comp); err != nil {
			return srv.fail(c, err)
		}
	}
	return srv.mutatedState(c, b)
}

func (srv *Server) export(c *fiber.Ctx) error {
	if srv.cfg.Export == nil {
		return unavailable(c, "Export")
	}
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	var req ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request payload")
		}
	}
	list, err := srv.cfg.Export(srv.region(req.Region), b.Selection())
	if err != nil {
		srv.s.Warnf("Export of session %s failed: %v", b.ID(), err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

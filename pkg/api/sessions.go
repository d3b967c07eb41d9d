package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
	"github.com/acexeno/BuildIT-PC-sub000/pkg/session"
)

type StepRequest struct {
	Step int `json:"step"`
}

type SaveBuildRequest struct {
	Name string `json:"name"`
}

type SuggestionsResponse struct {
	Applied     bool                        `json:"applied"`
	Suggestions session.CategorySuggestions `json:"suggestions"`
}

func (srv *Server) open(c *fiber.Ctx) (*session.Build, error) {
	b, err := srv.cfg.Sessions.Open(c.Params("id"))
	srv.countSessions()
	return b, err
}

// countSessions sets the gauge from the manager so restored sessions are counted too.
func (srv *Server) countSessions() {
	srv.cfg.Metrics.ActiveSessions.Set(float64(srv.cfg.Sessions.Len()))
}

// mutatedState replies with the session state after a change and records its report.
func (srv *Server) mutatedState(c *fiber.Ctx, b *session.Build) error {
	st := b.State()
	srv.cfg.Metrics.ObserveReport(st.Report)
	return c.JSON(st)
}

func (srv *Server) createSession(c *fiber.Ctx) error {
	b := srv.cfg.Sessions.Create()
	srv.countSessions()
	return c.Status(fiber.StatusCreated).JSON(b.State())
}

func (srv *Server) getSession(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	return c.JSON(b.State())
}

func (srv *Server) discardSession(c *fiber.Ctx) error {
	if _, err := srv.open(c); err != nil {
		return srv.fail(c, err)
	}
	if err := srv.cfg.Sessions.Discard(c.Params("id")); err != nil {
		return srv.fail(c, err)
	}
	srv.countSessions()
	return c.SendStatus(fiber.StatusNoContent)
}

func (srv *Server) selectComponent(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	var comp models.Component
	if err := c.BodyParser(&comp); err != nil {
		return badRequest(c, "Invalid component payload")
	}
	category := comp.Category
	if slot := c.Query("category"); slot != "" {
		if category, err = models.ParseCategory(slot); err != nil {
			return srv.fail(c, err)
		}
	}
	if err := b.SelectInto(category, comp); err != nil {
		return srv.fail(c, err)
	}
	return srv.mutatedState(c, b)
}

func (srv *Server) removeComponent(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	category, err := models.ParseCategory(c.Params("category"))
	if err != nil {
		return srv.fail(c, err)
	}
	if err := b.Remove(category); err != nil {
		return srv.fail(c, err)
	}
	return srv.mutatedState(c, b)
}

func (srv *Server) clearComponents(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	b.ClearAll()
	return srv.mutatedState(c, b)
}

func (srv *Server) setStep(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	var req StepRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if err := b.SetStep(req.Step); err != nil {
		return srv.fail(c, err)
	}
	return c.JSON(b.State())
}

func (srv *Server) nextStep(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	b.Next()
	return c.JSON(b.State())
}

func (srv *Server) prevStep(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	b.Prev()
	return c.JSON(b.State())
}

func (srv *Server) loadSuggestions(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	category, err := models.ParseCategory(c.Params("category"))
	if err != nil {
		return srv.fail(c, err)
	}
	s, applied := b.LoadSuggestions(c.UserContext(), category)
	return c.JSON(SuggestionsResponse{Applied: applied, Suggestions: s})
}

// requestSuggestions starts a fetch that outlives the request; poll the session state for the result.
func (srv *Server) requestSuggestions(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	category, err := models.ParseCategory(c.Params("category"))
	if err != nil {
		return srv.fail(c, err)
	}
	t := b.RequestSuggestions(context.Background(), category)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"category": t.Category,
		"version":  t.Version,
		"seq":      t.Seq,
	})
}

func (srv *Server) saveBuild(c *fiber.Ctx) error {
	b, err := srv.open(c)
	if err != nil {
		return srv.fail(c, err)
	}
	var req SaveBuildRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	saved, err := b.SaveBuild(c.UserContext(), req.Name)
	if err != nil {
		return srv.fail(c, err)
	}
	srv.cfg.Metrics.BuildsSaved.Inc()
	return c.Status(fiber.StatusCreated).JSON(saved)
}

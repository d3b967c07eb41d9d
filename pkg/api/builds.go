package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acexeno/BuildIT-PC-sub000/internal/models"
)

type UpdateBuildRequest struct {
	Name    string              `json:"name"`
	Payload models.BuildPayload `json:"payload"`
}

func (srv *Server) getBuild(c *fiber.Ctx) error {
	if srv.cfg.Builds == nil {
		return unavailable(c, "Build storage")
	}
	saved, err := srv.cfg.Builds.GetBuild(c.UserContext(), c.Params("id"))
	if err != nil {
		return srv.fail(c, err)
	}
	return c.JSON(saved)
}

func (srv *Server) updateBuild(c *fiber.Ctx) error {
	if srv.cfg.Builds == nil {
		return unavailable(c, "Build storage")
	}
	var req UpdateBuildRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	saved, err := srv.cfg.Builds.UpdateBuild(c.UserContext(), c.Params("id"), req.Name, req.Payload)
	if err != nil {
		return srv.fail(c, err)
	}
	return c.JSON(saved)
}

func (srv *Server) deleteBuild(c *fiber.Ctx) error {
	if srv.cfg.Builds == nil {
		return unavailable(c, "Build storage")
	}
	if err := srv.cfg.Builds.DeleteBuild(c.UserContext(), c.Params("id")); err != nil {
		return srv.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

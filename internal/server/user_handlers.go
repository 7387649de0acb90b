package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.socialService.ListUsers(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(users)
}

// ToggleFollow handles POST /users/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	var req struct {
		UserID       uint `json:"userId"`
		TargetUserID uint `json:"targetUserId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	following, err := s.socialService.ToggleFollow(c.UserContext(), req.UserID, req.TargetUserID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	message := "Unfollowed"
	if following {
		message = "Followed"
	}
	return c.JSON(fiber.Map{"message": message})
}

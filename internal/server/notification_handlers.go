package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /notifications/:userId
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	notifications, err := s.notificationService.List(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(notifications)
}

// ClearNotifications handles DELETE /notifications/:userId
func (s *Server) ClearNotifications(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	if err := s.notificationService.Clear(c.UserContext(), userID); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(fiber.Map{"message": "Notifications cleared"})
}

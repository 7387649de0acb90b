package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetConversation handles GET /chat/:user1/:user2
func (s *Server) GetConversation(c *fiber.Ctx) error {
	user1, err := paramUint(c, "user1")
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	user2, err := paramUint(c, "user2")
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	messages, err := s.chatService.GetConversation(c.UserContext(), user1, user2)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(messages)
}

// SendMessage handles POST /chat
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		SenderID   uint   `json:"senderId"`
		ReceiverID uint   `json:"receiverId"`
		Message    string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	messages, err := s.chatService.SendMessage(c.UserContext(), service.SendMessageInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(messages)
}

package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
		UserID  uint   `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  req.UserID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost handles PUT /posts/like/:postId
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postId")
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	var req struct {
		UserID uint `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.LikePost(c.UserContext(), postID, req.UserID)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(post)
}

// CommentOnPost handles POST /posts/comment/:postId
func (s *Server) CommentOnPost(c *fiber.Ctx) error {
	postID, err := paramUint(c, "postId")
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}

	var req struct {
		UserID uint   `json:"userId"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CommentOnPost(c.UserContext(), service.CommentInput{
		PostID: postID,
		UserID: req.UserID,
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(post)
}

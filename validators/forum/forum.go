package forumValidator

import (
	"elearn/validators"

	"github.com/gofiber/fiber/v2"
)

type ForumRequest struct {
	CourseID    string `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type PostRequest struct {
	ForumID string `json:"forumId" validate:"required"`
	Content string `json:"content" validate:"required,max=10000"`
}

func CreateForum() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validators.ParseBody(c, new(ForumRequest), "validatedForum")
	}
}

func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validators.ParseBody(c, new(PostRequest), "validatedPost")
	}
}

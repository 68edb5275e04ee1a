package forumController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/services"
	forumValidator "elearn/validators/forum"

	"github.com/gofiber/fiber/v2"
)

func GetCourseForums(c *fiber.Ctx) error {
	forums, err := services.ListForums(c.UserContext(), database.Database.Store, c.Params("courseId"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch forums")
	}
	return c.JSON(forums)
}

func CreateForum(c *fiber.Ctx) error {
	reqData := c.Locals("validatedForum").(*forumValidator.ForumRequest)

	forum, err := services.CreateForum(c.UserContext(), database.Database.Store,
		middleware.CurrentUserID(c), reqData.CourseID, reqData.Title, reqData.Description)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to create forum")
	}
	return c.Status(fiber.StatusCreated).JSON(forum)
}

func GetForumPosts(c *fiber.Ctx) error {
	posts, err := services.ListPosts(c.UserContext(), database.Database.Store, c.Params("forumId"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to fetch posts")
	}
	return c.JSON(posts)
}

func CreatePost(c *fiber.Ctx) error {
	reqData := c.Locals("validatedPost").(*forumValidator.PostRequest)

	post, err := services.CreatePost(c.UserContext(), database.Database.Store,
		middleware.CurrentUserID(c), reqData.ForumID, reqData.Content)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to create post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

package forumRoutes

import (
	controllers "elearn/controllers/forum"
	"elearn/middleware"
	validators "elearn/validators/forum"

	"github.com/gofiber/fiber/v2"
)

func SetupForumRoutes(router fiber.Router) {
	router.Get("/forums/:courseId", controllers.GetCourseForums)
	router.Post("/forums", middleware.JWTMiddleware, validators.CreateForum(), controllers.CreateForum)

	router.Get("/posts/:forumId", controllers.GetForumPosts)
	router.Post("/posts", middleware.JWTMiddleware, validators.CreatePost(), controllers.CreatePost)
}

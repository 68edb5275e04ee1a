package analyticsRoutes

import (
	controllers "elearn/controllers/analytics"
	"elearn/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAnalyticsRoutes(router fiber.Router) {
	router.Get("/analytics/:userId", middleware.JWTMiddleware, middleware.SelfOnly("userId"), controllers.GetUserAnalytics)
}

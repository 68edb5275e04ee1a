package analyticsController

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/services"

	"github.com/gofiber/fiber/v2"
)

func GetUserAnalytics(c *fiber.Ctx) error {
	analytics, err := services.ComputeAnalytics(c.UserContext(), database.Database.Store, c.Params("userId"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to compute analytics")
	}
	return c.JSON(analytics)
}

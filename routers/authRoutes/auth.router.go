package authRoutes

import (
	"elearn/config"
	authControllers "elearn/controllers/auth"
	"elearn/middleware"
	authValidators "elearn/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(router fiber.Router) {
	authGroup := router.Group("/auth")
	authLimiter := middleware.AuthRateLimiter(config.AppConfig.AuthLimitMax)

	authGroup.Post("/register", authLimiter, authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authLimiter, authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authControllers.Me)
	authGroup.Post("/logout", middleware.JWTMiddleware, authControllers.Logout)
}

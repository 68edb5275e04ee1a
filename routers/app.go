package routers

import (
	"elearn/config"
	"elearn/logger"
	"elearn/middleware"
	analyticsRoutes "elearn/routers/analyticsRoutes"
	authRoutes "elearn/routers/authRoutes"
	courseRoutes "elearn/routers/courseRoutes"
	forumRoutes "elearn/routers/forumRoutes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the HTTP application from config.AppConfig. The store must
// already be connected.
func NewApp() *fiber.App {
	cfg := config.AppConfig

	app := fiber.New(fiber.Config{
		AppName:      "elearn",
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New())
	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	if cfg.LogMode != "test" {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("E-Learning Backend API is running...")
	})

	api := app.Group("/api", middleware.APIRateLimiter(cfg.RateLimitMax))
	authRoutes.SetupAuthRoutes(api)
	courseRoutes.SetupCourseRoutes(api)
	forumRoutes.SetupForumRoutes(api)
	analyticsRoutes.SetupAnalyticsRoutes(api)

	// Serve static files from the frontend folder
	app.Static("/", cfg.StaticDir)

	return app
}

// errorHandler answers errors that escape handlers, including unknown
// routes and recovered panics, in the API's error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		logger.Log.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return middleware.ErrorResponse(c, code, message)
}

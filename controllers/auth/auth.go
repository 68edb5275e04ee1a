package authController

import (
	"elearn/config"
	"elearn/database"
	"elearn/logger"
	"elearn/middleware"
	"elearn/models"
	"elearn/services"
	"elearn/utils"
	authValidator "elearn/validators/auth"
	"time"

	"github.com/gofiber/fiber/v2"
)

func Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*authValidator.RegisterRequest)

	user, err := services.Register(c.UserContext(), database.Database.Store, reqData.Name, reqData.Email, reqData.Password, config.AppConfig.SaltRound)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Registration failed")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email)
	if err != nil {
		logger.Log.Error("signing token failed", "user_id", user.ID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Registration failed")
	}

	logger.Log.Info("user registered", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(authResponse("User registered successfully", user, token))
}

func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	user, err := services.Login(c.UserContext(), database.Database.Store, reqData.Email, reqData.Password)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Login failed")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Email)
	if err != nil {
		logger.Log.Error("signing token failed", "user_id", user.ID, "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed")
	}

	return c.JSON(authResponse("Login successful", user, token))
}

// Me returns the caller's profile.
func Me(c *fiber.Ctx) error {
	user, err := services.GetUser(c.UserContext(), database.Database.Store, middleware.CurrentUserID(c))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to load user")
	}
	return c.JSON(user.Public())
}

// Logout revokes the presented token until it would have expired.
func Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	if jti == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Token cannot be revoked")
	}

	var ttl time.Duration
	if expiresAt, ok := c.Locals("tokenExpiresAt").(time.Time); ok && !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
	}
	if err := utils.Revoker.Revoke(c.UserContext(), jti, ttl); err != nil {
		return middleware.ServiceErrorResponse(c, err, "Logout failed")
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func authResponse(message string, user models.User, token string) fiber.Map {
	return fiber.Map{
		"message": message,
		"user":    user.Public(),
		"token":   token,
	}
}

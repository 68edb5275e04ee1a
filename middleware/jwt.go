package middleware

import (
	"elearn/config"
	"elearn/logger"
	"elearn/utils"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateJWT generates a JWT token for the user. The token only expires when
// TOKEN_TTL_HOURS is set.
func GenerateJWT(userID, email string) (string, error) {
	issuedAt := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"iat":    issuedAt.Unix(),
		"jti":    uuid.NewString(),
	}
	if ttl := config.AppConfig.TokenTTLHours; ttl > 0 {
		claims["exp"] = issuedAt.Add(time.Duration(ttl) * time.Hour).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") || strings.TrimSpace(authHeader[len("Bearer "):]) == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Access token required")
	}
	tokenString := strings.TrimSpace(authHeader[len("Bearer "):])

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusForbidden, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrorResponse(c, fiber.StatusForbidden, "Invalid token")
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return ErrorResponse(c, fiber.StatusForbidden, "Invalid token")
	}
	email, _ := claims["email"].(string)
	jti, _ := claims["jti"].(string)

	if jti != "" {
		revoked, err := utils.Revoker.IsRevoked(c.UserContext(), jti)
		if err != nil {
			logger.Log.Error("token revocation lookup failed", "error", err)
			return ErrorResponse(c, fiber.StatusInternalServerError, "Failed to verify token")
		}
		if revoked {
			return ErrorResponse(c, fiber.StatusForbidden, "Invalid token")
		}
	}

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	c.Locals("userId", userID)
	c.Locals("email", email)
	c.Locals("jti", jti)
	c.Locals("tokenExpiresAt", expiresAt)

	return c.Next()
}

// CurrentUserID returns the user id stored by JWTMiddleware.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userId").(string)
	return id
}

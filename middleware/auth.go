package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/models"
)

// Protected verifies the bearer token and copies its identity claims into
// the request locals. The secret comes from config, never the environment.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid token claims",
				})
			}

			email, err := stringClaim(claims, "email")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid identity in token",
				})
			}
			role, err := stringClaim(claims, "role")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid role in token",
				})
			}

			c.Locals("email", email)
			c.Locals("role", role)

			return c.Next()
		},
	})
}

// RequireRole gates an endpoint to one role. The role is re-read from the
// store rather than trusted from the token, so the token is only ever a
// source of identity.
func RequireRole(database *gorm.DB, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals("email").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No authentication token",
			})
		}

		var user models.User
		if err := database.Where("email = ?", email).First(&user).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		}

		return c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, key string) (string, error) {
	v, ok := claims[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("no %s found in claims", key)
	}
	return v, nil
}

// jwtError handles missing or unverifiable tokens.
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Invalid or expired token",
	})
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/config"
	"github.com/bookwise/bookwise/controllers"
)

// SetupAuthRoutes configures registration and login.
func SetupAuthRoutes(api fiber.Router, database *gorm.DB, cfg config.Config) {
	auth := controllers.NewAuthController(database, cfg)

	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)
}

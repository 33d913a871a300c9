package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/config"
	"github.com/bookwise/bookwise/controllers"
	"github.com/bookwise/bookwise/middleware"
	"github.com/bookwise/bookwise/models"
)

// SetupWorkingHourRoutes configures the weekly schedule endpoints.
func SetupWorkingHourRoutes(api fiber.Router, database *gorm.DB, cache *redis.Client, cfg config.Config) {
	ctrl := controllers.NewWorkingHoursController(database, cache)

	hours := api.Group("/working-hours", middleware.Protected(cfg.JWTSecret))
	hours.Get("/", ctrl.Get)
	hours.Post("/", middleware.RequireRole(database, models.RoleProvider), ctrl.Set)
}

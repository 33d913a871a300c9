package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/config"
	"github.com/bookwise/bookwise/controllers"
	"github.com/bookwise/bookwise/middleware"
	"github.com/bookwise/bookwise/models"
)

// SetupServiceRoutes configures the service catalog. Mutations are
// provider-only; listing is open to any authenticated caller.
func SetupServiceRoutes(api fiber.Router, database *gorm.DB, cfg config.Config) {
	ctrl := controllers.NewServiceController(database)
	provider := middleware.RequireRole(database, models.RoleProvider)

	services := api.Group("/services", middleware.Protected(cfg.JWTSecret))
	services.Get("/", ctrl.List)
	services.Post("/", provider, ctrl.Create)
	services.Put("/:id", provider, ctrl.Update)
	services.Delete("/:id", provider, ctrl.Delete)
}

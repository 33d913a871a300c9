package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/config"
	"github.com/bookwise/bookwise/controllers"
	"github.com/bookwise/bookwise/middleware"
	"github.com/bookwise/bookwise/models"
	"github.com/bookwise/bookwise/utils"
)

// SetupAppointmentRoutes configures the booking workflow. Booking is
// customer-only; cancellation is open to any authenticated caller and
// ownership is resolved against the store per request.
func SetupAppointmentRoutes(api fiber.Router, database *gorm.DB, mailer *utils.Mailer, cfg config.Config) {
	ctrl := controllers.NewAppointmentController(database, mailer)

	appointments := api.Group("/appointments", middleware.Protected(cfg.JWTSecret))
	appointments.Get("/", ctrl.List)
	appointments.Post("/", middleware.RequireRole(database, models.RoleCustomer), ctrl.Create)
	appointments.Delete("/:id", ctrl.Cancel)
}

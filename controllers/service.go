package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/models"
	"github.com/bookwise/bookwise/utils"
)

type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(database *gorm.DB) *ServiceController {
	return &ServiceController{DB: database}
}

type serviceInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// List returns the caller's own services for providers. For customers it
// returns the catalog minus every service they currently hold a booked
// appointment for, so availability is always customer-relative.
func (s *ServiceController) List(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	role := c.Locals("role").(string)

	var services []models.Service

	if role == string(models.RoleProvider) {
		if err := s.DB.Where("provider_email = ?", email).Find(&services).Error; err != nil {
			log.Printf("Error listing services: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Database error",
			})
		}
		return c.JSON(services)
	}

	booked := s.DB.Model(&models.Appointment{}).
		Select("service_id").
		Where("customer_email = ? AND status = ?", email, models.StatusBooked)

	if err := s.DB.Where("id NOT IN (?)", booked).Find(&services).Error; err != nil {
		log.Printf("Error listing available services: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}
	return c.JSON(services)
}

// Create persists a new service owned by the calling provider.
func (s *ServiceController) Create(c *fiber.Ctx) error {
	input := new(serviceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	service := models.Service{
		ProviderEmail: c.Locals("email").(string),
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
	}
	if err := s.DB.Create(&service).Error; err != nil {
		log.Printf("Error creating service: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// Update mutates title/description/price scoped to the owner. Ownership is
// part of the WHERE clause, so a non-owner gets the same 404 as a missing
// row.
func (s *ServiceController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	email := c.Locals("email").(string)

	input := new(serviceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	result := s.DB.Model(&models.Service{}).
		Where("id = ? AND provider_email = ?", id, email).
		Updates(map[string]interface{}{
			"title":       input.Title,
			"description": input.Description,
			"price":       input.Price,
		})
	if result.Error != nil {
		log.Printf("Error updating service: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	var service models.Service
	if err := s.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}
	return c.JSON(service)
}

// Delete removes an owned service and cancels its booked appointments in
// the same transaction, so there is no window where the service is gone
// but its bookings are still live.
func (s *ServiceController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	email := c.Locals("email").(string)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND provider_email = ?", id, email).Delete(&models.Service{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.Appointment{}).
			Where("service_id = ? AND status = ?", id, models.StatusBooked).
			Update("status", models.StatusCancelled).Error
	})
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}
	if err != nil {
		log.Printf("Error deleting service: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Service deleted and related appointments cancelled",
	})
}

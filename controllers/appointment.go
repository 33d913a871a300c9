package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/models"
	"github.com/bookwise/bookwise/utils"
)

var errSlotTaken = errors.New("time slot not available")

type AppointmentController struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
}

func NewAppointmentController(database *gorm.DB, mailer *utils.Mailer) *AppointmentController {
	return &AppointmentController{DB: database, Mailer: mailer}
}

type bookingInput struct {
	ServiceID uint      `json:"service_id"`
	Slot      time.Time `json:"slot"`
}

// AppointmentView is an appointment row joined with the service it was
// booked against. Title and price are zero-valued when the service has
// since been deleted.
type AppointmentView struct {
	ID            uint                     `json:"id"`
	ServiceID     uint                     `json:"service_id"`
	CustomerEmail string                   `json:"customer_email"`
	Slot          time.Time                `json:"slot"`
	Status        models.AppointmentStatus `json:"status"`
	ServiceTitle  string                   `json:"service_title"`
	ServicePrice  float64                  `json:"service_price"`
}

const appointmentColumns = `appointments.id, appointments.service_id, appointments.customer_email,
	appointments.slot, appointments.status,
	COALESCE(services.title, '') AS service_title,
	COALESCE(services.price, 0) AS service_price`

// List is role-scoped: providers see booked appointments against services
// they own; customers see their own appointments in every status, with a
// left join because the underlying service may be gone.
func (a *AppointmentController) List(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	role := c.Locals("role").(string)

	var views []AppointmentView

	if role == string(models.RoleProvider) {
		err := a.DB.Table("appointments").
			Select(appointmentColumns).
			Joins("JOIN services ON services.id = appointments.service_id AND services.deleted_at IS NULL").
			Where("services.provider_email = ? AND appointments.status = ?", email, models.StatusBooked).
			Scan(&views).Error
		if err != nil {
			log.Printf("Error listing provider appointments: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Database error",
			})
		}
		return c.JSON(views)
	}

	err := a.DB.Table("appointments").
		Select(appointmentColumns).
		Joins("LEFT JOIN services ON services.id = appointments.service_id AND services.deleted_at IS NULL").
		Where("appointments.customer_email = ?", email).
		Scan(&views).Error
	if err != nil {
		log.Printf("Error listing customer appointments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}
	return c.JSON(views)
}

// Create books a slot for the calling customer. The availability check and
// the insert run in one transaction, and the partial unique index on
// (service_id, slot) backstops the race two concurrent bookings would
// otherwise win together.
func (a *AppointmentController) Create(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	input := new(bookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}
	if input.ServiceID == 0 || input.Slot.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Service and slot required",
		})
	}

	var service models.Service
	if err := a.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	// Providers without a declared schedule accept any slot; a declared
	// schedule is binding.
	var schedule models.WorkingHours
	err := a.DB.Where("provider_email = ?", service.ProviderEmail).First(&schedule).Error
	if err == nil && !utils.SlotWithinHours(schedule.Hours, input.Slot) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Slot is outside the provider's working hours",
		})
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking working hours: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}

	appointment := models.Appointment{
		ServiceID:     input.ServiceID,
		CustomerEmail: email,
		Slot:          input.Slot,
		Status:        models.StatusBooked,
	}
	err = a.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("service_id = ? AND slot = ? AND status = ?",
				input.ServiceID, input.Slot, models.StatusBooked).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		// A creation failure here is a lost race on the unique index.
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available",
		})
	}

	go a.sendConfirmation(email, service, appointment)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Appointment booked successfully",
		"appointment": appointment,
	})
}

// Cancel flips a booked appointment to cancelled. The caller must be the
// booking customer or the provider owning the underlying service; both
// checks live in the WHERE clause, so anything else is a 404. Cancelled is
// terminal, which makes a second cancel a 404 as well.
func (a *AppointmentController) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	email := c.Locals("email").(string)

	owned := a.DB.Model(&models.Service{}).
		Select("id").
		Where("provider_email = ?", email)

	result := a.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, models.StatusBooked).
		Where(a.DB.Where("customer_email = ?", email).Or("service_id IN (?)", owned)).
		Update("status", models.StatusCancelled)
	if result.Error != nil {
		log.Printf("Error cancelling appointment: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Database error",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Appointment cancelled successfully"})
}

func (a *AppointmentController) sendConfirmation(to string, service models.Service, appointment models.Appointment) {
	body := fmt.Sprintf(`
		<p>Your appointment has been booked.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Slot:</strong> %s</li>
		</ul>
	`, service.Title, service.ProviderEmail, appointment.Slot.Format("2006-01-02 15:04"))

	if err := a.Mailer.Send(to, "Appointment Confirmation", body); err != nil {
		log.Printf("Failed to send confirmation for appointment %d: %v", appointment.ID, err)
	}
}

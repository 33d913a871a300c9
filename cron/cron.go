package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/bookwise/bookwise/models"
	"github.com/bookwise/bookwise/utils"
)

// Start schedules the background sweeps: completing past bookings and
// mailing reminders for upcoming ones.
func Start(database *gorm.DB, mailer *utils.Mailer) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("*/5 * * * *", func() { completeExpired(database) }); err != nil {
		log.Fatalf("Failed to add completion sweep: %v", err)
	}
	if _, err := c.AddFunc("* * * * *", func() { sendReminders(database, mailer) }); err != nil {
		log.Fatalf("Failed to add reminder sweep: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
	return c
}

// completeExpired moves booked appointments whose slot has passed into the
// terminal completed state.
func completeExpired(database *gorm.DB) {
	result := database.Model(&models.Appointment{}).
		Where("status = ? AND slot < ?", models.StatusBooked, time.Now()).
		Update("status", models.StatusCompleted)
	if result.Error != nil {
		log.Printf("Error completing expired appointments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Marked %d appointments completed", result.RowsAffected)
	}
}

// sendReminders mails customers whose booked slot starts in about an hour.
func sendReminders(database *gorm.DB, mailer *utils.Mailer) {
	if mailer == nil {
		return
	}

	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	type reminder struct {
		ID            uint
		CustomerEmail string
		Slot          time.Time
		ServiceTitle  string
	}

	var due []reminder
	err := database.Table("appointments").
		Select(`appointments.id, appointments.customer_email, appointments.slot,
			COALESCE(services.title, '') AS service_title`).
		Joins("LEFT JOIN services ON services.id = appointments.service_id AND services.deleted_at IS NULL").
		Where("appointments.status = ? AND appointments.slot BETWEEN ? AND ?",
			models.StatusBooked, startWindow, endWindow).
		Scan(&due).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, r := range due {
		body := fmt.Sprintf(`
			<p>This is a reminder for your upcoming appointment in one hour.</p>
			<ul>
				<li><strong>Service:</strong> %s</li>
				<li><strong>Slot:</strong> %s</li>
			</ul>
		`, r.ServiceTitle, r.Slot.Format("2006-01-02 15:04"))

		if err := mailer.Send(r.CustomerEmail, "Appointment Reminder", body); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", r.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", r.ID, r.CustomerEmail)
	}
}

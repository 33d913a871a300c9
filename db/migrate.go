package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/bookwise/bookwise/models"
)

// Migrate applies the schema, including the partial unique index that
// guards booked slots against double-booking.
func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.WorkingHours{},
	)
	if err != nil {
		return err
	}

	log.Println("✅ Migrations applied successfully!")
	return nil
}

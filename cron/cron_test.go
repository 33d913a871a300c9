package cron

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookwise/bookwise/models"
)

func TestCompleteExpired(t *testing.T) {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, _ := database.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(&models.Appointment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	past := models.Appointment{ServiceID: 1, CustomerEmail: "[email protected]", Slot: time.Now().Add(-time.Hour), Status: models.StatusBooked}
	future := models.Appointment{ServiceID: 1, CustomerEmail: "[email protected]", Slot: time.Now().Add(time.Hour), Status: models.StatusBooked}
	done := models.Appointment{ServiceID: 2, CustomerEmail: "[email protected]", Slot: time.Now().Add(-2 * time.Hour), Status: models.StatusCancelled}
	for _, a := range []*models.Appointment{&past, &future, &done} {
		if err := database.Create(a).Error; err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}

	completeExpired(database)

	status := func(id uint) models.AppointmentStatus {
		var a models.Appointment
		if err := database.First(&a, id).Error; err != nil {
			t.Fatalf("failed to reload: %v", err)
		}
		return a.Status
	}

	if got := status(past.ID); got != models.StatusCompleted {
		t.Fatalf("expected past booking completed, got %s", got)
	}
	if got := status(future.ID); got != models.StatusBooked {
		t.Fatalf("expected future booking untouched, got %s", got)
	}
	if got := status(done.ID); got != models.StatusCancelled {
		t.Fatalf("expected cancelled row untouched, got %s", got)
	}
}

package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is a customer's claim on a (service, slot) pair. The partial
// unique index keeps two booked appointments off the same slot even under
// concurrent inserts; cancelled and completed rows free the slot again.
type Appointment struct {
	gorm.Model
	ServiceID     uint              `json:"service_id" gorm:"uniqueIndex:uniq_booked_slot,where:status = 'booked'"`
	CustomerEmail string            `json:"customer_email" gorm:"index"`
	Slot          time.Time         `json:"slot" gorm:"uniqueIndex:uniq_booked_slot,where:status = 'booked'"`
	Status        AppointmentStatus `json:"status"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusBooked
	}
	return nil
}

// UpdateStatus enforces the forward-only state machine: booked may move to
// cancelled or completed, both of which are terminal.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusBooked:
		if newStatus != StatusCancelled && newStatus != StatusCompleted {
			return fmt.Errorf("invalid transition from booked to %s", newStatus)
		}
	case StatusCancelled, StatusCompleted:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}

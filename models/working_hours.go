package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// HourWindow is one recurring weekly availability window. Day is the
// three-letter weekday name ("Mon"), Start/End are "HH:MM" in 24h.
type HourWindow struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// HourWindows is stored as a JSON blob on the provider's single
// working-hours row.
type HourWindows []HourWindow

// Value implements the driver.Valuer interface
func (h HourWindows) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (h *HourWindows) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal HourWindows: unsupported type %T", value)
	}

	return json.Unmarshal(data, h)
}

// WorkingHours is a provider's full weekly schedule. One row per provider,
// replaced wholesale on every update.
type WorkingHours struct {
	ProviderEmail string      `json:"provider_email" gorm:"primaryKey"`
	Hours         HourWindows `json:"hours" gorm:"type:text"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

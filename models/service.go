package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	ProviderEmail string  `json:"provider_email" gorm:"index"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
}

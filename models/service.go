package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a catalog entry for a chargeable extra (minibar, laundry,
// airport transfer, ...). PerItem services scale with a quantity; flat
// services are a one-time fee regardless of quantity.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceName string  `gorm:"column:service_name;size:255" json:"serviceName"`
	ServiceType string  `gorm:"column:service_type;size:64" json:"serviceType"`
	BasePrice   float64 `gorm:"column:base_price;type:decimal(10,2)" json:"basePrice"`
	PerItem     bool    `gorm:"column:per_item;default:false" json:"isPerItem"`
	Active      bool    `gorm:"column:active;default:true" json:"active"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package models

import (
	"gorm.io/gorm"
)

// AdditionalCharge is a catalog service applied to a booking. UnitPrice is
// a snapshot of the catalog price at selection time; later catalog edits
// must not change existing charges. TotalAmount is stored for reporting
// queries but is always recomputed from Quantity × UnitPrice before use.
type AdditionalCharge struct {
	gorm.Model

	BookingID uint `gorm:"index:idx_booking_service,unique;column:booking_id" json:"bookingId"`
	ServiceID uint `gorm:"index:idx_booking_service,unique;column:service_id" json:"serviceId"`

	ServiceName string  `gorm:"column:service_name;size:255" json:"serviceName"`
	PerItem     bool    `gorm:"column:per_item;default:false" json:"isPerItem"`
	Quantity    int     `gorm:"column:quantity;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price;type:decimal(10,2)" json:"unitPrice"`
	TotalAmount float64 `gorm:"column:total_amount;type:decimal(10,2)" json:"totalAmount"`

	Service Service `gorm:"foreignKey:ServiceID;references:ID" json:"service,omitempty"`
}

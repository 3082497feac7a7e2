package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	// Nullable so a missing FK from the frontend doesn't insert 0.
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`
	Status     string `json:"status" gorm:"size:32;default:Available"`

	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night;type:decimal(10,2)"`
	RatePerHour   float64 `json:"ratePerHour" gorm:"column:rate_per_hour;type:decimal(10,2)"`
	MaxOccupancy  int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description   string  `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment record statuses. Only completed payments count toward a
// booking's total paid.
const (
	PaymentRecordCompleted = "completed"
	PaymentRecordPending   = "pending"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID     uint      `gorm:"index;column:booking_id" json:"bookingId"`
	ReceiptNumber string    `gorm:"column:receipt_number;uniqueIndex;size:64" json:"receiptNumber"`
	Amount        float64   `gorm:"column:amount;type:decimal(10,2)" json:"amount"`
	Method        string    `gorm:"column:method;size:50" json:"paymentMethod"`
	Status        string    `gorm:"column:status;size:32;default:completed" json:"paymentStatus"`
	PaidAt        time.Time `gorm:"column:paid_at" json:"paymentDateTime"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. The lifecycle is driven by front-desk operations
// (create, check-in, extend, check-out, cancel).
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusOccupied   = "occupied"
	BookingStatusExtended   = "extended"
	BookingStatusCancelled  = "cancelled"
	BookingStatusCheckedOut = "checked_out"
)

// Booking-level payment statuses. Cached for list filtering only — the
// ledger recomputes them before anything is displayed.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusPending = "pending"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CustomerID    uint   `gorm:"index;column:customer_id" json:"customerId"`
	RoomID        *uint  `gorm:"column:room_id;index" json:"roomId,omitempty"`
	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`
	Status        string `gorm:"column:status;size:32;default:confirmed" json:"status"`

	CheckInDateTime          *time.Time `gorm:"column:check_in_datetime" json:"checkInDateTime,omitempty"`
	ExpectedCheckOutDateTime *time.Time `gorm:"column:expected_check_out_datetime" json:"expectedCheckOutDateTime,omitempty"`
	ActualCheckInDateTime    *time.Time `gorm:"column:actual_check_in_datetime" json:"actualCheckInDateTime,omitempty"`
	ActualCheckOutDateTime   *time.Time `gorm:"column:actual_check_out_datetime" json:"actualCheckOutDateTime,omitempty"`

	BaseAmount        float64 `gorm:"column:base_amount;type:decimal(10,2)" json:"baseAmount"`
	RateAmountPerHour float64 `gorm:"column:rate_amount_per_hour;type:decimal(10,2)" json:"rateAmountPerHour"`
	DiscountAmount    float64 `gorm:"column:discount_amount;type:decimal(10,2)" json:"discountAmount"`
	TaxAmount         float64 `gorm:"column:tax_amount;type:decimal(10,2)" json:"taxAmount"`
	ServiceCharges    float64 `gorm:"column:service_charges_amount;type:decimal(10,2)" json:"serviceChargesAmount"`
	TotalAmount       float64 `gorm:"column:total_amount;type:decimal(10,2)" json:"totalAmount"`
	TotalPaid         float64 `gorm:"column:total_paid;type:decimal(10,2)" json:"totalPaid"`
	PaymentStatus     string  `gorm:"column:payment_status;size:32;default:pending" json:"paymentStatus"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	// Draft guest list entered at reservation time, finalized at check-in.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	Room     *Room              `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Customer Customer           `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
	Charges  []AdditionalCharge `gorm:"foreignKey:BookingID" json:"charges"`
	Payments []Payment          `gorm:"foreignKey:BookingID" json:"payments"`
}

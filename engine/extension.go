package engine

import (
	"time"

	"frontdesk-backend/models"
)

// ExtensionResult is a preview of extending a stay. Nothing is persisted
// here; committing the extension is the caller's operation.
type ExtensionResult struct {
	NewCheckOutDateTime time.Time `json:"newCheckOutDateTime"`
	ExtensionCharge     float64   `json:"extensionCharge"`
	NewTotalAmount      float64   `json:"newTotalAmount"`

	// RateMissing flags a booking without an hourly rate: the charge is 0
	// and the caller should warn rather than fail.
	RateMissing bool `json:"rateMissing"`
}

// Extend projects the effect of adding extensionHours to the expected
// check-out. Hours outside [1, 24] are rejected, never silently clamped.
func Extend(b models.Booking, extensionHours int) (ExtensionResult, error) {
	if extensionHours < 1 || extensionHours > 24 {
		return ExtensionResult{}, ErrInvalidExtensionHours
	}
	if b.ExpectedCheckOutDateTime == nil {
		return ExtensionResult{}, ErrNoCheckOutTime
	}
	if b.RateAmountPerHour < 0 {
		return ExtensionResult{}, ErrNegativeAmount
	}

	charge := round2(float64(extensionHours) * b.RateAmountPerHour)
	return ExtensionResult{
		NewCheckOutDateTime: b.ExpectedCheckOutDateTime.Add(time.Duration(extensionHours) * time.Hour),
		ExtensionCharge:     charge,
		NewTotalAmount:      round2(b.TotalAmount + charge),
		RateMissing:         b.RateAmountPerHour == 0,
	}, nil
}

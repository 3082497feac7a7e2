package services

import (
	"fmt"

	"frontdesk-backend/engine"
	"frontdesk-backend/models"

	"gorm.io/gorm"
)

// RecomputeBookingTotals rebuilds every derived money column on a booking
// from its canonical inputs (base, discount, charge lines, payments) via
// the engine, then persists the result. The stored columns exist for list
// filtering; they are refreshed here after every mutation so they cannot
// drift.
func RecomputeBookingTotals(tx *gorm.DB, resolver *engine.Resolver, bookingID uint) (models.Booking, error) {
	var booking models.Booking
	if err := tx.Preload("Charges").Preload("Payments").First(&booking, bookingID).Error; err != nil {
		return booking, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	totals := resolver.Totals(booking.BaseAmount, booking.DiscountAmount, booking.Charges)
	ledger := engine.ComputeTotals(totals.TotalAmount, booking.Payments)

	updates := map[string]interface{}{
		"tax_amount":             totals.TaxAmount,
		"service_charges_amount": totals.ServiceCharges,
		"total_amount":           totals.TotalAmount,
		"total_paid":             ledger.TotalPaid,
		"payment_status":         ledger.PaymentStatus,
	}
	if err := tx.Model(&booking).Updates(updates).Error; err != nil {
		return booking, fmt.Errorf("failed to update booking totals: %w", err)
	}

	booking.TaxAmount = totals.TaxAmount
	booking.ServiceCharges = totals.ServiceCharges
	booking.TotalAmount = totals.TotalAmount
	booking.TotalPaid = ledger.TotalPaid
	booking.PaymentStatus = ledger.PaymentStatus
	return booking, nil
}

package engine

import (
	"math"

	"frontdesk-backend/models"
)

// LedgerTotals is the money position of a single booking. Balance is
// reported as-is and may be negative on overpayment; BalanceDue is floored
// at zero for display.
type LedgerTotals struct {
	TotalPaid     float64 `json:"totalPaid"`
	Balance       float64 `json:"balance"`
	BalanceDue    float64 `json:"balanceDue"`
	PaymentStatus string  `json:"paymentStatus"`
}

// ComputeTotals derives the paid total, balance and payment status for a
// booking total from its payment list. Only completed payments count.
func ComputeTotals(totalAmount float64, payments []models.Payment) LedgerTotals {
	var paid float64
	for _, p := range payments {
		if p.Status == models.PaymentRecordCompleted {
			paid += p.Amount
		}
	}
	paid = round2(paid)
	balance := round2(totalAmount - paid)

	status := models.PaymentStatusPartial
	switch {
	case balance <= 0:
		status = models.PaymentStatusPaid
	case paid == 0:
		status = models.PaymentStatusPending
	}

	return LedgerTotals{
		TotalPaid:     paid,
		Balance:       balance,
		BalanceDue:    math.Max(balance, 0),
		PaymentStatus: status,
	}
}

// PendingAmount sums payments that were recorded but not yet completed,
// independent of the booking-level balance.
func PendingAmount(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == models.PaymentRecordPending {
			total += p.Amount
		}
	}
	return round2(total)
}

// ValidatePayment is the ingestion boundary: a bad record is rejected here
// so it can never corrupt an aggregate later.
func ValidatePayment(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

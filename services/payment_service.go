package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"frontdesk-backend/engine"
	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"gorm.io/gorm"
)

// PaymentService ingests and lists payments. Amounts are validated at
// this boundary so a bad record can never reach an aggregate.
type PaymentService struct {
	DB       *gorm.DB
	Resolver *engine.Resolver
}

func NewPaymentService(db *gorm.DB, resolver *engine.Resolver) *PaymentService {
	return &PaymentService{DB: db, Resolver: resolver}
}

// RecordPayment stores a payment against a booking and refreshes the
// booking's paid total and payment status.
func (s *PaymentService) RecordPayment(bookingID uint, amount float64, method, status string) (models.Payment, error) {
	var payment models.Payment

	if err := engine.ValidatePayment(amount); err != nil {
		return payment, err
	}

	switch status {
	case "":
		status = models.PaymentRecordCompleted
	case models.PaymentRecordCompleted, models.PaymentRecordPending:
	default:
		return payment, errors.New("validation: unknown payment status")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}
		if booking.Status == models.BookingStatusCancelled {
			return errors.New("invalid_status")
		}

		now := time.Now().UTC()
		payment = models.Payment{
			BookingID: booking.ID,
			Amount:    amount,
			Method:    method,
			Status:    status,
			PaidAt:    now,
		}

		var createErr error
		for attempt := 0; attempt < 5; attempt++ {
			payment.ReceiptNumber = utils.NewReceiptNumber(now)
			createErr = tx.Create(&payment).Error
			if createErr == nil {
				break
			}
			lc := strings.ToLower(createErr.Error())
			if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
				continue
			}
			return fmt.Errorf("failed to create payment: %w", createErr)
		}
		if createErr != nil {
			return fmt.Errorf("failed to create payment after retries: %w", createErr)
		}

		_, err := RecomputeBookingTotals(tx, s.Resolver, booking.ID)
		return err
	})
	return payment, txErr
}

// CompletePayment settles a pending payment.
func (s *PaymentService) CompletePayment(paymentID uint) (models.Payment, error) {
	var payment models.Payment

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("payment_not_found")
			}
			return err
		}
		if payment.Status == models.PaymentRecordCompleted {
			return nil // idempotent
		}

		if err := tx.Model(&payment).Update("status", models.PaymentRecordCompleted).Error; err != nil {
			return err
		}
		payment.Status = models.PaymentRecordCompleted

		_, err := RecomputeBookingTotals(tx, s.Resolver, payment.BookingID)
		return err
	})
	return payment, txErr
}

// ListByBooking returns a booking's payments plus its current ledger
// position, all derived through the engine.
func (s *PaymentService) ListByBooking(bookingID uint) ([]models.Payment, engine.LedgerTotals, error) {
	var booking models.Booking
	if err := s.DB.Preload("Charges").Preload("Payments").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, engine.LedgerTotals{}, errors.New("booking_not_found")
		}
		return nil, engine.LedgerTotals{}, fmt.Errorf("failed to load booking: %w", err)
	}

	totals := s.Resolver.Totals(booking.BaseAmount, booking.DiscountAmount, booking.Charges)
	ledger := engine.ComputeTotals(totals.TotalAmount, booking.Payments)
	return booking.Payments, ledger, nil
}

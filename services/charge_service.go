package services

import (
	"errors"
	"fmt"

	"frontdesk-backend/engine"
	"frontdesk-backend/models"

	"gorm.io/gorm"
)

// ChargeService attaches catalog services to bookings. Selection rules
// (set semantics, snapshot pricing, quantity pinning) live in the engine;
// this layer only persists the resulting selection and refreshes totals.
type ChargeService struct {
	DB       *gorm.DB
	Resolver *engine.Resolver
}

func NewChargeService(db *gorm.DB, resolver *engine.Resolver) *ChargeService {
	return &ChargeService{DB: db, Resolver: resolver}
}

func (s *ChargeService) loadOpenBooking(tx *gorm.DB, bookingID uint) (models.Booking, error) {
	var booking models.Booking
	if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking, errors.New("booking_not_found")
		}
		return booking, err
	}
	if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCheckedOut {
		return booking, errors.New("invalid_status")
	}
	return booking, nil
}

// AddCharge applies a catalog service to a booking with the engine's
// replace-not-duplicate semantics and snapshot pricing, then refreshes the
// booking's totals.
func (s *ChargeService) AddCharge(bookingID, serviceID uint, quantity int) (models.Booking, error) {
	var result models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := s.loadOpenBooking(tx, bookingID)
		if err != nil {
			return err
		}

		var svc models.Service
		if err := tx.First(&svc, serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("service_not_found")
			}
			return err
		}
		if !svc.Active {
			return errors.New("service_inactive")
		}

		var existing []models.AdditionalCharge
		if err := tx.Where("booking_id = ?", booking.ID).Order("id ASC").Find(&existing).Error; err != nil {
			return err
		}

		selection, err := engine.AddCharge(existing, svc, quantity)
		if err != nil {
			return err
		}

		// The engine returns the full selection; only the entry for this
		// service changed.
		for _, entry := range selection {
			if entry.ServiceID != svc.ID {
				continue
			}
			entry.BookingID = booking.ID
			if entry.ID != 0 {
				if err := tx.Model(&models.AdditionalCharge{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
					"quantity":     entry.Quantity,
					"unit_price":   entry.UnitPrice,
					"per_item":     entry.PerItem,
					"service_name": entry.ServiceName,
					"total_amount": entry.TotalAmount,
				}).Error; err != nil {
					return err
				}
			} else if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			break
		}

		result, err = RecomputeBookingTotals(tx, s.Resolver, booking.ID)
		return err
	})
	return result, txErr
}

// SetQuantity changes the quantity of an already-selected service.
func (s *ChargeService) SetQuantity(bookingID, serviceID uint, quantity int) (models.Booking, error) {
	var result models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := s.loadOpenBooking(tx, bookingID)
		if err != nil {
			return err
		}

		var existing []models.AdditionalCharge
		if err := tx.Where("booking_id = ?", booking.ID).Order("id ASC").Find(&existing).Error; err != nil {
			return err
		}

		selection, err := engine.SetQuantity(existing, serviceID, quantity)
		if err != nil {
			return err
		}

		for _, entry := range selection {
			if entry.ServiceID != serviceID {
				continue
			}
			if err := tx.Model(&models.AdditionalCharge{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
				"quantity":     entry.Quantity,
				"total_amount": entry.TotalAmount,
			}).Error; err != nil {
				return err
			}
			break
		}

		result, err = RecomputeBookingTotals(tx, s.Resolver, booking.ID)
		return err
	})
	return result, txErr
}

// RemoveCharge detaches a service from the booking.
func (s *ChargeService) RemoveCharge(bookingID, serviceID uint) (models.Booking, error) {
	var result models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		booking, err := s.loadOpenBooking(tx, bookingID)
		if err != nil {
			return err
		}

		// Hard delete: the booking+service unique index would block re-adding
		// the service if the old line stayed behind soft-deleted.
		if err := tx.Unscoped().Where("booking_id = ? AND service_id = ?", booking.ID, serviceID).
			Delete(&models.AdditionalCharge{}).Error; err != nil {
			return err
		}

		result, err = RecomputeBookingTotals(tx, s.Resolver, booking.ID)
		return err
	})
	return result, txErr
}

// ListCharges returns the ordered selection with line totals recomputed
// from quantity × unit price, never from the stored column.
func (s *ChargeService) ListCharges(bookingID uint) ([]models.AdditionalCharge, error) {
	var charges []models.AdditionalCharge
	if err := s.DB.Where("booking_id = ?", bookingID).Order("id ASC").Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}
	for i := range charges {
		charges[i].TotalAmount = engine.ChargeTotal(charges[i])
	}
	return charges, nil
}

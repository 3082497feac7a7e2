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

// BookingService wraps *gorm.DB for the booking lifecycle. Derived values
// (urgency, balances, extension previews) always go through the engine.
type BookingService struct {
	DB       *gorm.DB
	Resolver *engine.Resolver
}

func NewBookingService(db *gorm.DB, resolver *engine.Resolver) *BookingService {
	return &BookingService{DB: db, Resolver: resolver}
}

type CreateBookingInput struct {
	CustomerID       uint
	RoomID           uint
	CheckIn          string
	ExpectedCheckOut string
	DiscountAmount   float64
	Adults           int
	Children         int
	AccompanyingJSON []byte
}

func parseStayTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02 15:04", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		// Date-only check-out falls on the hotel's noon deadline.
		return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", value)
}

func stayNights(checkIn, checkOut time.Time) int {
	n := int(checkOut.Sub(checkIn).Hours() / 24)
	if n <= 0 {
		n = 1
	}
	return n
}

// CreateBooking reserves a room, prices the stay from the room's rates and
// stores the booking with fully recomputed totals.
func (s *BookingService) CreateBooking(in CreateBookingInput) (models.Booking, error) {
	var result models.Booking

	checkIn, err := parseStayTime(in.CheckIn)
	if err != nil {
		return result, fmt.Errorf("validation: invalid check_in: %w", err)
	}
	checkOut, err := parseStayTime(in.ExpectedCheckOut)
	if err != nil {
		return result, fmt.Errorf("validation: invalid expected_check_out: %w", err)
	}
	if !checkOut.After(checkIn) {
		return result, errors.New("validation: check-out must be after check-in")
	}
	if in.DiscountAmount < 0 {
		return result, fmt.Errorf("validation: %w", engine.ErrNegativeAmount)
	}

	var customer models.Customer
	if err := s.DB.First(&customer, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, errors.New("validation: customer not found")
		}
		return result, fmt.Errorf("db error checking customer: %w", err)
	}

	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, errors.New("validation: room not found")
		}
		return result, fmt.Errorf("db error checking room: %w", err)
	}

	adults := in.Adults
	if adults <= 0 {
		adults = 1
	}
	children := in.Children
	if children < 0 {
		children = 0
	}

	baseAmount := float64(stayNights(checkIn, checkOut)) * room.PricePerNight
	totals := s.Resolver.Totals(baseAmount, in.DiscountAmount, nil)

	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		roomID := room.ID
		booking := models.Booking{
			CustomerID:               customer.ID,
			RoomID:                   &roomID,
			Status:                   models.BookingStatusConfirmed,
			CheckInDateTime:          &checkIn,
			ExpectedCheckOutDateTime: &checkOut,
			BaseAmount:               baseAmount,
			RateAmountPerHour:        room.RatePerHour,
			DiscountAmount:           in.DiscountAmount,
			TaxAmount:                totals.TaxAmount,
			TotalAmount:              totals.TotalAmount,
			PaymentStatus:            models.PaymentStatusPending,
			Adults:                   adults,
			Children:                 children,
			AccompanyingGuests:       in.AccompanyingJSON,
		}

		// Retry reference generation on the unique index.
		var createErr error
		for attempt := 0; attempt < 5; attempt++ {
			booking.ReferenceCode = utils.NewBookingReference(time.Now().UTC())
			createErr = tx.Create(&booking).Error
			if createErr == nil {
				break
			}
			lc := strings.ToLower(createErr.Error())
			if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
				continue
			}
			return fmt.Errorf("failed to create booking: %w", createErr)
		}
		if createErr != nil {
			return fmt.Errorf("failed to create booking after retries: %w", createErr)
		}
		bookingID = booking.ID

		return tx.Model(&models.Room{}).
			Where("id = ?", room.ID).
			Update("status", "Reserved").Error
	})
	if txErr != nil {
		return result, txErr
	}

	if err := s.DB.
		Preload("Customer").
		Preload("Room.RoomType").
		Preload("Charges").
		Preload("Payments").
		First(&result, bookingID).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetAllWithRelations loads every booking with the records the resolver
// needs.
func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Customer").
		Preload("Room.RoomType").
		Preload("Charges").
		Preload("Payments").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}

	for i := range list {
		if list[i].Charges == nil {
			list[i].Charges = []models.AdditionalCharge{}
		}
		if list[i].Payments == nil {
			list[i].Payments = []models.Payment{}
		}
	}
	return list, nil
}

func (s *BookingService) GetBookingDetails(bookingID uint) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.
		Preload("Customer").
		Preload("Room.RoomType").
		Preload("Charges").
		Preload("Payments").
		First(&bk, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &bk, nil
}

// ResolveView derives the consolidated read model for one booking at the
// supplied instant.
func (s *BookingService) ResolveView(bookingID uint, now time.Time) (engine.BookingView, error) {
	bk, err := s.GetBookingDetails(bookingID)
	if err != nil {
		return engine.BookingView{}, err
	}
	return s.Resolver.Resolve(*bk, bk.Charges, bk.Payments, now), nil
}

// CheckIn marks the guest as physically arrived.
func (s *BookingService) CheckIn(bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		switch booking.Status {
		case models.BookingStatusConfirmed, models.BookingStatusPending:
		case models.BookingStatusOccupied, models.BookingStatusExtended:
			return errors.New("already_checked_in")
		default:
			return errors.New("invalid_status")
		}

		now := time.Now().UTC()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":                   models.BookingStatusOccupied,
			"actual_check_in_datetime": now,
		}).Error; err != nil {
			return err
		}

		if booking.RoomID != nil {
			return tx.Model(&models.Room{}).
				Where("id = ?", *booking.RoomID).
				Update("status", "Occupied").Error
		}
		return nil
	})
}

// CheckOut closes the stay and releases the room.
func (s *BookingService) CheckOut(bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		if booking.Status != models.BookingStatusOccupied && booking.Status != models.BookingStatusExtended {
			return errors.New("not_checked_in")
		}

		now := time.Now().UTC()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":                    models.BookingStatusCheckedOut,
			"actual_check_out_datetime": now,
		}).Error; err != nil {
			return err
		}

		if booking.RoomID != nil {
			return tx.Model(&models.Room{}).
				Where("id = ?", *booking.RoomID).
				Update("status", "Available").Error
		}
		return nil
	})
}

// Cancel voids a booking that has not been checked in.
func (s *BookingService) Cancel(bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		switch booking.Status {
		case models.BookingStatusOccupied, models.BookingStatusExtended:
			return errors.New("already_checked_in")
		case models.BookingStatusCheckedOut:
			return errors.New("booking_checked_out")
		case models.BookingStatusCancelled:
			return nil
		}

		if err := tx.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return err
		}

		if booking.RoomID != nil {
			return tx.Model(&models.Room{}).
				Where("id = ?", *booking.RoomID).
				Update("status", "Available").Error
		}
		return nil
	})
}

// PreviewExtension projects a stay extension without persisting anything.
// Totals are recomputed from scratch first so the projection cannot start
// from a stale grand total.
func (s *BookingService) PreviewExtension(bookingID uint, hours int) (engine.ExtensionResult, error) {
	bk, err := s.GetBookingDetails(bookingID)
	if err != nil {
		return engine.ExtensionResult{}, err
	}

	totals := s.Resolver.Totals(bk.BaseAmount, bk.DiscountAmount, bk.Charges)
	fresh := *bk
	fresh.TotalAmount = totals.TotalAmount
	return engine.Extend(fresh, hours)
}

// CommitExtension applies a previewed extension: the expected check-out
// moves and the charge lands as an hourly charge line, so the totals
// invariant (base − discount + tax + charges) keeps holding.
func (s *BookingService) CommitExtension(bookingID uint, hours int) (models.Booking, engine.ExtensionResult, error) {
	var (
		result models.Booking
		ext    engine.ExtensionResult
	)

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).
			Preload("Charges").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCheckedOut {
			return errors.New("invalid_status")
		}

		totals := s.Resolver.Totals(booking.BaseAmount, booking.DiscountAmount, booking.Charges)
		fresh := booking
		fresh.TotalAmount = totals.TotalAmount

		var err error
		ext, err = engine.Extend(fresh, hours)
		if err != nil {
			return err
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"expected_check_out_datetime": ext.NewCheckOutDateTime,
			"status":                      models.BookingStatusExtended,
		}).Error; err != nil {
			return err
		}

		if ext.ExtensionCharge > 0 {
			if err := upsertExtensionCharge(tx, booking, hours); err != nil {
				return err
			}
		}

		result, err = RecomputeBookingTotals(tx, s.Resolver, bookingID)
		return err
	})
	if txErr != nil {
		return result, ext, txErr
	}
	return result, ext, nil
}

// upsertExtensionCharge accumulates extension hours on a single reserved
// charge line per booking.
func upsertExtensionCharge(tx *gorm.DB, booking models.Booking, hours int) error {
	var line models.AdditionalCharge
	err := tx.Where("booking_id = ? AND service_name = ?", booking.ID, extensionChargeName).
		First(&line).Error
	if err == nil {
		line.Quantity += hours
		line.TotalAmount = engine.ChargeTotal(line)
		return tx.Save(&line).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	line = models.AdditionalCharge{
		BookingID:   booking.ID,
		ServiceID:   extensionServiceID(tx),
		ServiceName: extensionChargeName,
		PerItem:     true,
		Quantity:    hours,
		UnitPrice:   booking.RateAmountPerHour,
	}
	line.TotalAmount = engine.ChargeTotal(line)
	return tx.Create(&line).Error
}

const extensionChargeName = "Stay Extension (hourly)"

// extensionServiceID finds or creates the catalog entry backing extension
// charge lines. Its price is always snapshotted from the booking's hourly
// rate, never from the catalog.
func extensionServiceID(tx *gorm.DB) uint {
	var svc models.Service
	if err := tx.Where("service_name = ?", extensionChargeName).First(&svc).Error; err == nil {
		return svc.ID
	}
	svc = models.Service{ServiceName: extensionChargeName, ServiceType: "extension", BasePrice: 0, PerItem: true}
	if err := tx.Create(&svc).Error; err != nil {
		return 0
	}
	return svc.ID
}

// DeleteByReference removes a booking by its display reference.
func (s *BookingService) DeleteByReference(referenceCode string) error {
	res := s.DB.Where("reference_code = ?", referenceCode).Delete(&models.Booking{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

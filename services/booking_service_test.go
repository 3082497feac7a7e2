package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"frontdesk-backend/engine"
	"frontdesk-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Customer{},
		&models.Service{},
		&models.Booking{},
		&models.AdditionalCharge{},
		&models.Payment{},
	))
	return db
}

type testFixture struct {
	db       *gorm.DB
	resolver *engine.Resolver
	bookings *BookingService
	charges  *ChargeService
	payments *PaymentService

	customer models.Customer
	room     models.Room
	extraBed models.Service
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	db := newTestDB(t)
	resolver := engine.NewResolver(engine.DefaultThresholds, engine.DefaultVATRate)

	f := &testFixture{
		db:       db,
		resolver: resolver,
		bookings: NewBookingService(db, resolver),
		charges:  NewChargeService(db, resolver),
		payments: NewPaymentService(db, resolver),
	}

	f.customer = models.Customer{FullName: "Ava Chen", Email: "ava@example.com"}
	require.NoError(t, db.Create(&f.customer).Error)

	f.room = models.Room{
		RoomNumber:    "301",
		Floor:         "3",
		Status:        "Available",
		PricePerNight: 1000,
		RatePerHour:   200,
		MaxOccupancy:  2,
	}
	require.NoError(t, db.Create(&f.room).Error)

	f.extraBed = models.Service{
		ServiceName: "Extra Bed",
		ServiceType: "amenity",
		BasePrice:   500,
		PerItem:     true,
		Active:      true,
	}
	require.NoError(t, db.Create(&f.extraBed).Error)

	return f
}

func (f *testFixture) createBooking(t *testing.T) models.Booking {
	t.Helper()
	booking, err := f.bookings.CreateBooking(CreateBookingInput{
		CustomerID:       f.customer.ID,
		RoomID:           f.room.ID,
		CheckIn:          "2026-03-01",
		ExpectedCheckOut: "2026-03-03",
	})
	require.NoError(t, err)
	return booking
}

func (f *testFixture) roomStatus(t *testing.T) string {
	t.Helper()
	var room models.Room
	require.NoError(t, f.db.First(&room, f.room.ID).Error)
	return room.Status
}

func TestCreateBookingPricesStayFromRoom(t *testing.T) {
	f := newFixture(t)

	booking := f.createBooking(t)

	assert.True(t, strings.HasPrefix(booking.ReferenceCode, "BK-"))
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)

	// Two nights at 1000 plus 7% VAT on the subtotal.
	assert.InDelta(t, 2000, booking.BaseAmount, 1e-9)
	assert.InDelta(t, 140, booking.TaxAmount, 1e-9)
	assert.InDelta(t, 2140, booking.TotalAmount, 1e-9)
	assert.InDelta(t, 200, booking.RateAmountPerHour, 1e-9)

	assert.Equal(t, "Reserved", f.roomStatus(t))
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   CreateBookingInput
	}{
		{"checkout before checkin", CreateBookingInput{CustomerID: f.customer.ID, RoomID: f.room.ID, CheckIn: "2026-03-03", ExpectedCheckOut: "2026-03-01"}},
		{"negative discount", CreateBookingInput{CustomerID: f.customer.ID, RoomID: f.room.ID, CheckIn: "2026-03-01", ExpectedCheckOut: "2026-03-03", DiscountAmount: -50}},
		{"unknown customer", CreateBookingInput{CustomerID: 9999, RoomID: f.room.ID, CheckIn: "2026-03-01", ExpectedCheckOut: "2026-03-03"}},
		{"unknown room", CreateBookingInput{CustomerID: f.customer.ID, RoomID: 9999, CheckIn: "2026-03-01", ExpectedCheckOut: "2026-03-03"}},
		{"garbage timestamp", CreateBookingInput{CustomerID: f.customer.ID, RoomID: f.room.ID, CheckIn: "not-a-date", ExpectedCheckOut: "2026-03-03"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.bookings.CreateBooking(tc.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation")
		})
	}
}

func TestAddChargeReplacesAndRecomputesTotals(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	updated, err := f.charges.AddCharge(booking.ID, f.extraBed.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1000, updated.ServiceCharges, 1e-9)
	assert.InDelta(t, 3140, updated.TotalAmount, 1e-9)

	// Re-adding the same service replaces the line, it never duplicates.
	updated, err = f.charges.AddCharge(booking.ID, f.extraBed.ID, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1500, updated.ServiceCharges, 1e-9)
	assert.InDelta(t, 3640, updated.TotalAmount, 1e-9)

	lines, err := f.charges.ListCharges(booking.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.InDelta(t, 500, lines[0].UnitPrice, 1e-9)

	// Catalog price changes must not leak into the snapshot.
	require.NoError(t, f.db.Model(&models.Service{}).Where("id = ?", f.extraBed.ID).Update("base_price", 999).Error)
	updated, err = f.charges.SetQuantity(booking.ID, f.extraBed.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1000, updated.ServiceCharges, 1e-9)
	assert.InDelta(t, 3140, updated.TotalAmount, 1e-9)

	updated, err = f.charges.RemoveCharge(booking.ID, f.extraBed.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, updated.ServiceCharges, 1e-9)
	assert.InDelta(t, 2140, updated.TotalAmount, 1e-9)

	// Re-adding after removal starts a fresh line with a fresh snapshot.
	updated, err = f.charges.AddCharge(booking.ID, f.extraBed.ID, 1)
	require.NoError(t, err)
	assert.InDelta(t, 999, updated.ServiceCharges, 1e-9)
	assert.InDelta(t, 3139, updated.TotalAmount, 1e-9)
}

func TestAddChargeRejectsInactiveService(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	require.NoError(t, f.db.Model(&models.Service{}).Where("id = ?", f.extraBed.ID).Update("active", false).Error)

	_, err := f.charges.AddCharge(booking.ID, f.extraBed.ID, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_inactive")
}

func TestPaymentsDrivePaymentStatus(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t) // total 2140

	payment, err := f.payments.RecordPayment(booking.ID, 1000, "cash", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payment.ReceiptNumber, "RCPT-"))
	assert.Equal(t, models.PaymentRecordCompleted, payment.Status)

	refreshed, err := f.bookings.GetBookingDetails(booking.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000, refreshed.TotalPaid, 1e-9)
	assert.Equal(t, models.PaymentStatusPartial, refreshed.PaymentStatus)

	// Pending payments never count toward the paid total.
	pending, err := f.payments.RecordPayment(booking.ID, 1140, "transfer", models.PaymentRecordPending)
	require.NoError(t, err)
	refreshed, err = f.bookings.GetBookingDetails(booking.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000, refreshed.TotalPaid, 1e-9)
	assert.Equal(t, models.PaymentStatusPartial, refreshed.PaymentStatus)

	_, err = f.payments.CompletePayment(pending.ID)
	require.NoError(t, err)
	refreshed, err = f.bookings.GetBookingDetails(booking.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2140, refreshed.TotalPaid, 1e-9)
	assert.Equal(t, models.PaymentStatusPaid, refreshed.PaymentStatus)

	_, ledger, err := f.payments.ListByBooking(booking.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, ledger.Balance, 1e-9)
	assert.InDelta(t, 0, ledger.BalanceDue, 1e-9)
}

func TestRecordPaymentRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	_, err := f.payments.RecordPayment(booking.ID, 0, "cash", "")
	assert.ErrorIs(t, err, engine.ErrInvalidAmount)

	_, err = f.payments.RecordPayment(booking.ID, 100, "cash", "refunded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	require.NoError(t, f.bookings.Cancel(booking.ID))
	_, err = f.payments.RecordPayment(booking.ID, 100, "cash", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_status")
}

func TestLifecycleTransitions(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	require.NoError(t, f.bookings.CheckIn(booking.ID))
	assert.Equal(t, "Occupied", f.roomStatus(t))

	err := f.bookings.CheckIn(booking.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already_checked_in")

	err = f.bookings.Cancel(booking.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already_checked_in")

	require.NoError(t, f.bookings.CheckOut(booking.ID))
	assert.Equal(t, "Available", f.roomStatus(t))

	err = f.bookings.CheckOut(booking.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_checked_in")

	err = f.bookings.Cancel(booking.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "booking_checked_out")
}

func TestCancelBeforeCheckInIsIdempotent(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	require.NoError(t, f.bookings.Cancel(booking.ID))
	refreshed, err := f.bookings.GetBookingDetails(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, refreshed.Status)
	assert.Equal(t, "Available", f.roomStatus(t))

	require.NoError(t, f.bookings.Cancel(booking.ID))
}

func TestExtensionPreviewDoesNotPersist(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t) // total 2140, rate 200/h

	ext, err := f.bookings.PreviewExtension(booking.ID, 3)
	require.NoError(t, err)
	assert.InDelta(t, 600, ext.ExtensionCharge, 1e-9)
	assert.InDelta(t, 2740, ext.NewTotalAmount, 1e-9)
	assert.False(t, ext.RateMissing)

	refreshed, err := f.bookings.GetBookingDetails(booking.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2140, refreshed.TotalAmount, 1e-9)
	assert.Equal(t, models.BookingStatusConfirmed, refreshed.Status)
	require.NotNil(t, refreshed.ExpectedCheckOutDateTime)
	assert.True(t, refreshed.ExpectedCheckOutDateTime.Equal(*booking.ExpectedCheckOutDateTime))
}

func TestCommitExtensionMovesCheckOutAndAccumulates(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t) // total 2140
	originalCheckOut := *booking.ExpectedCheckOutDateTime

	updated, ext, err := f.bookings.CommitExtension(booking.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusExtended, updated.Status)
	assert.InDelta(t, 600, ext.ExtensionCharge, 1e-9)
	assert.InDelta(t, 2740, ext.NewTotalAmount, 1e-9)
	assert.InDelta(t, 2740, updated.TotalAmount, 1e-9)

	refreshed, err := f.bookings.GetBookingDetails(booking.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed.ExpectedCheckOutDateTime)
	assert.WithinDuration(t, originalCheckOut.Add(3*time.Hour), *refreshed.ExpectedCheckOutDateTime, time.Second)

	// A second extension accumulates on the same charge line.
	updated, ext, err = f.bookings.CommitExtension(booking.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 400, ext.ExtensionCharge, 1e-9)
	assert.InDelta(t, 3140, updated.TotalAmount, 1e-9)

	lines, err := f.charges.ListCharges(booking.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.InDelta(t, 200, lines[0].UnitPrice, 1e-9)
	assert.InDelta(t, 1000, lines[0].TotalAmount, 1e-9)

	refreshed, err = f.bookings.GetBookingDetails(booking.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, originalCheckOut.Add(5*time.Hour), *refreshed.ExpectedCheckOutDateTime, time.Second)
}

func TestCommitExtensionRejectsClosedBookings(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)
	require.NoError(t, f.bookings.Cancel(booking.ID))

	_, _, err := f.bookings.CommitExtension(booking.ID, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_status")

	_, _, err = f.bookings.CommitExtension(booking.ID, 0)
	require.Error(t, err)
}

func TestResolveViewDerivesUrgencyAndBalance(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t) // checkout 2026-03-03 12:00 UTC

	_, err := f.payments.RecordPayment(booking.ID, 2000, "card", "")
	require.NoError(t, err)

	// Ten minutes before the deadline the stay is due soon.
	now := time.Date(2026, 3, 3, 11, 50, 0, 0, time.UTC)
	view, err := f.bookings.ResolveView(booking.ID, now)
	require.NoError(t, err)

	require.NotNil(t, view.TimeStatus)
	assert.Equal(t, engine.TimeStatusUrgent, view.TimeStatus.Type)
	assert.Equal(t, "301", view.RoomNumber)
	assert.InDelta(t, 140, view.Balance, 1e-9)
	assert.InDelta(t, 140, view.BalanceDue, 1e-9)
	assert.Equal(t, models.PaymentStatusPartial, view.PaymentStatus)
	assert.Equal(t, "Partially Paid", view.PaymentStatusLabel)
}

func TestDeleteByReference(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	require.NoError(t, f.bookings.DeleteByReference(booking.ReferenceCode))
	assert.ErrorIs(t, f.bookings.DeleteByReference(booking.ReferenceCode), gorm.ErrRecordNotFound)
}

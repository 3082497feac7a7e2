package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
)

func testResolver() *Resolver {
	return NewResolver(DefaultThresholds, DefaultVATRate)
}

func sampleBooking(now time.Time) (models.Booking, []models.AdditionalCharge, []models.Payment) {
	checkout := now.Add(30 * time.Minute)
	room := &models.Room{RoomNumber: "204", RoomType: models.RoomType{ID: 2, TypeName: "Deluxe"}}

	b := models.Booking{
		ID:                       7,
		ReferenceCode:            "BK-2025-0007",
		Status:                   models.BookingStatusOccupied,
		ExpectedCheckOutDateTime: &checkout,
		BaseAmount:               2000,
		DiscountAmount:           200,
		RateAmountPerHour:        200,
		Room:                     room,
	}
	charges := []models.AdditionalCharge{
		{ServiceID: 1, ServiceName: "Minibar", PerItem: true, Quantity: 2, UnitPrice: 100},
	}
	payments := []models.Payment{
		{Amount: 1000, Status: models.PaymentRecordCompleted},
		{Amount: 500, Status: models.PaymentRecordPending},
	}
	return b, charges, payments
}

func TestResolve(t *testing.T) {
	r := testResolver()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	b, charges, payments := sampleBooking(now)

	view := r.Resolve(b, charges, payments, now)

	// base 2000 − discount 200 = 1800 taxable, 7% VAT = 126,
	// charges 200, total 2126.
	assert.Equal(t, 126.0, view.TaxAmount)
	assert.Equal(t, 200.0, view.ServiceChargesTotal)
	assert.Equal(t, 2126.0, view.TotalAmount)
	assert.Equal(t, 1000.0, view.TotalPaid)
	assert.Equal(t, 1126.0, view.Balance)
	assert.Equal(t, models.PaymentStatusPartial, view.PaymentStatus)
	assert.Equal(t, "Partially Paid", view.PaymentStatusLabel)
	assert.Equal(t, "Occupied", view.BookingStatusLabel)

	require.NotNil(t, view.TimeStatus)
	assert.Equal(t, TimeStatusWarning, view.TimeStatus.Type)
	assert.Equal(t, view.TimeStatus.SeverityRank, view.SortPriority)

	assert.Equal(t, "204", view.RoomNumber)
	assert.Equal(t, "Deluxe", view.RoomTypeName)
}

func TestResolveIsIdempotent(t *testing.T) {
	r := testResolver()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	b, charges, payments := sampleBooking(now)

	first := r.Resolve(b, charges, payments, now)
	second := r.Resolve(b, charges, payments, now)
	assert.Equal(t, first, second)
}

func TestResolveWithoutCheckout(t *testing.T) {
	r := testResolver()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	view := r.Resolve(models.Booking{ID: 1, Status: models.BookingStatusPending}, nil, nil, now)
	assert.Nil(t, view.TimeStatus)
	assert.Equal(t, 0, view.SortPriority)
}

func TestTotalsNeverTaxNegativeSubtotal(t *testing.T) {
	r := testResolver()
	totals := r.Totals(100, 300, nil)
	assert.Equal(t, 0.0, totals.TaxAmount)
	assert.Equal(t, -200.0, totals.TotalAmount)
}

func TestSummarizeUsesPerBookingClassification(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	mk := func(offset time.Duration, total float64, paid float64) models.Booking {
		checkout := now.Add(offset)
		b := models.Booking{
			Status:                   models.BookingStatusOccupied,
			ExpectedCheckOutDateTime: &checkout,
			BaseAmount:               total,
		}
		if paid > 0 {
			b.Payments = []models.Payment{{Amount: paid, Status: models.PaymentRecordCompleted}}
		}
		return b
	}

	zeroVAT := NewResolver(DefaultThresholds, 0)
	bookings := []models.Booking{
		mk(-2*time.Hour, 1000, 0),       // critical, pending
		mk(-30*time.Minute, 1000, 1000), // overdue, paid
		mk(10*time.Minute, 1000, 400),    // urgent, partial
		mk(3*time.Hour, 1000, 0),        // ok, pending
		{Status: models.BookingStatusPending, BaseAmount: 500}, // no schedule
	}

	sum := zeroVAT.Summarize(bookings, now)
	assert.Equal(t, 5, sum.TotalBookings)
	assert.Equal(t, 1, sum.ByTimeStatus[TimeStatusCritical])
	assert.Equal(t, 1, sum.ByTimeStatus[TimeStatusOverdue])
	assert.Equal(t, 1, sum.ByTimeStatus[TimeStatusUrgent])
	assert.Equal(t, 1, sum.ByTimeStatus[TimeStatusOK])
	assert.Equal(t, 0, sum.ByTimeStatus[TimeStatusWarning])

	assert.Equal(t, 3, sum.ByPaymentStatus[models.PaymentStatusPending])
	assert.Equal(t, 1, sum.ByPaymentStatus[models.PaymentStatusPaid])
	assert.Equal(t, 1, sum.ByPaymentStatus[models.PaymentStatusPartial])

	// 1000 + 600 + 1000 + 500 outstanding.
	assert.Equal(t, 3100.0, sum.OutstandingBalance)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := testResolver().Summarize(nil, time.Now())
	assert.Equal(t, 0, sum.TotalBookings)
	assert.Empty(t, sum.ByTimeStatus)
	assert.Equal(t, 0.0, sum.OutstandingBalance)
}

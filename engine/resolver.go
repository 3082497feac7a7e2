package engine

import (
	"time"

	"frontdesk-backend/models"
)

// DefaultVATRate is the fixed VAT applied to the taxable subtotal
// (base − discount). Override via the VAT_RATE env at wiring time.
const DefaultVATRate = 0.07

// Resolver is the single entry point every screen uses to derive a
// booking's display values, so no two views can disagree on urgency or
// balance rules. Thresholds and the VAT rate are injected once.
type Resolver struct {
	Thresholds Thresholds
	VATRate    float64
}

func NewResolver(thresholds Thresholds, vatRate float64) *Resolver {
	if vatRate < 0 {
		vatRate = 0
	}
	return &Resolver{Thresholds: thresholds, VATRate: vatRate}
}

// Totals recomputes the derived money fields from canonical inputs.
type Totals struct {
	TaxAmount      float64 `json:"taxAmount"`
	ServiceCharges float64 `json:"serviceChargesAmount"`
	TotalAmount    float64 `json:"totalAmount"`
}

func (r *Resolver) Totals(baseAmount, discountAmount float64, charges []models.AdditionalCharge) Totals {
	chargesTotal := ChargesTotal(charges)
	taxable := baseAmount - discountAmount
	if taxable < 0 {
		taxable = 0
	}
	tax := round2(taxable * r.VATRate)
	return Totals{
		TaxAmount:      tax,
		ServiceCharges: chargesTotal,
		TotalAmount:    round2(baseAmount - discountAmount + tax + chargesTotal),
	}
}

// BookingView is the consolidated read model a screen renders: badges,
// money position and urgency in one value. Identical inputs and an
// identical now always produce an identical view.
type BookingView struct {
	BookingID     uint   `json:"bookingId"`
	ReferenceCode string `json:"referenceCode"`
	RoomNumber    string `json:"roomNumber"`
	RoomTypeName  string `json:"roomTypeName"`

	BookingStatus      string `json:"bookingStatus"`
	BookingStatusLabel string `json:"bookingStatusLabel"`
	PaymentStatus      string `json:"paymentStatus"`
	PaymentStatusLabel string `json:"paymentStatusLabel"`

	TimeStatus   *TimeStatus `json:"timeStatus,omitempty"`
	SortPriority int         `json:"sortPriority"`

	BaseAmount          float64 `json:"baseAmount"`
	DiscountAmount      float64 `json:"discountAmount"`
	TaxAmount           float64 `json:"taxAmount"`
	ServiceChargesTotal float64 `json:"serviceChargesTotal"`
	TotalAmount         float64 `json:"totalAmount"`
	TotalPaid           float64 `json:"totalPaid"`
	Balance             float64 `json:"balance"`
	BalanceDue          float64 `json:"balanceDue"`
}

// Resolve combines classification, charge aggregation and the payment
// ledger for one booking snapshot.
func (r *Resolver) Resolve(b models.Booking, charges []models.AdditionalCharge, payments []models.Payment, now time.Time) BookingView {
	totals := r.Totals(b.BaseAmount, b.DiscountAmount, charges)
	ledger := ComputeTotals(totals.TotalAmount, payments)
	ts := r.Thresholds.Classify(now, b.ExpectedCheckOutDateTime)

	view := BookingView{
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,

		BookingStatus:      b.Status,
		BookingStatusLabel: bookingStatusLabel(b.Status),
		PaymentStatus:      ledger.PaymentStatus,
		PaymentStatusLabel: paymentStatusLabel(ledger.PaymentStatus),

		TimeStatus: ts,

		BaseAmount:          b.BaseAmount,
		DiscountAmount:      b.DiscountAmount,
		TaxAmount:           totals.TaxAmount,
		ServiceChargesTotal: totals.ServiceCharges,
		TotalAmount:         totals.TotalAmount,
		TotalPaid:           ledger.TotalPaid,
		Balance:             ledger.Balance,
		BalanceDue:          ledger.BalanceDue,
	}
	if ts != nil {
		view.SortPriority = ts.SeverityRank
	}
	if b.Room != nil {
		view.RoomNumber = b.Room.RoomNumber
		if b.Room.RoomType.ID != 0 {
			view.RoomTypeName = b.Room.RoomType.TypeName
		}
	}
	return view
}

// Summary is the dashboard fold over a set of bookings. It reuses the
// exact per-booking classification; there is no second threshold table.
type Summary struct {
	TotalBookings      int                    `json:"totalBookings"`
	ByTimeStatus       map[TimeStatusType]int `json:"byTimeStatus"`
	ByPaymentStatus    map[string]int         `json:"byPaymentStatus"`
	OutstandingBalance float64                `json:"outstandingBalance"`
	PendingPayments    float64                `json:"pendingPayments"`
}

// Summarize folds bookings (with their preloaded charges and payments)
// into dashboard counters, each booking processed independently.
func (r *Resolver) Summarize(bookings []models.Booking, now time.Time) Summary {
	sum := Summary{
		ByTimeStatus:    make(map[TimeStatusType]int),
		ByPaymentStatus: make(map[string]int),
	}
	for _, b := range bookings {
		view := r.Resolve(b, b.Charges, b.Payments, now)
		sum.TotalBookings++
		if view.TimeStatus != nil {
			sum.ByTimeStatus[view.TimeStatus.Type]++
		}
		sum.ByPaymentStatus[view.PaymentStatus]++
		sum.OutstandingBalance += view.BalanceDue
		sum.PendingPayments += PendingAmount(b.Payments)
	}
	sum.OutstandingBalance = round2(sum.OutstandingBalance)
	sum.PendingPayments = round2(sum.PendingPayments)
	return sum
}

func bookingStatusLabel(status string) string {
	switch status {
	case models.BookingStatusPending:
		return "Pending"
	case models.BookingStatusConfirmed:
		return "Confirmed"
	case models.BookingStatusOccupied:
		return "Occupied"
	case models.BookingStatusExtended:
		return "Extended"
	case models.BookingStatusCancelled:
		return "Cancelled"
	case models.BookingStatusCheckedOut:
		return "Checked-Out"
	default:
		return status
	}
}

func paymentStatusLabel(status string) string {
	switch status {
	case models.PaymentStatusPaid:
		return "Paid"
	case models.PaymentStatusPartial:
		return "Partially Paid"
	case models.PaymentStatusPending:
		return "Pending"
	default:
		return status
	}
}

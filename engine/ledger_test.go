package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"frontdesk-backend/models"
)

func TestComputeTotalsPartial(t *testing.T) {
	got := ComputeTotals(1000, []models.Payment{
		{Amount: 400, Status: models.PaymentRecordCompleted},
	})
	assert.Equal(t, 400.0, got.TotalPaid)
	assert.Equal(t, 600.0, got.Balance)
	assert.Equal(t, 600.0, got.BalanceDue)
	assert.Equal(t, models.PaymentStatusPartial, got.PaymentStatus)
}

func TestComputeTotalsIgnoresPendingPayments(t *testing.T) {
	got := ComputeTotals(1000, []models.Payment{
		{Amount: 400, Status: models.PaymentRecordCompleted},
		{Amount: 600, Status: models.PaymentRecordPending},
	})
	assert.Equal(t, 400.0, got.TotalPaid)
	assert.Equal(t, models.PaymentStatusPartial, got.PaymentStatus)
}

func TestComputeTotalsPaid(t *testing.T) {
	got := ComputeTotals(1000, []models.Payment{
		{Amount: 600, Status: models.PaymentRecordCompleted},
		{Amount: 400, Status: models.PaymentRecordCompleted},
	})
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, 0.0, got.Balance)
}

func TestComputeTotalsOverpaid(t *testing.T) {
	got := ComputeTotals(1000, []models.Payment{
		{Amount: 1200, Status: models.PaymentRecordCompleted},
	})
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, -200.0, got.Balance, "balance is reported as-is on overpayment")
	assert.Equal(t, 0.0, got.BalanceDue, "display balance never goes negative")
}

func TestComputeTotalsNoPayments(t *testing.T) {
	got := ComputeTotals(1000, nil)
	assert.Equal(t, 0.0, got.TotalPaid)
	assert.Equal(t, 1000.0, got.Balance)
	assert.Equal(t, models.PaymentStatusPending, got.PaymentStatus)
}

func TestComputeTotalsZeroTotal(t *testing.T) {
	got := ComputeTotals(0, nil)
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
}

func TestPendingAmount(t *testing.T) {
	payments := []models.Payment{
		{Amount: 400, Status: models.PaymentRecordCompleted},
		{Amount: 150, Status: models.PaymentRecordPending},
		{Amount: 50, Status: models.PaymentRecordPending},
	}
	assert.Equal(t, 200.0, PendingAmount(payments))
	assert.Equal(t, 0.0, PendingAmount(nil))
}

func TestValidatePayment(t *testing.T) {
	assert.NoError(t, ValidatePayment(100))
	assert.ErrorIs(t, ValidatePayment(0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidatePayment(-5), ErrInvalidAmount)
}

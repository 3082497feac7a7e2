package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/engine"
	"frontdesk-backend/logger"
	"frontdesk-backend/services"
)

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"payment_method"`
	Status string  `json:"payment_status"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// RecordPayment ingests a payment against a booking. Amounts must be
// positive; the rule is enforced here at the boundary, not when totals
// are aggregated later.
func (ctrl *PaymentController) RecordPayment(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	var payload RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "amount is required", "details": err.Error()}})
		return
	}

	payment, err := ctrl.PaymentSvc.RecordPayment(bookingID, payload.Amount, payload.Method, payload.Status)
	if err != nil {
		logger.Log.WithError(err).Warn("RecordPayment failed")
		switch {
		case errors.Is(err, engine.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidAmount", "message": "payment amount must be positive"}})
		case strings.Contains(err.Error(), "validation"):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": err.Error()}})
		default:
			respondLifecycleError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": payment})
}

// CompletePayment settles a pending payment record.
func (ctrl *PaymentController) CompletePayment(c *gin.Context) {
	parsed, err := strconv.ParseUint(c.Param("paymentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPaymentId", "message": "paymentId must be numeric"}})
		return
	}

	payment, err := ctrl.PaymentSvc.CompletePayment(uint(parsed))
	if err != nil {
		logger.Log.WithError(err).Warn("CompletePayment failed")
		if strings.Contains(err.Error(), "payment_not_found") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.paymentNotFound", "message": "payment not found"}})
			return
		}
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": payment})
}

// ListPayments returns the payments plus the derived ledger position.
func (ctrl *PaymentController) ListPayments(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	payments, ledger, err := ctrl.PaymentSvc.ListByBooking(bookingID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"payments":      payments,
			"totalPaid":     ledger.TotalPaid,
			"balance":       ledger.Balance,
			"balanceDue":    ledger.BalanceDue,
			"paymentStatus": ledger.PaymentStatus,
			"pendingAmount": engine.PendingAmount(payments),
		},
	})
}

// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"frontdesk-backend/engine"
	"frontdesk-backend/logger"
	"frontdesk-backend/services"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	CustomerID       uint    `json:"customer_id" binding:"required"`
	RoomID           uint    `json:"room_id" binding:"required"`
	CheckIn          string  `json:"check_in" binding:"required"`
	ExpectedCheckOut string  `json:"expected_check_out" binding:"required"`
	DiscountAmount   float64 `json:"discount_amount"`
	Adults           int     `json:"adults"`
	Children         int     `json:"children"`
}

type ExtendBookingRequest struct {
	Hours int `json:"hours" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// ---------------------------
// Helpers
// ---------------------------

func parseBookingID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.missingBookingId", "message": "bookingId is required"},
		})
		return 0, false
	}
	parsed, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidBookingId", "message": "bookingId must be numeric"},
		})
		return 0, false
	}
	return uint(parsed), true
}

// parseNowParam lets screens pass an explicit ?at= instant so derived
// urgency is reproducible; defaults to the server clock.
func parseNowParam(c *gin.Context) time.Time {
	if at := strings.TrimSpace(c.Query("at")); at != "" {
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1452
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "foreign key") || strings.Contains(lower, "1452")
}

func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case strings.Contains(err.Error(), "booking_not_found"):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
	case strings.Contains(err.Error(), "already_checked_in"):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.alreadyCheckedIn", "message": "booking is already checked in"}})
	case strings.Contains(err.Error(), "not_checked_in"):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.notCheckedIn", "message": "booking has not been checked in"}})
	case strings.Contains(err.Error(), "booking_checked_out"):
		c.JSON(http.StatusGone, gin.H{"error": gin.H{"code": "error.bookingCheckedOut", "message": "booking is already checked out"}})
	case strings.Contains(err.Error(), "invalid_status"):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.invalidStatus", "message": "operation not allowed in the booking's current status"}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": "internal error", "details": err.Error()}})
	}
}

// ---------------------------
// CRUD: Bookings
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		logger.Log.WithError(err).Error("GetBookings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchBookings", "message": "could not fetch bookings"}})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid request body", "details": err.Error()}})
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		CustomerID:       payload.CustomerID,
		RoomID:           payload.RoomID,
		CheckIn:          payload.CheckIn,
		ExpectedCheckOut: payload.ExpectedCheckOut,
		DiscountAmount:   payload.DiscountAmount,
		Adults:           payload.Adults,
		Children:         payload.Children,
	})
	if err != nil {
		logger.Log.WithError(err).Warn("CreateBooking failed")
		if strings.Contains(err.Error(), "validation") {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": err.Error()}})
			return
		}
		if isForeignKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.foreignKey", "message": err.Error()}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.createBooking", "message": "failed to create booking", "details": err.Error()}})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "data": booking})
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetBookingDetails(bookingID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookingView returns the consolidated read model (urgency, balances,
// labels) derived at the request instant.
func (ctrl *BookingController) GetBookingView(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	view, err := ctrl.BookingSvc.ResolveView(bookingID, parseNowParam(c))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": view})
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("reference"))
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.missingReference", "message": "booking reference is required"}})
		return
	}

	if err := ctrl.BookingSvc.DeleteByReference(ref); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
			return
		}
		logger.Log.WithError(err).Error("DeleteBooking failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.deleteBookingFailed", "message": "could not delete booking"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "booking deleted"})
}

// ---------------------------
// Lifecycle operations
// ---------------------------

func (ctrl *BookingController) CheckIn(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.CheckIn(bookingID); err != nil {
		logger.Log.WithError(err).Warn("CheckIn failed")
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "guest checked in"})
}

func (ctrl *BookingController) CheckOut(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.CheckOut(bookingID); err != nil {
		logger.Log.WithError(err).Warn("CheckOut failed")
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "guest checked out"})
}

func (ctrl *BookingController) Cancel(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Cancel(bookingID); err != nil {
		logger.Log.WithError(err).Warn("Cancel failed")
		respondLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "booking cancelled"})
}

// ---------------------------
// Stay extension
// ---------------------------

func respondExtensionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidExtensionHours):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidExtensionHours", "message": "extension hours must be between 1 and 24"}})
	case errors.Is(err, engine.ErrNoCheckOutTime):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{"code": "error.noCheckOutTime", "message": "booking has no expected check-out time"}})
	case errors.Is(err, engine.ErrNegativeAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.negativeAmount", "message": "monetary amount must not be negative"}})
	default:
		respondLifecycleError(c, err)
	}
}

func (ctrl *BookingController) PreviewExtension(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	var payload ExtendBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "hours is required", "details": err.Error()}})
		return
	}

	result, err := ctrl.BookingSvc.PreviewExtension(bookingID, payload.Hours)
	if err != nil {
		respondExtensionError(c, err)
		return
	}

	resp := gin.H{"status": "success", "data": result}
	if result.RateMissing {
		resp["warning"] = "booking has no hourly rate; extension charge is 0"
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *BookingController) CommitExtension(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	var payload ExtendBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "hours is required", "details": err.Error()}})
		return
	}

	booking, result, err := ctrl.BookingSvc.CommitExtension(bookingID, payload.Hours)
	if err != nil {
		logger.Log.WithError(err).Warn("CommitExtension failed")
		respondExtensionError(c, err)
		return
	}

	resp := gin.H{"status": "success", "data": gin.H{"booking": booking, "extension": result}}
	if result.RateMissing {
		resp["warning"] = "booking has no hourly rate; extension charge is 0"
	}
	c.JSON(http.StatusOK, resp)
}

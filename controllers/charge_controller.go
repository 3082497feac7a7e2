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

type AddChargeRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type ChargeController struct {
	ChargeSvc *services.ChargeService
}

func NewChargeController(svc *services.ChargeService) *ChargeController {
	return &ChargeController{ChargeSvc: svc}
}

func parseServiceID(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("serviceId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidServiceId", "message": "serviceId must be numeric"}})
		return 0, false
	}
	return uint(parsed), true
}

func respondChargeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidQuantity", "message": "quantity must be at least 1"}})
	case errors.Is(err, engine.ErrNegativeAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.negativeAmount", "message": "monetary amount must not be negative"}})
	case errors.Is(err, engine.ErrServiceNotSelected):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.serviceNotSelected", "message": "service is not attached to this booking"}})
	case strings.Contains(err.Error(), "service_not_found"):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.serviceNotFound", "message": "catalog service not found"}})
	case strings.Contains(err.Error(), "service_inactive"):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.serviceInactive", "message": "catalog service is inactive"}})
	default:
		respondLifecycleError(c, err)
	}
}

// AddCharge attaches a catalog service to a booking (replacing the entry
// if the service was already selected) and returns the refreshed totals.
func (ctrl *ChargeController) AddCharge(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	var payload AddChargeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "service_id is required", "details": err.Error()}})
		return
	}

	booking, err := ctrl.ChargeSvc.AddCharge(bookingID, payload.ServiceID, payload.Quantity)
	if err != nil {
		logger.Log.WithError(err).Warn("AddCharge failed")
		respondChargeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *ChargeController) SetQuantity(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	serviceID, ok := parseServiceID(c)
	if !ok {
		return
	}
	var payload SetQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "quantity is required", "details": err.Error()}})
		return
	}

	booking, err := ctrl.ChargeSvc.SetQuantity(bookingID, serviceID, payload.Quantity)
	if err != nil {
		logger.Log.WithError(err).Warn("SetQuantity failed")
		respondChargeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *ChargeController) RemoveCharge(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}
	serviceID, ok := parseServiceID(c)
	if !ok {
		return
	}

	booking, err := ctrl.ChargeSvc.RemoveCharge(bookingID, serviceID)
	if err != nil {
		logger.Log.WithError(err).Warn("RemoveCharge failed")
		respondChargeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": booking})
}

func (ctrl *ChargeController) ListCharges(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	charges, err := ctrl.ChargeSvc.ListCharges(bookingID)
	if err != nil {
		logger.Log.WithError(err).Error("ListCharges failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchCharges", "message": "could not fetch charges"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": charges, "total": engine.ChargesTotal(charges)})
}

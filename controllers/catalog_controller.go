package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"frontdesk-backend/engine"
	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

type CatalogController struct {
	CatalogSvc *services.CatalogService
}

func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{CatalogSvc: svc}
}

func (ctrl *CatalogController) GetServices(c *gin.Context) {
	activeOnly := c.Query("all") == ""
	list, err := ctrl.CatalogSvc.GetAll(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchServices", "message": "could not fetch service catalog"}})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *CatalogController) CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid request body", "details": err.Error()}})
		return
	}
	svc.ServiceName = strings.TrimSpace(svc.ServiceName)
	if svc.ServiceName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": "serviceName is required"}})
		return
	}

	created, err := ctrl.CatalogSvc.Create(svc)
	if err != nil {
		if errors.Is(err, engine.ErrNegativeAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.negativeAmount", "message": "basePrice must not be negative"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.createService", "message": "failed to create service", "details": err.Error()}})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": created})
}

func (ctrl *CatalogController) UpdateService(c *gin.Context) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidServiceId", "message": "service id must be numeric"}})
		return
	}

	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid request body", "details": err.Error()}})
		return
	}
	svc.ID = uint(parsed)

	updated, err := ctrl.CatalogSvc.Update(svc)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNegativeAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.negativeAmount", "message": "basePrice must not be negative"}})
		case strings.Contains(err.Error(), "service_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.serviceNotFound", "message": "service not found"}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.updateService", "message": "failed to update service", "details": err.Error()}})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": updated})
}

func (ctrl *CatalogController) DeleteService(c *gin.Context) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidServiceId", "message": "service id must be numeric"}})
		return
	}

	if err := ctrl.CatalogSvc.Delete(uint(parsed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.serviceNotFound", "message": "service not found"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.deleteService", "message": "failed to delete service"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "service deleted"})
}

package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

type CustomerController struct {
	CustomerSvc *services.CustomerService
}

func NewCustomerController(svc *services.CustomerService) *CustomerController {
	return &CustomerController{CustomerSvc: svc}
}

func (ctrl *CustomerController) GetCustomers(c *gin.Context) {
	list, err := ctrl.CustomerSvc.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.fetchCustomers", "message": "could not fetch customers"}})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *CustomerController) GetCustomerByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidCustomerId", "message": "customer id must be numeric"}})
		return
	}
	customer, err := ctrl.CustomerSvc.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.customerNotFound", "message": "customer not found"}})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidPayload", "message": "invalid request body", "details": err.Error()}})
		return
	}
	customer.FullName = strings.TrimSpace(customer.FullName)
	if customer.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": "fullName is required"}})
		return
	}

	created, err := ctrl.CustomerSvc.Create(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.createCustomer", "message": "failed to create customer"}})
		return
	}
	c.JSON(http.StatusCreated, created)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/logger"
	"frontdesk-backend/services"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

// GetOverview returns the front-desk dashboard. Screens poll it (e.g.
// every 60s); urgency is derived at the request instant, optionally
// pinned with ?at= for reproducible rendering.
func (ctrl *DashboardController) GetOverview(c *gin.Context) {
	overview, err := ctrl.DashboardSvc.GetOverview(parseNowParam(c))
	if err != nil {
		logger.Log.WithError(err).Error("GetOverview failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.dashboard", "message": "could not build dashboard overview"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": overview})
}

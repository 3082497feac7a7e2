package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontdesk-backend/controllers"
	"frontdesk-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the API surface.
func SetupRouter(
	bc *controllers.BookingController,
	chc *controllers.ChargeController,
	pc *controllers.PaymentController,
	cac *controllers.CatalogController,
	ctc *controllers.CustomerController,
	dc *controllers.DashboardController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Bookings and their lifecycle transitions
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.GET("/:id/view", bc.GetBookingView)
			bookings.DELETE("/by-reference/:reference", bc.DeleteBooking)

			bookings.POST("/:id/checkin", bc.CheckIn)
			bookings.POST("/:id/checkout", bc.CheckOut)
			bookings.POST("/:id/cancel", bc.Cancel)

			bookings.POST("/:id/extend/preview", bc.PreviewExtension)
			bookings.POST("/:id/extend", bc.CommitExtension)

			// Additional charges hang off the booking
			bookings.GET("/:id/charges", chc.ListCharges)
			bookings.POST("/:id/charges", chc.AddCharge)
			bookings.PUT("/:id/charges/:serviceId", chc.SetQuantity)
			bookings.PATCH("/:id/charges/:serviceId", chc.SetQuantity)
			bookings.DELETE("/:id/charges/:serviceId", chc.RemoveCharge)

			// Payment ledger
			bookings.GET("/:id/payments", pc.ListPayments)
			bookings.POST("/:id/payments", pc.RecordPayment)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/:paymentId/complete", pc.CompletePayment)
		}

		// Service catalog
		servicesRoutes := api.Group("/services")
		{
			servicesRoutes.GET("", cac.GetServices)
			servicesRoutes.POST("", cac.CreateService)
			servicesRoutes.PUT("/:id", cac.UpdateService)
			servicesRoutes.DELETE("/:id", cac.DeleteService)
		}

		// Customers
		customersRoutes := api.Group("/customers")
		{
			customersRoutes.GET("", ctc.GetCustomers)
			customersRoutes.GET("/:id", ctc.GetCustomerByID)
			customersRoutes.POST("", ctc.CreateCustomer)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}
		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", controllers.GetRoomTypes)
			roomTypes.POST("", controllers.CreateRoomType)
			roomTypes.DELETE("/:id", controllers.DeleteRoomType)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", controllers.GetHotelSettings)
			settings.PUT("/hotel", controllers.UpdateHotelSettings)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/summary", dc.GetOverview)
		}
	}

	return r
}

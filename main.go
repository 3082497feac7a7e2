package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"frontdesk-backend/config"
	"frontdesk-backend/controllers"
	"frontdesk-backend/engine"
	"frontdesk-backend/logger"
	"frontdesk-backend/routes"
	"frontdesk-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		logger.Log.Warn(".env not found or couldn't load it; continuing with environment variables")
	}
	logger.Init()

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		logger.Log.WithError(err).Fatal("database connect failed")
	}
	db := config.DB
	if db == nil {
		logger.Log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	logger.Log.Info("database connection established and migrations applied")

	// One resolver instance; every service derives money and urgency
	// through it so the numbers agree across endpoints.
	resolver := engine.NewResolver(engine.DefaultThresholds, config.VATRate())

	// Initialize services
	bookingService := services.NewBookingService(db, resolver)
	chargeService := services.NewChargeService(db, resolver)
	paymentService := services.NewPaymentService(db, resolver)
	catalogService := services.NewCatalogService(db)
	customerService := services.NewCustomerService(db)
	dashboardService := services.NewDashboardService(db, resolver)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService)
	chargeController := controllers.NewChargeController(chargeService)
	paymentController := controllers.NewPaymentController(paymentService)
	catalogController := controllers.NewCatalogController(catalogService)
	customerController := controllers.NewCustomerController(customerService)
	dashboardController := controllers.NewDashboardController(dashboardService)

	// Build router
	router := routes.SetupRouter(
		bookingController,
		chargeController,
		paymentController,
		catalogController,
		customerController,
		dashboardController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Log.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("ListenAndServe failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Log.Warn("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Fatal("server forced to shutdown")
	}

	logger.Log.Info("server stopped gracefully")
}

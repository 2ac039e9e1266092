package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/el7alafawy/blood-safe/internal/adapters/http/middleware"
	"github.com/el7alafawy/blood-safe/internal/adapters/http/routes"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/models"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/config"
	"github.com/el7alafawy/blood-safe/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/el7alafawy/blood-safe/docs" // Swagger docs
)

// @title BloodSafe API
// @version 1.0
// @description Blood donation coordination API: donors, hospitals, requests, donations, inventory, campaigns and appointments.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@bloodsafe.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed bootstrap admin
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Start cron service: request/stock expiry sweeps, campaign status
	// flips and day-before appointment reminders
	notificationService := services.NewNotificationService(
		repositories.NewNotificationRepository(db),
		repositories.NewUserRepository(db),
	)
	cronService := services.NewCronService(
		repositories.NewBloodRequestRepository(db),
		repositories.NewInventoryRepository(db),
		repositories.NewCampaignRepository(db),
		repositories.NewAppointmentRepository(db),
		notificationService,
	)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BloodSafe API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

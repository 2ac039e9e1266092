package routes

import (
	"github.com/el7alafawy/blood-safe/internal/adapters/http/handlers"
	"github.com/el7alafawy/blood-safe/internal/adapters/http/middleware"
	"github.com/el7alafawy/blood-safe/internal/adapters/persistence/repositories"
	"github.com/el7alafawy/blood-safe/internal/config"
	"github.com/el7alafawy/blood-safe/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	requestRepo := repositories.NewBloodRequestRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	campaignRepo := repositories.NewCampaignRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	requestService := services.NewBloodRequestService(requestRepo, userRepo, notificationService)
	donationService := services.NewDonationService(donationRepo, requestRepo, userRepo, notificationService)
	inventoryService := services.NewInventoryService(inventoryRepo, userRepo)
	campaignService := services.NewCampaignService(campaignRepo, notificationService)
	appointmentService := services.NewAppointmentService(appointmentRepo, notificationService)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	hospitalHandler := handlers.NewHospitalHandler(userService, dashboardService)
	requestHandler := handlers.NewBloodRequestHandler(requestService)
	donationHandler := handlers.NewDonationHandler(donationService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Hospital routes
	hospitalRoutes := apiV1.Group("/hospitals")
	hospitalRoutes.Use(middleware.AuthMiddleware(cfg))
	setupHospitalRoutes(hospitalRoutes, hospitalHandler)

	// Blood request routes
	requestRoutes := apiV1.Group("/blood-requests")
	requestRoutes.Use(middleware.AuthMiddleware(cfg))
	setupRequestRoutes(requestRoutes, requestHandler)

	// Donation routes
	donationRoutes := apiV1.Group("/donations")
	donationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDonationRoutes(donationRoutes, donationHandler)

	// Inventory routes (hospital-facing)
	inventoryRoutes := apiV1.Group("/blood-inventory")
	inventoryRoutes.Use(middleware.AuthMiddleware(cfg))
	setupInventoryRoutes(inventoryRoutes, inventoryHandler)

	// Campaign routes
	campaignRoutes := apiV1.Group("/campaigns")
	campaignRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCampaignRoutes(campaignRoutes, campaignHandler)

	// Appointment routes
	appointmentRoutes := apiV1.Group("/appointments")
	appointmentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAppointmentRoutes(appointmentRoutes, appointmentHandler)

	// Notification routes
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	// Dashboard routes (Admin only)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/admin", middleware.AdminOnly(), dashboardHandler.Admin)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (5 req/min/IP against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user and donor routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Own profile
	router.Get("/me", handler.Me)
	router.Put("/me", handler.UpdateMe)
	router.Patch("/me/password", handler.ChangePassword)
	router.Patch("/me/availability", handler.SetAvailability)

	// Donor discovery
	router.Get("/donors", handler.ListDonors)
	router.Get("/donors/nearby", handler.NearbyDonors)
	router.Get("/donors/stats", handler.DonorStats)

	// Admin-only management
	router.Get("/", middleware.AdminOnly(), handler.List)
	router.Get("/:id", middleware.AdminOnly(), handler.Get)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupHospitalRoutes configures hospital directory routes
func setupHospitalRoutes(router fiber.Router, handler *handlers.HospitalHandler) {
	router.Get("/", handler.List)
	router.Get("/nearby", handler.Nearby)
	router.Get("/:id", handler.Get)
	router.Put("/:id", middleware.HospitalOrAdmin(), handler.Update)
	router.Get("/:id/stats", middleware.HospitalOrAdmin(), handler.Stats)
}

// setupRequestRoutes configures blood request routes
func setupRequestRoutes(router fiber.Router, handler *handlers.BloodRequestHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/matching", handler.Matching)
	router.Get("/stats", handler.Stats)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Patch("/:id/cancel", handler.Cancel)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupDonationRoutes configures donation routes
func setupDonationRoutes(router fiber.Router, handler *handlers.DonationHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/nearby", handler.Nearby)
	router.Get("/stats", handler.Stats)
	router.Get("/donor/:userId", handler.ByDonor)
	router.Get("/recipient/:userId", handler.ByRecipient)
	router.Get("/:id", handler.Get)
	router.Patch("/:id/status", handler.UpdateStatus)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupInventoryRoutes configures blood inventory routes
func setupInventoryRoutes(router fiber.Router, handler *handlers.InventoryHandler) {
	router.Post("/", middleware.HospitalOrAdmin(), handler.Create)
	router.Get("/", handler.List)
	router.Get("/stats", middleware.HospitalOrAdmin(), handler.Stats)
	router.Get("/blood-type/:bloodType", handler.ByBloodType)
	router.Put("/:id", middleware.HospitalOrAdmin(), handler.Update)
	router.Patch("/:id/reserve", middleware.HospitalOrAdmin(), handler.Reserve)
	router.Patch("/:id/use", middleware.HospitalOrAdmin(), handler.Use)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupCampaignRoutes configures campaign routes
func setupCampaignRoutes(router fiber.Router, handler *handlers.CampaignHandler) {
	router.Post("/", middleware.HospitalOrAdmin(), handler.Create)
	router.Get("/", handler.List)
	router.Get("/active", handler.Active)
	router.Get("/:id", handler.Get)
	router.Put("/:id", middleware.HospitalOrAdmin(), handler.Update)
	router.Post("/:id/register", handler.Register)
	router.Patch("/:id/participants/:userId", middleware.HospitalOrAdmin(), handler.UpdateParticipant)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupAppointmentRoutes configures appointment routes
func setupAppointmentRoutes(router fiber.Router, handler *handlers.AppointmentHandler) {
	router.Post("/", middleware.HospitalOrAdmin(), handler.Create)
	router.Get("/", handler.List)
	router.Get("/available-slots/:date", handler.AvailableSlots)
	router.Get("/:id", handler.Get)
	router.Post("/:id/book", handler.Book)
	router.Patch("/:id/status", middleware.HospitalOrAdmin(), handler.UpdateStatus)
	router.Patch("/:id/cancel", handler.Cancel)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupNotificationRoutes configures notification routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Get("/", handler.List)
	router.Get("/unread/count", handler.UnreadCount)
	router.Patch("/read-all", handler.MarkAllRead)
	router.Patch("/:id/read", handler.MarkRead)
	router.Delete("/", handler.DeleteAll)
	router.Delete("/:id", handler.Delete)
}

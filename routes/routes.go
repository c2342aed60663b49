package routes

import (
	"FamCare/cache"
	"FamCare/config"
	"FamCare/controllers"
	"FamCare/handlers"
	"FamCare/middlewares"
	"FamCare/repositories"
	"FamCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, cache)
	familyRepo := repositories.NewFamilyRepository(db, cache)
	memberRepo := repositories.NewMemberRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)
	recordRepo := repositories.NewRecordRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	familyService := services.NewFamilyService(familyRepo, userRepo, doctorRepo)
	memberService := services.NewMemberService(memberRepo, familyRepo, doctorRepo)
	doctorService := services.NewDoctorService(doctorRepo, familyRepo, userRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, familyRepo, memberRepo, doctorRepo)
	recordService := services.NewRecordService(recordRepo, memberRepo, familyRepo, doctorRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	messageService := services.NewMessageService(messageRepo, familyRepo, notificationRepo)
	paymentService := services.NewPaymentService(paymentRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	memberHandler := handlers.NewMemberHandler(memberService)
	doctorHandler := handlers.NewDoctorHandler(doctorService, userService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	recordHandler := handlers.NewRecordHandler(recordService)
	messageHandler := handlers.NewMessageHandler(messageService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Register routes
	controllers.SetupAPIRoutes(
		router,
		familyHandler,
		memberHandler,
		doctorHandler,
		appointmentHandler,
		recordHandler,
		messageHandler,
		paymentHandler,
		notificationHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XyvinTech/councelling-backend/config"
	"github.com/XyvinTech/councelling-backend/delivery"
	"github.com/XyvinTech/councelling-backend/middleware"
	"github.com/XyvinTech/councelling-backend/repository"
	"github.com/XyvinTech/councelling-backend/service"
	"github.com/XyvinTech/councelling-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using system environment variables")
	}

	// ✅ Register custom validators
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	// Boot DB
	db, err := config.BootDB()
	if err != nil {
		log.Fatal("❌ Failed to connect to database: ", err)
	}

	// Redis config
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Fatal("❌ Failed to fetch Redis address from env")
	}
	redisClient := config.InitRedisDB(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)

	// JWT secret validation
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET not found in .env")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("❌ JWT_SECRET must be at least 32 characters for security. Generate one with: openssl rand -base64 32")
	}
	jwtManager := utils.NewJWTManager(jwtSecret, time.Hour)

	// Init repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	counsellorRepo := repository.NewCounsellorRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Init services
	notifier := service.NewNotifier(notificationRepo, utils.SMTPMailer{})
	workflowService := service.NewWorkflowService(sessionRepo, caseRepo, userRepo, notifier)
	authService := service.NewAuthService(userRepo, jwtSecret)
	studentService := service.NewStudentService(userRepo, sessionRepo, caseRepo, availabilityRepo, notificationRepo)
	counsellorService := service.NewCounsellorService(userRepo, sessionRepo, caseRepo, availabilityRepo, notificationRepo, counsellorRepo)
	adminService := service.NewAdminService(userRepo, adminRepo, sessionRepo, caseRepo)

	// Init Gin
	app := gin.Default()
	config.InitMiddleware(app)

	loginLimiter := middleware.RateLimit(redisClient, "login", 10, 15*time.Minute)
	bookingLimiter := middleware.RateLimit(redisClient, "request_session", 10, time.Minute)

	delivery.NewAuthHandler(app, authService, loginLimiter)
	delivery.NewStudentHandler(app, studentService, workflowService, jwtManager, bookingLimiter)
	delivery.NewCounsellorHandler(app, counsellorService, workflowService, jwtManager)
	delivery.NewAdminHandler(app, adminService, jwtManager)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	srvAddr := ":" + port

	srv := &http.Server{
		Addr:           srvAddr,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("🚀 Server running at http://localhost%s", srvAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"university-clinic-api/config"
	deliveryHttp "university-clinic-api/internal/delivery/http"
	"university-clinic-api/internal/delivery/http/handler"
	"university-clinic-api/internal/delivery/http/middleware"
	"university-clinic-api/internal/infrastructure/cache"
	"university-clinic-api/internal/infrastructure/database"
	"university-clinic-api/internal/repository"
	"university-clinic-api/internal/service"
	"university-clinic-api/internal/usecase"
	"university-clinic-api/pkg/jwt"
	"university-clinic-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	SlotGuard   *service.SlotGuardService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB, cfg.Clinic.MigrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, slotGuard := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.SlotGuard = slotGuard

	// Rebuild slot claims from booked appointments so Redis and the
	// database agree after a restart or cache flush.
	syncCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := slotGuard.SyncOnStartup(syncCtx); err != nil {
		logrus.Warnf("Failed to sync slot claims on startup: %+v", err)
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SlotGuardService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	holidayRepo := repository.NewAcademicHolidayRepository()
	scheduleRepo := repository.NewStaffScheduleRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize domain services
	auditService := service.NewAuditService(log, auditLogRepo)
	priorityGate := service.NewPriorityGateService(log, appointmentRepo)
	attendance := service.NewAttendanceService(log, appointmentRepo)
	availabilityService := service.NewAvailabilityService(log, appointmentRepo, scheduleRepo, holidayRepo, doctorProfileRepo)
	slotGuard := service.NewSlotGuardService(db, redisClient, log)
	notifier := service.NewEventNotifier(redisClient, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, auditService, jwtService, redisClient)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientProfileRepo, doctorProfileRepo, availabilityService, slotGuard, auditService, notifier)
	triageUsecase := usecase.NewTriageUsecase(db, log, appointmentRepo, doctorProfileRepo, priorityGate, availabilityService, slotGuard, auditService, notifier)
	doctorUsecase := usecase.NewDoctorAppointmentUsecase(db, log, appointmentRepo, medicalRecordRepo, prescriptionRepo, priorityGate, attendance, auditService, notifier)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, availabilityService)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, medicalRecordRepo, patientProfileRepo, attendance, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, patientProfileRepo, attendance, auditService)
	holidayUsecase := usecase.NewHolidayUsecase(db, log, holidayRepo, auditService)
	scheduleUsecase := usecase.NewStaffScheduleUsecase(db, log, scheduleRepo, doctorProfileRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	triageHandler := handler.NewTriageHandler(triageUsecase, customValidator)
	doctorHandler := handler.NewDoctorAppointmentHandler(doctorUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	holidayHandler := handler.NewHolidayHandler(holidayUsecase, customValidator)
	scheduleHandler := handler.NewStaffScheduleHandler(scheduleUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		triageHandler,
		doctorHandler,
		availabilityHandler,
		medicalRecordHandler,
		prescriptionHandler,
		holidayHandler,
		scheduleHandler,
		auditLogHandler,
		userHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, slotGuard
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.SlotGuard != nil {
		app.SlotGuard.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

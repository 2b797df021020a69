package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Grizzway/SalonSync-sub000/config"
	"github.com/Grizzway/SalonSync-sub000/controllers"
	"github.com/Grizzway/SalonSync-sub000/middleware"
	"github.com/Grizzway/SalonSync-sub000/repositories"
	"github.com/Grizzway/SalonSync-sub000/routes"
	"github.com/Grizzway/SalonSync-sub000/services"
	"github.com/Grizzway/SalonSync-sub000/utils"
	"github.com/Grizzway/SalonSync-sub000/websocket"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.InitLogger("salonsync", cfg.Env)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to database
	client, err := config.ConnectDB(startCtx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	db := client.Database(cfg.Mongo.Database)
	config.SetupCollections(startCtx, db)

	// Sessions live in Redis when it is reachable
	var sessionStore services.SessionStore
	if redisClient := config.ConnectRedis(startCtx, cfg.Redis); redisClient != nil {
		sessionStore = services.NewRedisSessionStore(redisClient)
	} else {
		log.Warn().Msg("Redis unavailable, sessions are kept in memory")
		sessionStore = services.NewMemorySessionStore()
	}
	sessions := services.NewSessionManager(sessionStore, cfg.Session.Secret, cfg.Session.TTL)

	// Initialize repositories
	stores := services.Stores{
		Customers:     repositories.NewCustomerRepository(db),
		Employees:     repositories.NewEmployeeRepository(db),
		Businesses:    repositories.NewBusinessRepository(db),
		Appointments:  repositories.NewAppointmentRepository(db),
		Payments:      repositories.NewPaymentRepository(db),
		Reviews:       repositories.NewReviewRepository(db),
		Surveys:       repositories.NewSurveyRepository(db),
		Schedules:     repositories.NewScheduleRepository(db),
		Notifications: repositories.NewNotificationRepository(db),
	}
	ids := repositories.NewCounterRepository(db)
	tx := repositories.NewMongoTransactor(client, cfg.Mongo.Transactions)

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	dispatcher := services.NewDispatcher(cfg.Notify, notificationSenders(cfg, stores, wsHub)...)
	dispatcher.Start()

	var uploader services.ImageUploader
	if cfg.Cloudinary.CloudName != "" {
		cld, err := services.NewCloudinaryUploader(cfg.Cloudinary)
		if err != nil {
			log.Error().Err(err).Msg("Cloudinary disabled")
		} else {
			uploader = cld
		}
	}

	reminders := services.NewReminderService(stores, dispatcher, cfg.ReminderSchedule)
	if err := reminders.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reminder scheduler")
	}

	// Initialize controllers
	bookings := services.NewBookingService(stores, ids, tx, dispatcher, cfg.Booking)
	media := services.NewMediaService(stores, uploader)
	ctrl := routes.Controllers{
		Auth:         controllers.NewAuthController(services.NewAuthService(stores, ids), sessions, !config.IsDevelopment(cfg.Env)),
		Appointments: controllers.NewAppointmentController(bookings),
		Payments:     controllers.NewPaymentController(bookings),
		Reviews:      controllers.NewReviewController(services.NewReviewService(stores, dispatcher)),
		Employees:    controllers.NewEmployeeController(services.NewEmployeeService(stores, ids)),
		Businesses:   controllers.NewBusinessController(services.NewBusinessService(stores)),
		Customers:    controllers.NewCustomerController(services.NewSurveyService(stores), media),
		WebSocket:    controllers.NewWebSocketController(wsHub, sessions),
	}

	e := newServer(cfg, ctrl, sessions)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	<-reminders.Stop().Done()
	dispatcher.Stop()
	wsHub.Stop()
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB disconnect failed")
	}
}

// notificationSenders enables a channel only when its provider is configured. In-app is always on.
func notificationSenders(cfg *config.Config, stores services.Stores, hub *websocket.Hub) []services.Sender {
	senders := []services.Sender{services.NewInAppSender(stores.Notifications, hub)}
	if cfg.SMTP.Host != "" {
		senders = append(senders, services.NewEmailSender(cfg.SMTP))
	} else {
		log.Warn().Msg("SMTP_HOST not set, email notifications disabled")
	}
	if cfg.Twilio.AccountSID != "" {
		senders = append(senders, services.NewSMSSender(cfg.Twilio))
	}
	return senders
}

func newServer(cfg *config.Config, ctrl routes.Controllers, sessions middleware.SessionValidator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()
	e.HTTPErrorHandler = middleware.HTTPErrorHandler

	rateLimiter := middleware.NewRateLimiter()

	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.CORS(cfg.CORSOrigins))
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: cfg.CORSOrigins,
		AllowInlineJS:  config.IsDevelopment(cfg.Env),
	}))

	e.Match([]string{http.MethodGet, http.MethodHead}, "/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "SalonSync backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	routes.SetupRoutes(e, ctrl, sessions)
	return e
}

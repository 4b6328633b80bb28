package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/arkan-dev/custodia-api/internal/config"
	"github.com/arkan-dev/custodia-api/internal/database"
	"github.com/arkan-dev/custodia-api/internal/handler"
	"github.com/arkan-dev/custodia-api/internal/middleware"
	"github.com/arkan-dev/custodia-api/internal/models"
	"github.com/arkan-dev/custodia-api/internal/repository"
	"github.com/arkan-dev/custodia-api/internal/router"
	"github.com/arkan-dev/custodia-api/internal/service"
	"github.com/arkan-dev/custodia-api/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Schema migration completes before any handler is wired, so no request
	// can observe a partially initialised store.
	if err := db.AutoMigrate(&models.User{}, &models.Customer{}, &models.CustomerVersion{}, &models.ActivityLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	customerRepo := repository.NewCustomerRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	userRepo := repository.NewUserRepository(db)

	if err := seedAdminUser(userRepo, cfg, logger); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)

	activityService := service.NewActivityService(activityRepo, logger)
	versionArchive := service.NewVersionArchive(versionRepo, logger)
	customerService := service.NewCustomerService(customerRepo, versionArchive, activityService, logger)
	authService := service.NewAuthService(userRepo, sessions, activityService, validate, cfg.JWTSecret, cfg.SessionTTL, logger)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionCookieName, cfg.SessionTTL, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:     authHandler,
		CustomerHandler: customerHandler,
		ActivityHandler: activityHandler,
		AuthMiddleware: middleware.Authenticated(middleware.AuthConfig{
			Sessions:   sessions,
			JWTSecret:  cfg.JWTSecret,
			CookieName: cfg.SessionCookieName,
		}),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// seedAdminUser creates the initial operator account when the users table is
// empty and credentials were configured.
func seedAdminUser(users repository.UserRepository, cfg config.Config, logger zerolog.Logger) error {
	total, err := users.Count(context.Background())
	if err != nil {
		return err
	}

	if total > 0 || cfg.SeedAdminPassword == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), cfg.BcryptCost)
	if err != nil {
		return err
	}

	user := models.User{Username: cfg.SeedAdminUsername, PasswordHash: string(hash)}
	if err := users.Create(context.Background(), &user); err != nil {
		return err
	}

	logger.Info().Str("username", user.Username).Msg("seeded admin user")
	return nil
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"swiftdrop/cmd"
	httpin "swiftdrop/internal/adapters/in/http"
	"swiftdrop/internal/adapters/out/postgres/deliveryrepo"
	"swiftdrop/internal/adapters/out/postgres/userrepo"
	"swiftdrop/internal/jobs"
)

func main() {
	// Missing .env is fine in containerized deployments where the
	// environment is set directly.
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfig()

	gormDB, err := openDatabase(config)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	issuer := httpin.NewTokenIssuer(config.JWTSecret, cmd.JWTTTL(config))
	server := httpin.NewServer(
		root.CreateCreateDeliveryCommandHandler(),
		root.CreateChangeStatusCommandHandler(),
		root.CreateAssignDriverCommandHandler(),
		root.CreateAttachProofCommandHandler(),
		root.CreateDeleteDeliveryCommandHandler(),
		root.CreateRegisterUserCommandHandler(),
		root.CreateToggleAvailabilityCommandHandler(),
		root.CreateChangePasswordCommandHandler(),
		root.CreateListDeliveriesQueryHandler(),
		root.CreateGetDeliveryQueryHandler(),
		root.CreateTrackDeliveryQueryHandler(),
		root.CreateGetDeliveryStatsQueryHandler(),
		root.CreateLoginQueryHandler(),
		root.CreateGetAccountQueryHandler(),
		issuer,
	)

	jobManager := jobs.NewJobManager(root.CreateGetOverdueDeliveriesQueryHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if err := e.Start(address); err != nil {
			logger.Info("http server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

func getConfig() cmd.Config {
	return cmd.Config{
		HTTPPort:                envOr("HTTP_PORT", "8080"),
		DBHost:                  envOr("DB_HOST", "localhost"),
		DBPort:                  envOr("DB_PORT", "5432"),
		DBUser:                  envOr("DB_USER", "postgres"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  envOr("DB_NAME", "swiftdrop"),
		DBSslMode:               envOr("DB_SSLMODE", "disable"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		JWTTTLHours:             os.Getenv("JWT_TTL_HOURS"),
		TwilioAccountSID:        os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:         os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:        os.Getenv("TWILIO_FROM_NUMBER"),
		KafkaHost:               os.Getenv("KAFKA_HOST"),
		KafkaStatusChangedTopic: envOr("KAFKA_STATUS_CHANGED_TOPIC", "delivery.status-changed"),
		RedisAddr:               envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)

	// TranslateError turns driver unique violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &userrepo.UserDTO{}); err != nil {
		return nil, err
	}

	return gormDB, nil
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-placement-backend/config"
	_ "go-placement-backend/docs" // Important for Swagger
	v1 "go-placement-backend/internal/delivery/http/v1"
	"go-placement-backend/internal/domain"
	"go-placement-backend/internal/notification"
	"go-placement-backend/internal/repository/postgres"
	"go-placement-backend/internal/usecase"
	"go-placement-backend/pkg/auth"
	"go-placement-backend/pkg/database"
	"go-placement-backend/pkg/email"
	"go-placement-backend/pkg/logger"
	"go-placement-backend/pkg/redis"
	"go-placement-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           Placement Backend API
// @version         1.0
// @description     Student placement portal with interview conflict detection, using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting placement backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; middleware falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	placementRepo := postgres.NewPlacementRepository(dbPool)

	// 6. Setup Email Notifications
	sender := email.NewSender(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	if !sender.IsConfigured() {
		logger.Log.Warn("SMTP not fully configured - interview notifications will be skipped")
	}
	notifier := notification.NewEmailNotifier(sender, userRepo)

	// 7. Custom request validators (venue format, future timestamps)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 8. Business rules from config, checked against their own constraints
	rules := domain.BusinessRules{
		StartHour:          cfg.SchedulingStartHour,
		EndHour:            cfg.SchedulingEndHour,
		AllowWeekends:      cfg.SchedulingAllowWeekends,
		MinDurationMinutes: cfg.SchedulingMinDurationMinutes,
		MaxDurationMinutes: cfg.SchedulingMaxDurationMinutes,
	}
	if err := validator.New().Struct(rules); err != nil {
		logger.Log.Error("Invalid scheduling rules configuration, using defaults", "error", err)
		rules = domain.DefaultBusinessRules()
	}

	// 9. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	schedulingUC := usecase.NewSchedulingUsecase(
		interviewRepo, notifier, rules, usecase.HeuristicScorer{},
		cfg.SuggestionHorizonDays, cfg.SuggestionMaxResults, cfg.SuggestionProbeCap,
	)
	placementUC := usecase.NewPlacementUsecase(placementRepo)

	// 10. Setup Auth Provider (JWKS, optional: only RS256 tokens need it)
	var jwksProvider *auth.Provider
	if cfg.JWKSUrl != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSUrl)
	}

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		SchedulingUC: schedulingUC,
		PlacementUC:  placementUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

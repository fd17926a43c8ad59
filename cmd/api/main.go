package main

import (
	"alvant-portal/config"
	_ "alvant-portal/docs" // Important for Swagger
	v1 "alvant-portal/internal/delivery/http/v1"
	"alvant-portal/internal/domain"
	"alvant-portal/internal/repository/memory"
	"alvant-portal/internal/repository/postgres"
	redisrepo "alvant-portal/internal/repository/redis"
	"alvant-portal/internal/usecase"
	"alvant-portal/pkg/auth"
	"alvant-portal/pkg/database"
	"alvant-portal/pkg/email"
	"alvant-portal/pkg/logger"
	redispkg "alvant-portal/pkg/redis"
	"alvant-portal/pkg/security"
	"alvant-portal/pkg/validation"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Alvant Portal API
// @version         1.0
// @description     Registrations, contact messages and the OTP-protected admin dashboard.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// registered first so it runs after every other deferred cleanup
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting alvant portal", "port", cfg.Port, "env", cfg.Environment)

	secLogger := security.NewSecurityLogger(security.LoggerConfig{
		ServiceName: "alvant-portal",
		Environment: cfg.Environment,
		FilePath:    cfg.SecurityLogFile,
	})
	defer func() { _ = secLogger.Sync() }()

	ctx := context.Background()

	// 3. Setup Database (optional: record endpoints answer 503 without it)
	var dbPool *pgxpool.Pool
	if cfg.DBUrl != "" {
		dbPool, err = database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			dbPool = nil
		} else if err := database.EnsureSchema(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to prepare schema", "error", err)
		}
	}
	if dbPool != nil {
		defer dbPool.Close()
		secLogger.WithPersist(security.NewSecurityEventRepository(dbPool).CreatePersistFunc())
	}

	// 4. Setup Redis (optional: OTP state falls back to memory)
	var redisClient *goredis.Client
	redisClient, err = redispkg.Connect(ctx, redispkg.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		if !errors.Is(err, redispkg.ErrNotConfigured) {
			logger.Log.Error("Failed to connect to redis", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// 5. Setup Repositories
	registrantRepo := postgres.NewRegistrantRepository(dbPool)
	contactRepo := postgres.NewContactRepository(dbPool)

	var otpStore domain.OTPStore
	var denylist domain.TokenDenylist
	if redisClient != nil {
		otpStore = redisrepo.NewOTPStore(redisClient)
		denylist = redisrepo.NewTokenDenylist(redisClient)
	} else {
		otpStore = memory.NewOTPStore()
		denylist = memory.NewTokenDenylist()
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - OTP codes are written to the log", "transport", emailService.TransportName())
	}

	// 7. Setup Token Issuer
	issuer, err := auth.NewIssuer(cfg.JWTSecret)
	if err != nil {
		logger.Log.Error("Failed to create token issuer", "error", err)
		os.Exit(1)
	}

	// 8. Setup UseCases
	validate := validation.New(domain.ValidationOptions())
	registrationUC := usecase.NewRegistrationUsecase(registrantRepo, validate)
	contactUC := usecase.NewContactUsecase(contactRepo, emailService, validate)
	adminAuthUC := usecase.NewAdminAuthUsecase(usecase.AdminAuthConfig{
		AdminEmails:      cfg.AdminEmails,
		OTPTTL:           cfg.OTPTTL,
		MaxAttempts:      cfg.OTPMaxAttempts,
		TokenTTL:         cfg.TokenTTL,
		RememberTokenTTL: cfg.RememberTokenTTL,
	}, otpStore, denylist, emailService, issuer, secLogger, validate)
	healthUC := usecase.NewHealthUsecase(healthProbes(dbPool, redisClient), emailService.TransportName())

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		RegistrationUC: registrationUC,
		ContactUC:      contactUC,
		AdminAuthUC:    adminAuthUC,
		HealthUC:       healthUC,
		FrontendURL:    cfg.FrontendURL,
		IsProduction:   cfg.IsProduction(),
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(srv, quit); err != nil {
		logger.Log.Error("Server stopped", "error", err)
		exitCode = 1
	}

	logger.Log.Info("Server exiting")
}

// healthProbes reports "not_configured" for a dependency by leaving it nil.
func healthProbes(pool *pgxpool.Pool, client *goredis.Client) map[string]usecase.Probe {
	probes := map[string]usecase.Probe{"postgres": nil, "redis": nil}
	if pool != nil {
		probes["postgres"] = pool.Ping
	}
	if client != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redispkg.HealthCheck(ctx, client)
		}
	}
	return probes
}

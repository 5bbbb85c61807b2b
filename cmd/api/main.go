package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pennywise/pennywise-backend/db"
	"github.com/pennywise/pennywise-backend/internal/config"
	"github.com/pennywise/pennywise-backend/internal/handler"
	"github.com/pennywise/pennywise-backend/internal/llm"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/repository/postgres"
	"github.com/pennywise/pennywise-backend/internal/repository/storage"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/pennywise/pennywise-backend/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)

	// Receipt storage is optional; without it uploads answer 503
	var receiptStore storage.ReceiptStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3ReceiptStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
		}
		receiptStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Receipt storage enabled")
	} else {
		log.Warn().Msg("Receipt storage not configured, receipts disabled")
	}

	var completer llm.Completer
	if cfg.Assistant.Enabled() {
		completer = llm.NewOpenAIClient(cfg.Assistant)
		log.Info().Str("model", cfg.Assistant.Model).Msg("Assistant enabled")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, assistant disabled")
	}

	// Initialize services
	receiptService := service.NewReceiptService(receiptStore, entryRepo)
	categoryService := service.NewCategoryService(categoryRepo, entryRepo, receiptService)
	authService := service.NewAuthService(userRepo, categoryService)
	profileService := service.NewProfileService(userRepo, entryRepo, receiptService)
	entryValidator := service.NewEntryValidator(entryRepo, categoryRepo, cfg.Timezone)
	entryService := service.NewEntryService(entryRepo, entryValidator, receiptService)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo)
	reportService := service.NewReportService(entryRepo, budgetRepo, cfg.Timezone)
	exportService := service.NewExportService(entryService)
	assistantService := service.NewAssistantService(reportService, entryService, completer, cfg.Timezone)

	// Live updates
	hub := websocket.NewHub()
	entryService.SetEventPublisher(hub)
	categoryService.SetEventPublisher(hub)
	budgetService.SetEventPublisher(hub)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	assistantLimiter := middleware.NewRateLimiterWithConfig(cfg.Assistant.RatePerMinute, cfg.Assistant.Burst)
	defer assistantLimiter.Stop()

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Profile:   handler.NewProfileHandler(profileService),
		Category:  handler.NewCategoryHandler(categoryService),
		Entry:     handler.NewEntryHandler(entryService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Budget:    handler.NewBudgetHandler(budgetService),
		Report:    handler.NewReportHandler(reportService),
		Export:    handler.NewExportHandler(exportService),
		Assistant: handler.NewAssistantHandler(assistantService),
		WebSocket: handler.NewWebSocketHandler(hub, authMiddleware, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, echo.HeaderRetryAfter, "X-RateLimit-Limit"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	// Receipts are capped at 5MB; leave room for the multipart envelope
	e.Use(echomiddleware.BodyLimit("6M"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	handler.RegisterRoutes(e, authMiddleware, assistantLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware logs one line per request
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

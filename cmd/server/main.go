package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prbeegala/pbconferenceapp/internal/config"
	"github.com/prbeegala/pbconferenceapp/internal/database"
	"github.com/prbeegala/pbconferenceapp/internal/handler"
	"github.com/prbeegala/pbconferenceapp/internal/middleware"
	"github.com/prbeegala/pbconferenceapp/internal/repository"
	"github.com/prbeegala/pbconferenceapp/internal/service"
	"github.com/prbeegala/pbconferenceapp/migrations"
	"github.com/prbeegala/pbconferenceapp/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Apply schema (idempotent)
	if err := db.Execute(ctx, migrations.Schema, nil); err != nil {
		slog.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// In development, generate a signing key pair on first run
	if cfg.IsDevelopment() {
		if _, err := os.Stat(cfg.JWT.PrivateKeyPath); os.IsNotExist(err) {
			slog.Info("generating JWT key pair", slog.String("path", cfg.JWT.PrivateKeyPath))
			if err := os.MkdirAll("./keys", 0700); err != nil {
				slog.Error("failed to create keys directory", slog.String("error", err.Error()))
				os.Exit(1)
			}
			if err := jwt.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
				slog.Error("failed to generate JWT keys", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	sessionService := service.NewSessionService(sessionRepo, registrationRepo)
	registrationService := service.NewRegistrationService(registrationRepo)
	submissionService := service.NewSubmissionService(submissionRepo, sessionRepo)
	adminService := service.NewAdminService(sessionRepo, registrationRepo, submissionRepo)
	suggestionService := service.NewSuggestionService(service.SuggestionConfig{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, logger)

	var seederService *service.SeederService
	if cfg.Seed.Enabled {
		seederService = service.NewSeederService(userRepo, sessionRepo, logger)
		if _, err := seederService.Seed(ctx); err != nil {
			slog.Error("failed to seed demo data", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler(sessionService, registrationService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	adminHandler := handler.NewAdminHandler(adminService, seederService)
	suggestHandler := handler.NewSuggestHandler(suggestionService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	authMiddleware := middleware.Auth(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	adminOnly := func(h http.Handler) http.Handler {
		return authMiddleware(middleware.Admin()(h))
	}

	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Session catalogue (browsable without an account)
	mux.Handle("GET /v1/sessions", optionalAuth(http.HandlerFunc(sessionHandler.ListSessions)))
	mux.Handle("GET /v1/sessions/{sessionId}", optionalAuth(http.HandlerFunc(sessionHandler.GetSession)))

	// Session management (admin)
	mux.Handle("POST /v1/sessions", adminOnly(http.HandlerFunc(sessionHandler.CreateSession)))
	mux.Handle("PATCH /v1/sessions/{sessionId}", adminOnly(http.HandlerFunc(sessionHandler.UpdateSession)))
	mux.Handle("DELETE /v1/sessions/{sessionId}", adminOnly(http.HandlerFunc(sessionHandler.DeleteSession)))

	// Registration endpoints
	mux.Handle("POST /v1/sessions/{sessionId}/registrations", authMiddleware(http.HandlerFunc(sessionHandler.Register)))
	mux.Handle("DELETE /v1/sessions/{sessionId}/registrations", authMiddleware(http.HandlerFunc(sessionHandler.Unregister)))
	mux.Handle("GET /v1/sessions/{sessionId}/registrations", adminOnly(http.HandlerFunc(sessionHandler.ListSessionRegistrations)))
	mux.Handle("GET /v1/me/registrations", authMiddleware(http.HandlerFunc(registrationHandler.MyRegistrations)))
	mux.Handle("POST /v1/registrations/{registrationId}/attendance", authMiddleware(http.HandlerFunc(registrationHandler.ConfirmAttendance)))

	// Submission workflow endpoints
	mux.Handle("POST /v1/submissions", authMiddleware(http.HandlerFunc(submissionHandler.Submit)))
	mux.Handle("GET /v1/submissions/{submissionId}", authMiddleware(http.HandlerFunc(submissionHandler.GetSubmission)))
	mux.Handle("GET /v1/me/submissions", authMiddleware(http.HandlerFunc(submissionHandler.MySubmissions)))
	mux.Handle("GET /v1/admin/submissions", adminOnly(http.HandlerFunc(submissionHandler.ListSubmissions)))
	mux.Handle("POST /v1/admin/submissions/{submissionId}/approve", adminOnly(http.HandlerFunc(submissionHandler.Approve)))
	mux.Handle("POST /v1/admin/submissions/{submissionId}/reject", adminOnly(http.HandlerFunc(submissionHandler.Reject)))
	mux.Handle("POST /v1/admin/submissions/{submissionId}/request-revision", adminOnly(http.HandlerFunc(submissionHandler.RequestRevision)))

	// Suggestion endpoints
	mux.Handle("POST /v1/suggestions", authMiddleware(http.HandlerFunc(suggestHandler.Suggest)))
	mux.Handle("GET /v1/suggestions/status", authMiddleware(http.HandlerFunc(suggestHandler.Status)))

	// Admin endpoints
	mux.Handle("GET /v1/admin/dashboard", adminOnly(http.HandlerFunc(adminHandler.Dashboard)))
	mux.Handle("POST /v1/admin/seed", adminOnly(http.HandlerFunc(adminHandler.Seed)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

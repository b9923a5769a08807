package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/passguard/passguard-go/internal/config"
	"github.com/passguard/passguard-go/internal/crypto"
	"github.com/passguard/passguard-go/internal/handler"
	"github.com/passguard/passguard-go/internal/middleware"
	"github.com/passguard/passguard-go/internal/observability"
	"github.com/passguard/passguard-go/internal/repository"
	"github.com/passguard/passguard-go/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(cfg.NewLogger())
	if envErr != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	// Cancelled on shutdown; stops the rate limiter janitors.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	reg := observability.NewRegistry()
	metrics := observability.NewMetrics(reg)

	gen := crypto.NewGenerator(crypto.NewSecureSource())
	genService := service.NewGeneratorService(gen, cfg.DefaultLength, cfg.MaxLength, metrics)
	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled {
		r.Handle("/metrics", observability.Handler(reg))
	}

	// Initialize DB-backed routes if database is available.
	var historyService *service.HistoryService
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err == nil {
		if err = repository.Migrate(ctx, db); err != nil {
			db.Close()
		}
	}
	if err != nil {
		slog.Warn("database unavailable, accounts, preferences and history disabled", "error", err)
	} else {
		defer db.Close()

		hasher := crypto.NewHasher(crypto.DefaultHashParams())
		authService := service.NewAuthService(repository.NewUserRepository(db), hasher, tokens)
		authHandler := handler.NewAuthHandler(authService)

		prefsService := service.NewPreferencesService(repository.NewPreferencesRepository(db), cfg.DefaultLength, cfg.MaxLength)
		prefsHandler := handler.NewPreferencesHandler(prefsService)

		historyService = service.NewHistoryService(repository.NewHistoryRepository(db), cfg.HistoryLimit)
		historyHandler := handler.NewHistoryHandler(historyService)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(ctx, cfg.AuthRPS, cfg.AuthBurst))
			r.Post("/api/v1/auth/register", authHandler.HandleRegister)
			r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(tokens))
			r.Get("/api/v1/auth/me", authHandler.HandleMe)

			r.Get("/api/v1/preferences", prefsHandler.HandleGet)
			r.Put("/api/v1/preferences", prefsHandler.HandlePut)

			r.Get("/api/v1/history", historyHandler.HandleList)
			r.Delete("/api/v1/history", historyHandler.HandleClear)
		})
	}

	genHandler := handler.NewGeneratorHandler(genService, historyService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.GenerateRPS, cfg.GenerateBurst))
		r.Use(middleware.OptionalJWTAuth(tokens))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/assess", genHandler.HandleAssess)
		r.Post("/api/v1/shuffle", genHandler.HandleShuffle)
		r.Post("/api/v1/export", genHandler.HandleExport)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "metrics", cfg.MetricsEnabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

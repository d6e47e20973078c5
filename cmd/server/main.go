package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/ideapool/backend/internal/config"
	"github.com/ideapool/backend/internal/database"
	"github.com/ideapool/backend/internal/handlers"
	"github.com/ideapool/backend/internal/middleware"
	"github.com/ideapool/backend/internal/routes"
	"github.com/ideapool/backend/internal/sessions"
	"github.com/ideapool/backend/internal/store"
	"github.com/ideapool/backend/internal/tokens"
	"github.com/ideapool/backend/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if cfg.IsProduction() && cfg.JWTSecret == "your-secret-key-change-in-production" {
		sugar.Fatal("JWT_SECRET must be set in production")
	}

	sugar.Info("connecting to PostgreSQL")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		sugar.Fatalw("failed to connect to PostgreSQL", "err", err)
	}
	defer db.Close()

	sugar.Info("connecting to Redis")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		sugar.Fatalw("failed to connect to Redis", "err", err)
	}
	defer rdb.Close()

	issuer := tokens.NewIssuer(cfg.JWTSecret)
	h, err := handlers.New(
		store.NewUserStore(db),
		store.NewIdeaStore(db),
		sessions.NewCache(rdb),
		issuer,
		sugar,
	)
	if err != nil {
		sugar.Fatalw("failed to build handlers", "err", err)
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.AccessTokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CacheControl)
	r.Use(middleware.Runtime)
	if cfg.IsProduction() {
		r.Use(middleware.GlobalRateLimit)
		r.Use(middleware.LoginRateLimit)
		sugar.Info("production rate limiting enabled")
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, h, middleware.Auth(issuer))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("idea pool backend listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server failed", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	sugar.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorw("shutdown did not drain cleanly", "err", err)
	}
}

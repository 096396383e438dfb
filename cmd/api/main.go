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
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/daybook/daybook-go/internal/config"
	"github.com/daybook/daybook-go/internal/handler"
	"github.com/daybook/daybook-go/internal/middleware"
	"github.com/daybook/daybook-go/internal/repository"
	"github.com/daybook/daybook-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := repository.Migrate(migrateCtx, db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	tagRepo := repository.NewTagRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	journalService := service.NewJournalService(journalRepo)
	tagService := service.NewTagService(tagRepo, journalRepo)

	authHandler := handler.NewAuthHandler(authService)
	journalHandler := handler.NewJournalHandler(journalService, tagService)
	tagHandler := handler.NewTagHandler(tagService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Public browsing routes.
	r.Get("/", journalHandler.HandleList)
	r.Get("/entries", journalHandler.HandleList)
	r.Get("/entries/{slug}", journalHandler.HandleGet)
	r.Get("/tags", tagHandler.HandleList)
	r.Get("/tags/{slug}", tagHandler.HandleJournals)

	// Auth routes, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Get("/register", authHandler.HandleRegisterForm)
		r.Post("/register", authHandler.HandleRegister)
		r.Get("/login", authHandler.HandleLoginForm)
		r.Post("/login", authHandler.HandleLogin)
	})

	// Routes requiring an authenticated session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/logout", authHandler.HandleLogout)

		r.Get("/entry", journalHandler.HandleNewForm)
		r.Post("/entry", journalHandler.HandleCreate)
		r.Get("/entries/edit/{slug}", journalHandler.HandleEditForm)
		r.Post("/entries/edit/{slug}", journalHandler.HandleUpdate)
		r.Get("/entries/delete/{slug}", journalHandler.HandleDeleteForm)
		r.Post("/entries/delete/{slug}", journalHandler.HandleDelete)

		r.Get("/addtag", tagHandler.HandleNewForm)
		r.Post("/addtag", tagHandler.HandleCreate)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

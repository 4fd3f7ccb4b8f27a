package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	admin_db "majlis-rsvp/internal/admin/db"
	"majlis-rsvp/internal/admin/admin_api"
	admin "majlis-rsvp/internal/admin/service"
	"majlis-rsvp/internal/auth"
	"majlis-rsvp/internal/config"
	"majlis-rsvp/internal/database"
	"majlis-rsvp/internal/database/migrations"
	"majlis-rsvp/internal/events"
	guest_db "majlis-rsvp/internal/guests/db"
	"majlis-rsvp/internal/guests/guest_api"
	guests "majlis-rsvp/internal/guests/service"
	"majlis-rsvp/internal/logger"
	program_db "majlis-rsvp/internal/program/db"
	"majlis-rsvp/internal/program/program_api"
	settings_db "majlis-rsvp/internal/settings/db"
	"majlis-rsvp/internal/settings/settings_api"
	"majlis-rsvp/internal/uploads"
	"majlis-rsvp/internal/uploads/uploads_api"
)

// stores groups the per-domain store implementations picked at startup.
type stores struct {
	guests   guests.GuestDBLayer
	settings settings_api.SettingsStore
	program  program_api.ProgramStore
	admins   admin.AdminDBLayer
}

func connectPostgres(dsn string, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", dsn)
		if err == nil {
			err = sqldb.Ping()
		}
		if err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func openStores(cfg *config.Config, log *logger.Logger) (stores, *bun.DB) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("DATABASE", "Using in-memory storage; data is lost on restart")
		return stores{
			guests:   guest_db.NewMemory(),
			settings: settings_db.NewMemory(),
			program:  program_db.NewMemory(),
			admins:   admin_db.NewMemory(),
		}, nil
	}

	bunDB := connectPostgres(cfg.Storage.PostgresDSN, log)

	if cfg.Storage.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
			MigrationsDir: cfg.Storage.MigrationsDir,
			AutoMigrate:   true,
		})
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
		}
		log.Info("DATABASE", "Schema migrations applied")
	}

	return stores{
		guests:   &guest_db.DB{Bun: bunDB},
		settings: &settings_db.DB{Bun: bunDB},
		program:  &program_db.DB{Bun: bunDB},
		admins:   &admin_db.DB{Bun: bunDB},
	}, bunDB
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting RSVP service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	st, bunDB := openStores(cfg, log)
	if bunDB != nil {
		defer bunDB.Close()
	}

	guestService := guests.NewGuestService(st.guests)
	adminService := admin.NewAdminService(st.admins, log)

	if cfg.Storage.SeedData {
		if err := database.SeedGuests(guestService, log); err != nil {
			log.Error("SEED", fmt.Sprintf("Seeding failed: %v", err))
		}
	}

	if err := adminService.EnsureDefaultAdmin(); err != nil {
		log.Fatal("AUTH", fmt.Sprintf("Failed to ensure default admin: %v", err))
	}

	// Session cache: Redis when configured, in-process otherwise.
	var sessions auth.SessionCache = auth.NewMemorySessionCache()
	if cfg.Redis.Enabled {
		redisClient, err := auth.InitializeSessionCache(cfg.Redis.Addr, log)
		if err != nil {
			log.Fatal("AUTH", fmt.Sprintf("Redis session cache unavailable: %v", err))
		}
		defer redisClient.Close()
		sessions = auth.NewRedisSessionCache(redisClient)
	}

	// RSVP event stream for downstream consumers, off by default.
	if cfg.Kafka.Enabled {
		if err := events.EnsureTopicExists(cfg.Kafka.Brokers, cfg.Kafka.Topic); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		guestService.Events = producer
		log.Info("KAFKA", fmt.Sprintf("RSVP events publishing to %s", cfg.Kafka.Topic))
	}

	uploadService := uploads.NewService(
		&http.Client{Timeout: 10 * time.Second},
		log,
		cfg.Uploads.SignerURL,
		cfg.Uploads.PrivateDir,
	)

	guestHandler := &guest_api.Handler{GuestService: guestService, Logger: log}
	settingsHandler := &settings_api.Handler{Store: st.settings, Logger: log}
	programHandler := &program_api.Handler{Store: st.program, Logger: log}
	adminHandler := &admin_api.Handler{
		AdminService:  adminService,
		Sessions:      sessions,
		SessionSecret: cfg.Auth.SessionSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		Logger:        log,
	}
	uploadHandler := &uploads_api.Handler{Uploads: uploadService, Logger: log}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Post("/api/guests", guestHandler.CreateGuest)
	r.Get("/api/settings", settingsHandler.GetSettings)
	r.Get("/api/program", programHandler.ListProgramItems)
	r.Post("/api/auth/login", adminHandler.Login)
	r.Post("/api/uploads/request-url", uploadHandler.RequestUploadURL)
	r.Get("/objects/*", uploadHandler.ServeObject)

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.SessionSecret, sessions))

		r.Post("/api/auth/logout", adminHandler.Logout)
		r.Get("/api/auth/me", adminHandler.Me)

		r.Get("/api/guests", guestHandler.ListGuests)
		r.Delete("/api/guests/{id}", guestHandler.DeleteGuest)
		r.Post("/api/guests/bulk-delete", guestHandler.BulkDeleteGuests)
		r.Post("/api/guests/draw", guestHandler.DrawWinner)
		r.Post("/api/guests/reset-draw", guestHandler.ResetDraw)
		r.Get("/api/guests/{id}/qr", guestHandler.GuestQR)

		r.Post("/api/settings", settingsHandler.UpdateSettings)
		r.Post("/api/program", programHandler.ReplaceProgramItems)

		r.Get("/api/admin/users", adminHandler.ListAdmins)
		r.Post("/api/admin/users", adminHandler.CreateAdmin)
		r.Delete("/api/admin/users/{id}", adminHandler.DeleteAdmin)
		r.Post("/api/admin/users/{id}/password", adminHandler.UpdateAdminPassword)
	})
	log.Info("ROUTER", "Routes registered")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("RSVP service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "RSVP service shutdown complete")
	}
}

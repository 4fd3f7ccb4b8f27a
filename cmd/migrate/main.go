package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"majlis-rsvp/internal/config"
	"majlis-rsvp/internal/database/migrations"
	"majlis-rsvp/internal/logger"
)

// Standalone migration tool. Runs the same migrations the server applies
// on startup when AUTO_MIGRATE is enabled, but lets operators run them
// explicitly (or roll back) against the configured PostgreSQL database.
func main() {
	direction := flag.String("direction", "up", "Migration direction: up, down or version")
	flag.Parse()

	log := logger.NewLogger()
	defer log.Close()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", "No .env file found, relying on environment variables")
	}

	cfg := config.Load()
	if cfg.Storage.PostgresDSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN is required to run migrations")
	}

	sqldb, err := sql.Open("postgres", cfg.Storage.PostgresDSN)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open database: %v", err))
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to reach database: %v", err))
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
		MigrationsDir: cfg.Storage.MigrationsDir,
		AutoMigrate:   false,
	})
	defer runner.Close()

	switch *direction {
	case "up":
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("MIGRATION", fmt.Sprintf("Migration up failed: %v", err))
		}
		log.Info("MIGRATION", "Migrations applied")
	case "down":
		if err := runner.MigrateDown(); err != nil {
			log.Fatal("MIGRATION", fmt.Sprintf("Migration down failed: %v", err))
		}
		log.Info("MIGRATION", "Migrations rolled back")
	case "version":
		version, dirty, err := runner.Version()
		if err != nil {
			log.Fatal("MIGRATION", fmt.Sprintf("Failed to read schema version: %v", err))
		}
		log.Info("MIGRATION", fmt.Sprintf("Schema version: %d (dirty: %v)", version, dirty))
	default:
		fmt.Fprintf(os.Stderr, "unknown direction %q (expected up, down or version)\n", *direction)
		os.Exit(1)
	}
}

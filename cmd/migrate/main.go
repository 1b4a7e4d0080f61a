package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/yourusername/quiz-api/internal/config"
)

// Утилита обслуживания миграций. Нужна в основном для ручного
// восстановления после упавшей миграции (dirty state), когда приложение
// отказывается стартовать.
func main() {
	var (
		action  = flag.String("action", "up", "up | down | version | force")
		version = flag.Int("version", -1, "target version for -action=force")
		source  = flag.String("source", "file://migrations", "migrations source")
	)
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(*source, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	switch *action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		fmt.Println("Migrations applied.")

	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		fmt.Println("Rolled back one migration.")

	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Failed to read version: %v", err)
		}
		fmt.Printf("version=%d dirty=%t\n", v, dirty)

	case "force":
		if *version < 0 {
			log.Fatal("force requires -version")
		}
		fmt.Printf("Forcing migration version to %d to clean dirty state...\n", *version)
		if err := m.Force(*version); err != nil {
			log.Fatalf("Failed to force version: %v", err)
		}
		fmt.Println("Success! Dirty state cleaned. You can now run the app normally.")

	default:
		log.Fatalf("Unknown action %q", *action)
	}
}

package main

// Applies pending database migrations against DATABASE_URL:
//   go run ./cmd/migrate

import (
	"context"
	"log"

	"jobos-backend/internal/shared/config"
	"jobos-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required to run migrations")
	}
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Printf("migrations applied")
}

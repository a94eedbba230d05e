package main

import (
	"context"
	"os"
	"time"

	"resume-coach/internal/shared/config"
	"resume-coach/internal/shared/storage/db"
	"resume-coach/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	opts := db.OptionsFromEnv()
	opts.DatabaseURL = cfg.DatabaseURL
	conn, err := db.Connect(ctx, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	telemetry.Info("migrate.done", nil)
}

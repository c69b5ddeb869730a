package main

import (
	"fmt"
	"log/slog"
	"os"

	"keeply/backend/config"
	"keeply/backend/database"
	"keeply/backend/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := database.InitDB(cfg.Database.Path, cfg.Database.URL); err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.DB.Close()

	fmt.Println("Migrations completed successfully!")
}

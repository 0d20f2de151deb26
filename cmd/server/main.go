package main

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/anypeace-oss/jeda/internal/config"
	"github.com/anypeace-oss/jeda/internal/db"
	"github.com/anypeace-oss/jeda/internal/handler"
	"github.com/anypeace-oss/jeda/internal/logging"
	"github.com/anypeace-oss/jeda/internal/repository"
	"github.com/anypeace-oss/jeda/internal/router"
	"github.com/anypeace-oss/jeda/internal/service"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogFile)

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(database, migrationsFS(cfg.MigrationsDir)); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	statsRepo := repository.NewStatsRepository(database)

	clock := clockwork.NewRealClock()
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	settingsService := service.NewSettingsService(settingsRepo)
	statsService := service.NewStatsService(statsRepo, userRepo, clock)

	authHandler := handler.NewAuthHandler(authService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	statsHandler := handler.NewStatsHandler(statsService)

	engine := router.New(authService, authHandler, settingsHandler, statsHandler, cfg.CORSOrigins)
	slog.Info("listening", "port", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		slog.Error("run server", "error", err)
		os.Exit(1)
	}
}

// migrationsFS prefers an external migrations directory when configured,
// falling back to the embedded schema.
func migrationsFS(dir string) fs.FS {
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			return os.DirFS(dir)
		}
	}
	return db.Migrations
}

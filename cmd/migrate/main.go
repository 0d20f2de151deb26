package main

import (
	"io/fs"
	"log"
	"os"

	"github.com/anypeace-oss/jeda/internal/config"
	"github.com/anypeace-oss/jeda/internal/db"
)

func main() {
	cfg := config.Load()
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	var fsys fs.FS = db.Migrations
	if cfg.MigrationsDir != "" {
		if _, err := os.Stat(cfg.MigrationsDir); err == nil {
			fsys = os.DirFS(cfg.MigrationsDir)
		}
	}

	if err := db.RunMigrations(database, fsys); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Println("migrations applied successfully")
}

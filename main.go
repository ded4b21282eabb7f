package main

import (
	"flag"
	"log"

	"learning_path_backend/internal/app"
	"learning_path_backend/internal/config"
	"learning_path_backend/pkg/configwatcher"
	"learning_path_backend/pkg/database"
	"learning_path_backend/pkg/logger"
)

// @title Learning Path Backend API
// @version 1.0
// @description Student progress tracking service with curriculum, quizzes, recommendations and analytics.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	if cfg.MigrateOnly {
		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
		log.Println("Migration completed")
		return
	}

	application := app.NewApp(cfg)

	// Only generation settings are safe to swap at runtime; the server,
	// database and JWT config stay fixed for the process.
	go configwatcher.WatchConfig("configs/config.yaml", func(reloaded *config.Config) {
		cfg.Generation = reloaded.Generation
		application.ReloadGeneration(reloaded.Generation)
		logger.Log.Info("Generation settings reloaded")
	})

	application.Run()
}

// Manual overall-progress recompute.
//
// overall_progress on student profiles is a denormalized percentage of
// completed topics. Run this after bulk-importing progress rows or after
// curriculum changes shift the topic count.
//
// Usage: go run scripts/recompute_progress.go
package main

import (
	"log"
	"os"

	"learning_path_backend/internal/config"
	"learning_path_backend/internal/model"
	"learning_path_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the database section of configs/config.yaml. The main
// config struct carries mapstructure tags for viper, which yaml ignores, so
// the keys are restated here.
type fileConfig struct {
	Database struct {
		Driver    string `yaml:"driver"`
		Path      string `yaml:"path"`
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		User      string `yaml:"user"`
		Password  string `yaml:"password"`
		DBName    string `yaml:"dbname"`
		Charset   string `yaml:"charset"`
		ParseTime bool   `yaml:"parse_time"`
	} `yaml:"database"`
}

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to parse config file: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Driver:    cfg.Database.Driver,
		Path:      cfg.Database.Path,
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		DBName:    cfg.Database.DBName,
		Charset:   cfg.Database.Charset,
		ParseTime: cfg.Database.ParseTime,
	}

	db, err := database.InitDB(&dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var totalTopics int64
	if err := db.Model(&model.Topic{}).Count(&totalTopics).Error; err != nil {
		log.Fatalf("Failed to count topics: %v", err)
	}
	if totalTopics == 0 {
		log.Println("No topics in curriculum, nothing to do")
		return
	}

	var profiles []model.StudentProfile
	if err := db.Find(&profiles).Error; err != nil {
		log.Fatalf("Failed to load profiles: %v", err)
	}

	log.Printf("Recomputing overall progress for %d profiles...", len(profiles))

	for _, profile := range profiles {
		var completed int64
		err := db.Model(&model.UserProgress{}).
			Where("user_id = ? AND completion_status = ?", profile.UserID, model.Completed).
			Count(&completed).Error
		if err != nil {
			log.Fatalf("Failed to count completed topics for user %d: %v", profile.UserID, err)
		}

		progress := float64(completed) / float64(totalTopics) * 100
		err = db.Model(&model.StudentProfile{}).
			Where("user_id = ?", profile.UserID).
			Update("overall_progress", progress).Error
		if err != nil {
			log.Fatalf("Failed to update profile for user %d: %v", profile.UserID, err)
		}
	}

	log.Println("Done")
}

// migrate_gorm.go - Run this file to apply the GORM migrations
// Usage: go run migrate_gorm.go

//go:build ignore

package main

import (
	"log"

	"github.com/sahilchouksey/institucion-api/config"
	"github.com/sahilchouksey/institucion-api/database"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadENV(); err != nil {
		log.Fatal("Failed to load environment variables:", err)
	}
	env, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	store, err := database.StartGORM(env, logger)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := store.HealthCheck(); err != nil {
		log.Fatal("Database health check failed:", err)
	}

	log.Println("All migrations completed successfully")
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sahilchouksey/institucion-api/config"
	"github.com/sahilchouksey/institucion-api/database"
	"github.com/sahilchouksey/institucion-api/utils"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadENV(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
		os.Exit(1)
	}

	env, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := utils.NewLogger(env.LOG_LEVEL, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := database.StartGORM(env, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Catálogo académico - Database Seeding")
	fmt.Println(separator)

	if err := database.RunSeeds(store.DB(), log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	fmt.Println(separator)
	fmt.Println("Seeding completed successfully!")
	fmt.Println(separator)
}

package main

import (
	"context"
	"log"

	"github.com/avelkovs/taskkeeper/internal/server"
	"github.com/avelkovs/taskkeeper/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// Optional .env file; the real environment wins.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	app.Run(ctx)
}

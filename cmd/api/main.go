package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/pageza/mealfinder/config"
	"github.com/pageza/mealfinder/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Stop on an interrupt or terminate signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	log.Println("Starting server...")
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

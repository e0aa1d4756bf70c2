package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"documind-be/internal/bootstrap"
	"documind-be/internal/config"
	"documind-be/internal/model"
	"documind-be/internal/server"
	"documind-be/internal/tracer"
	"documind-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing)

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := model.Migrate(gormDB); err != nil {
		log.Panicf("Unable to run migrations: %v", err)
	}

	// Index files live here
	if err := os.MkdirAll(cfg.Storage.IndexDir, 0o755); err != nil {
		log.Panicf("Unable to create index directory %s: %v", cfg.Storage.IndexDir, err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 7. Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("Shutting down gracefully...")

	if err := srv.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := container.PubSub.Close(); err != nil {
		log.Printf("PubSub close error: %v", err)
	}
	_ = container.Logger.Sync()
	if err := shutdownTracer(context.Background()); err != nil {
		log.Printf("Tracer shutdown error: %v", err)
	}
}

// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"field-sales-ops-api-server/config"
	"field-sales-ops-api-server/internal/api/routes"
	"field-sales-ops-api-server/internal/auth"
	"field-sales-ops-api-server/internal/database"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; containers inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	auth.Init(cfg.JWT.Secret, cfg.JWT.ExpirationSeconds)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer db.Client().Disconnect(context.Background())

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Could not ensure indexes: %v", err)
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Could not seed admin user: %v", err)
	}

	var files storage.FileStore
	if cfg.S3.Bucket != "" {
		files, err = storage.NewS3Store(cfg.S3)
		if err != nil {
			log.Fatalf("Could not initialize S3 storage: %v", err)
		}
		log.Printf("File storage: S3 bucket %s", cfg.S3.Bucket)
	} else {
		files, err = storage.NewLocalStore(cfg.Upload.Dir)
		if err != nil {
			log.Fatalf("Could not initialize local storage: %v", err)
		}
		log.Printf("File storage: local directory %s", cfg.Upload.Dir)
	}

	wsHub := socket.NewHub()

	router := routes.SetupRouter(cfg, db, files, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

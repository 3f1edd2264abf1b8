package main

import (
	"cafewifi/config"
	"cafewifi/database"
	"cafewifi/route"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"log"
	"os"
)

func init() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Set Gin mode
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	db := database.InitDatabase(cfg)

	router, err := route.NewRouter(cfg, db)
	if err != nil {
		log.Fatalf("Failed to configure routes: %v", err)
	}
	log.Println("Routes configured successfully")

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

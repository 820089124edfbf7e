package main

import (
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"costpilot/server/config"
	"costpilot/server/internal/api"
	"costpilot/server/internal/database"
	"costpilot/server/internal/engine"
	"costpilot/server/internal/store"
	"costpilot/server/internal/templates"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	dbPath := cfg.Pricing.DatabasePath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using pricing database at: %s", dbPath)

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	logger.Info("Seeding pricing dataset...")
	if err := db.Seed(cfg.Pricing.Region); err != nil {
		logger.WithError(err).Fatal("Failed to seed pricing dataset")
	}

	estimates, err := store.NewEstimateStore(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize estimate store")
	}

	locations, err := config.LoadLocationFactors(cfg.Pricing.LocationFactorsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load location factors")
	}

	registry := templates.NewRegistry()
	estimator := engine.NewEstimator(db, registry, locations, cfg.Pricing.Region, logger)
	handler := api.NewHandler(db, estimates, estimator, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}

// main.go
package main

import (
	"context"
	"log"

	"interview-booking/cmd"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/scheduler"
	"interview-booking/internal/wire"
	"interview-booking/pkg/database"
	"interview-booking/pkg/mailer"
	"interview-booking/pkg/razorpay"
	"interview-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Outbound collaborators
	mail := mailer.NewSMTPMailer(config.Email, logger)
	gateway := razorpay.NewClient(config.Payment, logger)

	// Wire all dependencies
	app := wire.Wiring(db, repos, config, mail, gateway, logger)

	// Background sweeps: session reminders + pending payment expiry
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler.NewScheduler(db, repos, mail, config, logger).Start(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

package main

import (
	"context"
	"elearn/config"
	"elearn/database"
	"elearn/logger"
	"elearn/routers"
	"elearn/utils"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	if err := logger.Init(cfg.LogMode); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Log.Sync()

	database.ConnectDb()
	defer database.Database.Store.Close()

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	n, err := database.SeedCourses(seedCtx, database.Database.Store, cfg.SeedFile)
	cancel()
	if err != nil {
		logger.Log.Warn("course catalog not seeded", "file", cfg.SeedFile, "error", err)
	} else {
		logger.Log.Info("course catalog seeded", "file", cfg.SeedFile, "courses", n)
	}

	setupTokenRevoker(cfg)
	setupNotifications(cfg)

	if cfg.BackupCron != "" {
		scheduler, err := utils.InitializeBackupScheduler(database.Database.Store, cfg.BackupDir, cfg.BackupCron, cfg.BackupKeep)
		if err != nil {
			logger.Log.Fatal("Failed to start backup scheduler", "error", err)
		}
		defer scheduler.Stop()
	}

	app := routers.NewApp()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down server")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	logger.Log.Info("Server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.Error("Server stopped", "error", err)
	}
}

func setupTokenRevoker(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		logger.Log.Info("Token revocation kept in memory")
		return
	}
	revoker := utils.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := revoker.Ping(ctx); err != nil {
		logger.Log.Fatal("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
	}
	utils.Revoker = revoker
	logger.Log.Info("Token revocation backed by Redis", "addr", cfg.RedisAddr)
}

func setupNotifications(cfg *config.Config) {
	var notifiers utils.MultiNotifier
	if cfg.SendgridAPIKey != "" && cfg.EmailSender != "" {
		notifiers = append(notifiers, utils.NewEmailNotifier(cfg.SendgridAPIKey, cfg.EmailSender))
	}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, utils.NewWebhookNotifier(cfg.WebhookURL))
	}
	if len(notifiers) > 0 {
		utils.Notifications = notifiers
		logger.Log.Info("Event notifications enabled", "targets", len(notifiers))
	}
}

package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"language-assistant-api/internal/config"
	"language-assistant-api/internal/database"
	httpserver "language-assistant-api/internal/http"
	"language-assistant-api/internal/models"
	"language-assistant-api/internal/netinfo"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	database.Connect()
	if err := database.DB.AutoMigrate(&models.User{}, &models.Detection{}); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	r := httpserver.NewServer(cfg)

	go announce(cfg)

	logrus.WithField("port", cfg.Port).Info("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}

// announce is the one-shot startup task telling the discovery webhook where
// this server can be reached. Failures are logged, never fatal.
func announce(cfg *config.Config) {
	if cfg.AnnounceURL == "" {
		return
	}

	// give the listener a moment to come up before probing our own port
	time.Sleep(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	addr, reachable := netinfo.ReachableAddress(ctx, cfg.Port)
	if err := netinfo.Announce(ctx, cfg.AnnounceURL, addr, reachable); err != nil {
		logrus.WithError(err).Warn("failed to announce server address")
		return
	}
	logrus.WithFields(logrus.Fields{"address": addr, "reachable": reachable}).Info("announced server address")
}

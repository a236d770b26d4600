package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"fairness-audit/backend/internal/ai"
	"fairness-audit/backend/internal/api"
	"fairness-audit/backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load configuration: %v", err)
	}
	logrus.SetLevel(cfg.LogLevel)

	if !cfg.DisablePersistence {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			logrus.Fatalf("create data directory: %v", err)
		}
	}

	server, err := api.NewServer(api.Config{
		DBPath:              cfg.DBPath,
		DisablePersistence:  cfg.DisablePersistence,
		AllowedOrigins:      cfg.AllowedOrigins,
		AIConfig:            cfg.AI,
		DisableAI:           cfg.AI.Provider == ai.ProviderMock,
		RecommendTimeout:    cfg.RecommendTimeout,
		DefaultModelVersion: cfg.ModelVersion,
	})
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}
	defer server.Close()

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	logrus.Infof("starting fairness-audit backend on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}

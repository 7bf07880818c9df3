package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wutcharinth/splitbill/internal/api"
	"github.com/wutcharinth/splitbill/internal/auth"
	"github.com/wutcharinth/splitbill/internal/config"
	"github.com/wutcharinth/splitbill/internal/extraction"
	"github.com/wutcharinth/splitbill/internal/rates"
	"github.com/wutcharinth/splitbill/internal/service"
	"github.com/wutcharinth/splitbill/internal/storage/sqlite"
	"github.com/wutcharinth/splitbill/pkg/logging"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadOrEnv(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// LOG_LEVEL overrides the configured level.
	level := logging.ParseLevel(cfg.Logging.Level)
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = logging.ParseLevel(env)
	}
	logging.SetupWithLevel(cfg.Logging.Format, level)

	store, err := sqlite.New(cfg.Storage.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.DatabasePath)

	var extractor extraction.Extractor
	if cfg.OpenAI.APIKey != "" {
		extractor = extraction.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		slog.Info("Receipt extraction enabled", "model", cfg.OpenAI.Model)
	} else {
		slog.Info("Receipt extraction disabled, bills start empty")
	}

	tokens := auth.NewShareTokenManager(
		cfg.Auth.ShareSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	rateProvider := rates.NewHTTPProvider(cfg.Rates.BaseURL)
	bills := service.NewBillService(store, extractor)

	gin.SetMode(gin.ReleaseMode)
	server := api.NewServer(api.Config{
		Port:             cfg.Server.Port,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		PublicBaseURL:    cfg.Server.PublicBaseURL,
		PinnedCurrencies: cfg.Display.PinnedCurrencies,
	}, bills, tokens, rateProvider)

	if err := server.Start(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

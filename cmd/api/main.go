package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/logger"
	"github.com/windoze95/recipe-search/internal/router"
	"github.com/windoze95/recipe-search/internal/server"
	"github.com/windoze95/recipe-search/internal/upstream"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)
}

// Entry point for the relay service.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	creds := cfg.Credentials()
	logger.Get().Info("edamam credentials",
		zap.Bool("app_id_set", creds.AppID != ""),
		zap.Bool("app_key_set", creds.AppKey != ""),
		zap.Bool("user_id_set", creds.UserID != ""),
	)

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	provider, err := upstream.NewEdamamProvider(creds, cfg.EnvVars.EdamamEndpoint, nil)
	if err != nil {
		logger.Get().Fatal("failed to create edamam provider", zap.Error(err))
	}

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(cfg, provider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run the server
	if err := server.Run(ctx, ":"+cfg.EnvVars.Port, r); err != nil {
		logger.Get().Fatal("server error", zap.Error(err))
	}
}

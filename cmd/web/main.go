package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/logger"
	"github.com/windoze95/recipe-search/internal/router"
	"github.com/windoze95/recipe-search/internal/searchclient"
	"github.com/windoze95/recipe-search/internal/server"
	"go.uber.org/zap"
)

func init() {
	logger.Init(os.Getenv("GIN_MODE") != "release")
}

// Entry point for the browser frontend.
func main() {
	defer logger.Sync()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	relay, err := searchclient.NewRelayClient(cfg.EnvVars.RelayURL, nil)
	if err != nil {
		logger.Get().Fatal("failed to create relay client", zap.Error(err))
	}
	store := searchclient.NewSessionStore(relay)

	gin.SetMode(gin.ReleaseMode)
	r, err := router.SetupClientRouter(cfg, store)
	if err != nil {
		logger.Get().Fatal("failed to set up router", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweep := func(ctx context.Context) error {
		store.RunSweeper(ctx, time.Minute, cfg.EnvVars.SessionTTL)
		return nil
	}

	logger.Get().Info("relay configured", zap.String("relay_url", cfg.EnvVars.RelayURL))
	if err := server.Run(ctx, ":"+cfg.EnvVars.Port, r, sweep); err != nil {
		logger.Get().Fatal("server error", zap.Error(err))
	}
}

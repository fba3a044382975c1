package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/config"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg, cfgErr := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})
	if cfgErr != nil {
		logging.Error(logger, "config load failed", cfgErr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}

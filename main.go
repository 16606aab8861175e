package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/polyrabbit/erc20-tokens/config"
	"github.com/polyrabbit/erc20-tokens/exchange"
	"github.com/polyrabbit/erc20-tokens/http"
	"github.com/polyrabbit/erc20-tokens/syncer"
	"github.com/polyrabbit/erc20-tokens/token"
	"github.com/polyrabbit/erc20-tokens/writer"
)

func main() {
	cfg := config.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.StandardLogger()
	registry := exchange.NewRegistry(cfg, http.New(cfg), logger)
	if cfg.ListSources {
		config.ListSourcesAndExit(registry.GetAllNames())
	}
	tokenFile := cfg.TokenFilePath()
	logger.Debugf("Using token file %s", tokenFile)

	s := syncer.New(syncer.Config{
		Sources: cfg.Sources,
		DryRun:  cfg.DryRun,
	}, token.NewStore(tokenFile), registry, logger)

	// Failures are already logged, the exit code stays 0 either way
	report, err := s.Run(ctx)
	if err != nil || !cfg.Report {
		return
	}
	writer.NewTableWriter().Render(report)
}

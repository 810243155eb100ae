package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AngelCh415/adspend/internal/analysis"
	"github.com/AngelCh415/adspend/internal/config"
	"github.com/AngelCh415/adspend/internal/httpx"
)

func main() {
	cfg, err := config.Load(os.Getenv("ADSPEND_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := analysis.NewFromConfig(cfg, logger)
	srv := httpx.NewServer(cfg, logger, eng)
	if err := httpx.Serve(ctx, srv, logger); err != nil {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/adspend/internal/analysis"
	"github.com/AngelCh415/adspend/internal/httpx"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		eng := analysis.NewFromConfig(cfg, logger)
		return httpx.Serve(ctx, httpx.NewServer(cfg, logger, eng), logger)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

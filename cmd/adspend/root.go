package main

import (
	"log/slog"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/AngelCh415/adspend/internal/config"
)

var (
	cfg        *config.Config
	logger     *slog.Logger
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "adspend",
	Short: "Ad-spend normalization and performance analysis",
	Long: "Normalizes ad-platform exports (Meta, Google, TikTok, any language or currency), " +
		"aggregates them by campaign and ad set, and recommends whether to scale, optimise or stop.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		// stdout carries the report; logs go to stderr.
		l, err := config.NewLogger(cfg.Log, os.Stderr)
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

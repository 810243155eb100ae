package analysis

import (
	"log/slog"

	"github.com/AngelCh415/adspend/internal/config"
	"github.com/AngelCh415/adspend/internal/narrative"
)

// NewFromConfig builds the engine used by the server and the CLI. The
// narrator is attached only when it is enabled and has an API key.
func NewFromConfig(cfg *config.Config, log *slog.Logger) *Engine {
	opts := []Option{
		WithRates(cfg.Currency.Table()),
		WithLogger(log),
	}
	if nc := cfg.Narrator; nc.Active() {
		n := narrative.NewAnthropic(narrative.Config{
			APIKey:    nc.APIKey,
			Model:     nc.Model,
			BaseURL:   nc.BaseURL,
			MaxTokens: nc.MaxTokens,
			Timeout:   nc.Timeout(),
		})
		opts = append(opts, WithNarrator(narrative.NewLimited(n, nc.RatePerMinute), nc.Timeout()))
		log.Info("narrator enabled", slog.String("model", nc.Model))
	}
	return New(opts...)
}

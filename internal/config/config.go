package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/AngelCh415/adspend/internal/currency"
)

const envPrefix = "ADSPEND"

type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Currency CurrencyConfig `yaml:"currency" mapstructure:"currency"`
	Narrator NarratorConfig `yaml:"narrator" mapstructure:"narrator"`
}

type ServerConfig struct {
	Port                  int      `yaml:"port" mapstructure:"port"`
	ReadHeaderTimeoutSecs int      `yaml:"read_header_timeout_secs" mapstructure:"read_header_timeout_secs"`
	MaxBodyBytes          int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	AllowedOrigins        []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

func (s ServerConfig) Addr() string { return ":" + strconv.Itoa(s.Port) }

func (s ServerConfig) ReadHeaderTimeout() time.Duration {
	return time.Duration(s.ReadHeaderTimeoutSecs) * time.Second
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// CurrencyConfig is the static exchange-rate table: units of base per
// unit of each code.
type CurrencyConfig struct {
	Base  string             `yaml:"base" mapstructure:"base"`
	Rates map[string]float64 `yaml:"rates" mapstructure:"rates"`
}

func (c CurrencyConfig) Table() *currency.Table { return currency.NewTable(c.Base, c.Rates) }

type NarratorConfig struct {
	Enabled       bool   `yaml:"enabled" mapstructure:"enabled"`
	APIKey        string `yaml:"api_key" mapstructure:"api_key"`
	Model         string `yaml:"model" mapstructure:"model"`
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxTokens     int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	RatePerMinute int    `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
}

// Active reports whether narration is both switched on and credentialed.
func (n NarratorConfig) Active() bool { return n.Enabled && n.APIKey != "" }

func (n NarratorConfig) Timeout() time.Duration { return time.Duration(n.TimeoutSecs) * time.Second }

// Load reads config.yaml from the working directory (or file when set),
// then ADSPEND_* environment variables, over the defaults.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout_secs", 10)
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("currency.base", currency.DefaultBase)
	v.SetDefault("currency.rates", currency.DefaultRates)
	v.SetDefault("narrator.enabled", false)
	v.SetDefault("narrator.api_key", "")
	v.SetDefault("narrator.model", "claude-haiku-4-5-20251001")
	v.SetDefault("narrator.base_url", "")
	v.SetDefault("narrator.timeout_secs", 8)
	v.SetDefault("narrator.max_tokens", 600)
	v.SetDefault("narrator.rate_per_minute", 30)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// viper lower-cases map keys.
	rates := make(map[string]float64, len(cfg.Currency.Rates))
	for code, r := range cfg.Currency.Rates {
		rates[strings.ToUpper(code)] = r
	}
	cfg.Currency.Rates = rates
	cfg.Currency.Base = strings.ToUpper(strings.TrimSpace(cfg.Currency.Base))

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, eris.Errorf("config: invalid server.port %d", cfg.Server.Port)
	}
	if cfg.Currency.Base == "" {
		return nil, eris.New("config: currency.base is empty")
	}
	return &cfg, nil
}

// InitLogger builds the process logger on stdout and installs it as the
// slog default.
func InitLogger(cfg LogConfig) (*slog.Logger, error) {
	logger, err := NewLogger(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, eris.Wrapf(err, "config: invalid log level %q", cfg.Level)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "text", "console":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json", "":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, eris.Errorf("config: invalid log format %q", cfg.Format)
}

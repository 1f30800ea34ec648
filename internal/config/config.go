package config

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultListenAddr     = ":8080"
	defaultLogFormat      = FormatText
	defaultDefaultTimeout = 30 * time.Second
	defaultMaxTimeout     = 5 * time.Minute

	envPrefix = "FACTOR"

	// Keys double as flag names; environment variables are the upper-cased
	// key with the FACTOR_ prefix and dashes replaced by underscores.
	KeyListenAddr     = "listen-addr"
	KeyLogLevel       = "log-level"
	KeyLogFormat      = "log-format"
	KeyDefaultTimeout = "default-timeout"
	KeyMaxTimeout     = "max-timeout"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds application configuration resolved from flags, environment
// variables and an optional config file, in that order of precedence.
type Config struct {
	ListenAddr string
	LogLevel   slog.Level
	LogFormat  string

	// DefaultTimeout bounds searches started without an explicit timeout by
	// the HTTP server. The CLI never applies it.
	DefaultTimeout time.Duration
	// MaxTimeout caps any timeout requested over HTTP.
	MaxTimeout time.Duration
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyListenAddr, defaultListenAddr)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, defaultLogFormat)
	v.SetDefault(KeyDefaultTimeout, defaultDefaultTimeout.String())
	v.SetDefault(KeyMaxTimeout, defaultMaxTimeout.String())
	return v
}

// BindFlags makes any of the flags in fs that are set take precedence over
// the environment and config file.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

// ReadFile merges the config file at path into v. The format is taken from
// the file extension.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return FromViper(New())
}

// FromViper resolves a Config from v. Unparseable values fall back to their
// defaults.
func FromViper(v *viper.Viper) Config {
	cfg := Config{
		ListenAddr:     v.GetString(KeyListenAddr),
		LogLevel:       parseLogLevel(v.GetString(KeyLogLevel)),
		LogFormat:      parseLogFormat(v.GetString(KeyLogFormat)),
		DefaultTimeout: parseTimeout(v.GetString(KeyDefaultTimeout), defaultDefaultTimeout),
		MaxTimeout:     parseTimeout(v.GetString(KeyMaxTimeout), defaultMaxTimeout),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.DefaultTimeout > cfg.MaxTimeout {
		cfg.DefaultTimeout = cfg.MaxTimeout
	}
	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseLogFormat(s string) string {
	switch strings.ToLower(s) {
	case FormatJSON:
		return FormatJSON
	default:
		return FormatText
	}
}

// parseTimeout accepts whole seconds or a Go duration string. Second counts
// are limited to 32 bits so the product with time.Second cannot overflow.
func parseTimeout(s string, fallback time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseUint(s, 10, 32); err == nil {
		if secs == 0 {
			return fallback
		}
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewConsoleLogger creates a human-readable logger for terminals. Error
// values are highlighted.
func NewConsoleLogger(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	}))
}

// NewLoggerFor builds the logger selected by cfg.LogFormat.
func NewLoggerFor(cfg Config, w io.Writer, noColor bool) *slog.Logger {
	if cfg.LogFormat == FormatJSON {
		return NewLogger(w, cfg.LogLevel)
	}
	return NewConsoleLogger(w, cfg.LogLevel, noColor)
}

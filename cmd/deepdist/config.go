package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/hupe1980/deepdist/codec"
)

// Config validation errors
var (
	ErrInvalidCutoff    = errors.New("cutoff must be a positive number")
	ErrInvalidCodec     = errors.New("codec must be json or go-json")
	ErrInvalidLogFormat = errors.New("log_format must be 'json' or 'text'")
	ErrInvalidLogLevel  = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidTimeout   = errors.New("timeout must not be negative")
	ErrMissingInputs    = errors.New("expected exactly two inputs: LEFT RIGHT")
)

// Config holds the command configuration. Environment variables use the
// DEEPDIST_ prefix; flags override them.
type Config struct {
	Cutoff      float64       `envconfig:"CUTOFF" default:"1"`
	IgnoreOrder bool          `envconfig:"IGNORE_ORDER" default:"false"`
	Report      bool          `envconfig:"REPORT" default:"false"`
	Codec       string        `envconfig:"CODEC" default:"go-json"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat   string        `envconfig:"LOG_FORMAT" default:"text"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"1m"`
	MetricsFile string        `envconfig:"METRICS_FILE"`
	S3Region    string        `envconfig:"S3_REGION"`
	S3Endpoint  string        `envconfig:"S3_ENDPOINT"`
}

// LoadConfig reads envFile (if present), the environment and args, in
// increasing precedence. It returns the configuration and the two inputs.
func LoadConfig(args []string, envFile string, stderr io.Writer) (*Config, []string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("DEEPDIST", &cfg); err != nil {
		return nil, nil, err
	}

	fset := flag.NewFlagSet("deepdist", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "usage: deepdist [flags] LEFT RIGHT")
		_, _ = fmt.Fprintln(stderr, "LEFT and RIGHT are local paths or s3://bucket/key URIs (.zst, .gz, .lz4 are decompressed).")
		fset.PrintDefaults()
	}
	fset.Float64Var(&cfg.Cutoff, "cutoff", cfg.Cutoff, "ceiling for numeric distances")
	fset.BoolVar(&cfg.IgnoreOrder, "ignore-order", cfg.IgnoreOrder, "compare lists as multisets")
	fset.BoolVar(&cfg.Report, "report", cfg.Report, "print the diff report as JSON")
	fset.StringVar(&cfg.Codec, "codec", cfg.Codec, "document codec (json, go-json)")
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fset.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	fset.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout, 0 disables it")
	fset.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this textfile")
	fset.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "AWS region for s3:// inputs")
	fset.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3-compatible endpoint for s3:// inputs")
	if err := fset.Parse(args); err != nil {
		return nil, nil, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, nil, err
	}
	if fset.NArg() != 2 {
		return nil, nil, ErrMissingInputs
	}
	return &cfg, fset.Args(), nil
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if math.IsNaN(cfg.Cutoff) || math.IsInf(cfg.Cutoff, 0) || cfg.Cutoff <= 0 {
		return ErrInvalidCutoff
	}
	if _, ok := codec.ByName(cfg.Codec); !ok {
		return ErrInvalidCodec
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return ErrInvalidLogFormat
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Timeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, ErrInvalidLogLevel
	}
}

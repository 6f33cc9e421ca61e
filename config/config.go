// Package config loads muze settings from defaults, a config file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/muze-github/muze/analyzer"
	"github.com/muze-github/muze/report"
	"github.com/muze-github/muze/template"
)

const (
	configName      = ".muze"
	configType      = "yaml"
	envPrefix       = "MUZE"
	envKeySeparator = "_"
)

// Defaults
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

var (
	// ErrInvalidLogLevel is returned for an unknown logging.level
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned for an unknown logging.format
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidExtension is returned for a clean.extensions entry without a leading dot
	ErrInvalidExtension = errors.New("invalid source extension")
)

// Config is the top-level configuration
type Config struct {
	Clean     CleanConfig         `mapstructure:"clean"`
	Logging   LoggingConfig       `mapstructure:"logging"`
	Templates []template.Template `mapstructure:"templates"`
}

// CleanConfig holds unused-file analysis settings
type CleanConfig struct {
	Extensions []string `mapstructure:"extensions"`
	SkipDirs   []string `mapstructure:"skip_dirs"`
	IgnoreFile string   `mapstructure:"ignore_file"`
	Report     string   `mapstructure:"report"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty it is used as the explicit config file,
// otherwise .muze.yaml is searched in the working directory and $HOME.
// A missing config file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("clean.extensions", analyzer.DefaultExtensions)
	v.SetDefault("clean.skip_dirs", analyzer.DefaultSkipDirs)
	v.SetDefault("clean.ignore_file", analyzer.DefaultIgnoreFile)
	v.SetDefault("clean.report", report.DefaultFile)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	for _, ext := range c.Clean.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}
	return nil
}

// ParseLevel maps debug/info/warn/error to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
}

// NewLogger builds a text or JSON logger writing to w
func (c *LoggingConfig) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level, err := ParseLevel(c.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(c.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

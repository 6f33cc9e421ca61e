package config_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muze-github/muze/analyzer"
	"github.com/muze-github/muze/config"
	"github.com/muze-github/muze/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	location := filepath.Join(t.TempDir(), ".muze.yaml")
	require.NoError(t, os.WriteFile(location, []byte(content), 0o600))
	return location
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, analyzer.DefaultExtensions, cfg.Clean.Extensions)
	assert.Equal(t, analyzer.DefaultSkipDirs, cfg.Clean.SkipDirs)
	assert.Equal(t, analyzer.DefaultIgnoreFile, cfg.Clean.IgnoreFile)
	assert.Equal(t, report.DefaultFile, cfg.Clean.Report)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Logging.Format)
	assert.Empty(t, cfg.Templates)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, `clean:
  extensions: [".ts", ".vue"]
  ignore_file: .muzeignore
  report: unused.csv
logging:
  level: debug
  format: json
templates:
  - name: vite
    repository: https://example.com/vite.git
    description: vite starter
`))
	require.NoError(t, err)
	assert.Equal(t, []string{".ts", ".vue"}, cfg.Clean.Extensions)
	assert.Equal(t, ".muzeignore", cfg.Clean.IgnoreFile)
	assert.Equal(t, "unused.csv", cfg.Clean.Report)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.Len(t, cfg.Templates, 1)
	assert.Equal(t, "vite", cfg.Templates[0].Name)
	assert.Equal(t, "vite starter", cfg.Templates[0].Description)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MUZE_LOGGING_LEVEL", "error")
	t.Setenv("MUZE_CLEAN_REPORT", "env.md")
	cfg, err := config.LoadConfig(writeConfig(t, "logging:\n  level: info\n"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "env.md", cfg.Clean.Report)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{name: "log level", content: "logging:\n  level: loud\n", target: config.ErrInvalidLogLevel},
		{name: "log format", content: "logging:\n  format: xml\n", target: config.ErrInvalidLogFormat},
		{name: "extension", content: "clean:\n  extensions: [ts]\n", target: config.ErrInvalidExtension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
		})
	}

	_, err := config.LoadConfig(writeConfig(t, "clean: [unterminated\n"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	level, err := config.ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
	_, err = config.ParseLevel("trace")
	assert.True(t, errors.Is(err, config.ErrInvalidLogLevel))
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	var out bytes.Buffer
	logger := (&config.LoggingConfig{Level: "warn", Format: "json"}).NewLogger(&out, false)
	logger.Info("hidden")
	logger.Warn("shown", "path", "a.ts")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"path":"a.ts"`)

	out.Reset()
	logger = (&config.LoggingConfig{Level: "error", Format: "text"}).NewLogger(&out, true)
	logger.Debug("debugging")
	assert.Contains(t, out.String(), "msg=debugging")
}

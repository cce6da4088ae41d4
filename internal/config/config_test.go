package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtavares/ordemtex/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 50, cfg.MaxFileSizeMB)
	assert.Equal(t, "replace", cfg.ImportMode)
	assert.Equal(t, "text", cfg.ReportFormat)
	assert.Equal(t, 30, cfg.TimelineDays)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nimport_mode: append\n")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "append", cfg.ImportMode)
	assert.Equal(t, 50, cfg.MaxFileSizeMB)
	assert.Equal(t, 30, cfg.TimelineDays)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
log_level: warn
max_file_size_mb: 10
import_mode: append
report_format: json
timeline_days: 60
`)

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 10, cfg.MaxFileSizeMB)
	assert.Equal(t, "json", cfg.ReportFormat)
	assert.Equal(t, 60, cfg.TimelineDays)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "log_level: [unclosed\n")

	_, err := config.Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"log level", "log_level: loud\n", "unknown log_level"},
		{"import mode", "import_mode: merge\n", "unknown import_mode"},
		{"report format", "report_format: xml\n", "unknown report_format"},
		{"file size", "max_file_size_mb: -1\n", "max_file_size_mb"},
		{"timeline days", "timeline_days: -5\n", "timeline_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

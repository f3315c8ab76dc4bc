package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "", cfg.Game.ScenarioPath)
	assert.Equal(t, int64(0), cfg.Game.Seed)
	assert.Equal(t, "uuid", cfg.Game.IDs)
	assert.Equal(t, 12, cfg.UI.LogLines)
	assert.True(t, cfg.UI.ShowSummary)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
  file: whisper.log
game:
  scenario_path: scenarios/custom.yaml
  seed: 42
  ids: sequence
ui:
  log_lines: 5
  show_summary: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "whisper.log", cfg.Logging.File)
	assert.Equal(t, "scenarios/custom.yaml", cfg.Game.ScenarioPath)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "sequence", cfg.Game.IDs)
	assert.Equal(t, 5, cfg.UI.LogLines)
	assert.False(t, cfg.UI.ShowSummary)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: warn\n")
	t.Setenv("WOH_LOGGING_LEVEL", "error")
	t.Setenv("WOH_GAME_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, int64(7), cfg.Game.Seed)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: loud
  format: xml
game:
  ids: random
ui:
  log_lines: 0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "logging.format")
	assert.Contains(t, err.Error(), "game.ids")
	assert.Contains(t, err.Error(), "ui.log_lines")
}

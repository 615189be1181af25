package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan-cli/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "metric", cfg.Units)
	require.Equal(t, 7, cfg.Pantry.ExpiringDays)
	require.Empty(t, cfg.DBPath)
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "db_path: /tmp/custom.db\nunits: imperial\npantry:\n  expiring_days: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", cfg.DBPath)
	require.Equal(t, "imperial", cfg.Units)
	require.Equal(t, 3, cfg.Pantry.ExpiringDays)
}

func TestLoadRejectsUnknownUnits(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units: stones\n"), 0o644))

	_, err := config.Load(path)
	require.ErrorContains(t, err, "invalid units")
}

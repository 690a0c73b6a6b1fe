package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses production defaults without a config file", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, Default().Cluster, cfg.Cluster)
		assert.Equal(t, 60*time.Second, cfg.TokenTimeout)
		assert.Equal(t, 120*time.Second, cfg.QueryTimeout)
	})

	t.Run("overrides defaults from a config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cluster: http://localhost:9999\nquery_timeout: 10s\n"), 0o644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999", cfg.Cluster)
		assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
		assert.Equal(t, Default().ReportID, cfg.ReportID)
	})

	t.Run("fails on a missing config file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})
}

func TestConfig_TokenURL(t *testing.T) {
	cfg := Config{
		AuthRoute: "https://auth.example.com/Prod/token",
		GroupID:   "group-1",
		ReportID:  "report-1",
	}

	assert.Equal(t, "https://auth.example.com/Prod/token/group-1/report-1", cfg.TokenURL())
}

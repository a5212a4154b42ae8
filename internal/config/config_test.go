package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POWERRANK_FETCH_TIMEOUT_MS", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 20000, cfg.FetchTimeoutMs)
	require.Equal(t, 1, cfg.FetchRPS)
	require.Contains(t, cfg.UserAgent, "Mozilla/5.0")
	require.Contains(t, cfg.GenerationsDir, "Weekly_PowerRankings")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POWERRANK_FETCH_TIMEOUT_MS", "500")
	t.Setenv("POWERRANK_LOG_JSON", "yes")
	t.Setenv("POWERRANK_FETCH_RPS", "not-a-number")
	t.Setenv("POWERRANK_LATEST_PATH", "/tmp/latest.csv")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 500, cfg.FetchTimeoutMs)
	require.True(t, cfg.LogJSON)
	require.Equal(t, 1, cfg.FetchRPS)
	require.Equal(t, "/tmp/latest.csv", cfg.LatestPath)
}

func TestRequire(t *testing.T) {
	cfg := Config{}
	require.Error(t, cfg.Require("POWERRANK_TEAMS_CSV", "  "))
	require.NoError(t, cfg.Require("POWERRANK_TEAMS_CSV", "teams.csv"))
}

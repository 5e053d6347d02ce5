package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROJEVAL_DATABASE_URL", "postgres://localhost/project_eval")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ProjectEval API", cfg.AppName)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, "projeval:changes", cfg.EventsChannel)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 30, cfg.AccountsRateLimit)
	require.Equal(t, ":8080", cfg.HTTPAddress())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROJEVAL_DATABASE_URL", "eval.db")
	t.Setenv("PROJEVAL_DATABASE_DRIVER", "SQLite")
	t.Setenv("PROJEVAL_APP_PORT", ":9090")
	t.Setenv("PROJEVAL_HTTP_REQUEST_TIMEOUT", "3s")
	t.Setenv("PROJEVAL_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("PROJEVAL_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("PROJEVAL_DATABASE_URL", "root@/project_eval")
	t.Setenv("PROJEVAL_DATABASE_DRIVER", "mysql")

	_, err := Load()
	require.ErrorContains(t, err, "unsupported database driver")
}

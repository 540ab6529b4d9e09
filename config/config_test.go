package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEnvDuration(t *testing.T) {
	require.Equal(t, time.Hour, envDuration("MISSING_DURATION", time.Hour))

	t.Setenv("TEST_DURATION", "30m")
	require.Equal(t, 30*time.Minute, envDuration("TEST_DURATION", time.Hour))

	t.Setenv("TEST_DURATION", "not a duration")
	require.Equal(t, time.Hour, envDuration("TEST_DURATION", time.Hour))
}

func TestEnvInt(t *testing.T) {
	require.Equal(t, 9, envInt("MISSING_INT", 9))

	t.Setenv("TEST_INT", "18")
	require.Equal(t, 18, envInt("TEST_INT", 9))

	t.Setenv("TEST_INT", "nine")
	require.Equal(t, 9, envInt("TEST_INT", 9))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, time.Hour, cfg.SessionSweepInterval)
	require.Equal(t, 9, cfg.OverdueHour)
	require.Equal(t, 18, cfg.UpcomingHour)
}

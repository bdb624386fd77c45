package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjalloh/campsite/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "campsite-reservation-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 3, cfg.Booking.MaxStayDays)
	assert.Equal(t, 30*time.Second, cfg.Booking.AvailabilityCacheTTL())
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOOKING_MAX_STAY_DAYS", "7")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Booking.MaxStayDays)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_RejectsNonPositiveMaxStay(t *testing.T) {
	t.Setenv("BOOKING_MAX_STAY_DAYS", "0")

	_, err := config.Load()

	assert.Error(t, err)
}

func TestAppConfig_RequestTimeout(t *testing.T) {
	app := config.AppConfig{RequestTimeoutSeconds: 15}
	assert.Equal(t, 15*time.Second, app.RequestTimeout())

	app.RequestTimeoutSeconds = 0
	assert.Equal(t, time.Duration(0), app.RequestTimeout())
}

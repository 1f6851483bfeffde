package container

import (
	"context"
	"testing"
	"time"

	"animeflix/catalog/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Jikan: config.JikanConfig{
			BaseURL:       "http://127.0.0.1:1/v4",
			Timeout:       1,
			ThrottleDelay: 350,
			PageSize:      12,
		},
		Log: config.LogConfig{Level: "warn", Format: "text"},
	}
}

func TestNew_WiresComponents(t *testing.T) {
	c, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	assert.NotNil(t, c.Client)
	assert.NotNil(t, c.Server)
	assert.Equal(t, 350*time.Millisecond, c.Throttle.Delay())
	assert.Equal(t, log.WarnLevel, log.GetLevel())
}

func TestNew_RejectsBadLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Log.Level = "loud"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	c, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSetupLogging_Formats(t *testing.T) {
	require.NoError(t, SetupLogging(config.LogConfig{Level: "debug", Format: "json"}))
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	require.NoError(t, SetupLogging(config.LogConfig{Level: "info"}))
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)

	assert.Error(t, SetupLogging(config.LogConfig{Level: "info", Format: "xml"}))
}

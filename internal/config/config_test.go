package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStageTimeouts(t *testing.T) {
	got, err := parseStageTimeouts("video=300s, ads=3m")
	require.NoError(t, err)
	assert.Equal(t, map[string]time.Duration{"video": 300 * time.Second, "ads": 3 * time.Minute}, got)

	got, err = parseStageTimeouts(map[string]interface{}{"images": "45s"})
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, got["images"])

	got, err = parseStageTimeouts(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseStageTimeouts("video")
	assert.Error(t, err)

	_, err = parseStageTimeouts("video=soon")
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("GENERATION_STAGE_TIMEOUTS", "video=5m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 120*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Generation.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Generation.StageTimeouts["video"])
	assert.Equal(t, "poll", cfg.Generation.WatchMode)
	assert.Empty(t, cfg.Webhook.URL)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

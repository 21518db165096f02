package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkrail/blinkrail/internal/config"
	"github.com/blinkrail/blinkrail/internal/session"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			Duration: 25 * time.Minute,
			ExtendBy: 5 * time.Minute,
		},
		Rewards: config.RewardsConfig{
			BonusThreshold:  60 * time.Minute,
			BonusMultiplier: 1.5,
			XPPerSpark:      10,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
		Log: config.LogConfig{
			Level: "info",
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)

	b, err := os.ReadFile(configPath)
	require.NoError(t, err, "failed to read config")

	assert.Contains(t, string(b), "duration: 25m")
	assert.Contains(t, string(b), "xp_per_spark: 10")

	// a second run reads the file that was just written
	again, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	modified := `session:
  duration: 50m
  extend_by: 10m
rewards:
  bonus_threshold: 90m
  bonus_multiplier: 2.0
  xp_per_spark: 5
notifications:
  enabled: false
display:
  24hr_clock: true
log:
  level: debug
`

	require.NoError(t, os.WriteFile(configPath, []byte(modified), 0o600))

	want := defaultConfig()
	want.Session.Duration = 50 * time.Minute
	want.Session.ExtendBy = 10 * time.Minute
	want.Rewards.BonusThreshold = 90 * time.Minute
	want.Rewards.BonusMultiplier = 2
	want.Rewards.XPPerSpark = 5
	want.Notifications.Enabled = false
	want.Display.TwentyFourHour = true
	want.Log.Level = "debug"

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
}

func TestInvalidConfigFileIsRejected(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, os.WriteFile(configPath, []byte("session:\n  duration: 13h\n"), 0o600))

	_, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session duration must be between")
}

func TestRewardPolicy(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, session.RewardPolicy{
		BonusThreshold:  60 * time.Minute,
		BonusMultiplier: 1.5,
		XPPerSpark:      10,
	}, cfg.RewardPolicy())
}

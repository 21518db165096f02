// Package config loads Blinkrail settings from the config file and the
// command line
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/blinkrail/blinkrail/internal/session"
)

type (
	// Config holds all configuration settings
	Config struct {
		Log           LogConfig          `mapstructure:"log"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Telemetry     TelemetryConfig    `mapstructure:"telemetry"`
		CLI           CLIConfig          `mapstructure:"-"`
		Session       SessionConfig      `mapstructure:"session"`
		Rewards       RewardsConfig      `mapstructure:"rewards"`
		Display       DisplayConfig      `mapstructure:"display"`
	}

	// SessionConfig holds focus session settings
	SessionConfig struct {
		Duration time.Duration `mapstructure:"duration"`
		ExtendBy time.Duration `mapstructure:"extend_by"`
	}

	// RewardsConfig holds the constants used to compute session rewards
	RewardsConfig struct {
		BonusThreshold  time.Duration `mapstructure:"bonus_threshold"`
		BonusMultiplier float64       `mapstructure:"bonus_multiplier"`
		XPPerSpark      int           `mapstructure:"xp_per_spark"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Sound   string `mapstructure:"sound"`
		Cmd     string `mapstructure:"cmd"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// TelemetryConfig holds the OpenTelemetry exporter settings
	TelemetryConfig struct {
		Endpoint string `mapstructure:"endpoint"`
		Enabled  bool   `mapstructure:"enabled"`
		Insecure bool   `mapstructure:"insecure"`
	}

	// LogConfig holds logging settings
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		Since   time.Time
		Until   time.Time
		NoColor bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config by applying each option in order and validating
// the result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// RewardPolicy converts the rewards settings for use by focus sessions.
func (c *Config) RewardPolicy() session.RewardPolicy {
	return session.RewardPolicy{
		BonusThreshold:  c.Rewards.BonusThreshold,
		BonusMultiplier: c.Rewards.BonusMultiplier,
		XPPerSpark:      c.Rewards.XPPerSpark,
	}
}

// String summarises the effective session settings for the log.
func (c *Config) String() string {
	return fmt.Sprintf(
		"duration=%s extend_by=%s notifications=%t telemetry=%t",
		c.Session.Duration,
		c.Session.ExtendBy,
		c.Notifications.Enabled,
		c.Telemetry.Enabled,
	)
}

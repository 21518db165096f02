package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keySessionDuration       = "session.duration"
	keySessionExtendBy       = "session.extend_by"
	keyRewardsBonusThreshold = "rewards.bonus_threshold"
	keyRewardsMultiplier     = "rewards.bonus_multiplier"
	keyRewardsXPPerSpark     = "rewards.xp_per_spark"
	keyNotificationsEnabled  = "notifications.enabled"
	keyNotificationsSound    = "notifications.sound"
	keyNotificationsCmd      = "notifications.cmd"
	keyDarkTheme             = "display.dark_theme"
	keyTwentyFourHour        = "display.24hr_clock"
	keyTelemetryEnabled      = "telemetry.enabled"
	keyTelemetryEndpoint     = "telemetry.endpoint"
	keyTelemetryInsecure     = "telemetry.insecure"
	keyLogLevel              = "log.level"
)

// WithViperConfig returns an Option that loads configuration from the file at
// configPath, writing the defaults there first if the file does not exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keySessionDuration, "25m")
	v.SetDefault(keySessionExtendBy, "5m")
	v.SetDefault(keyRewardsBonusThreshold, "60m")
	v.SetDefault(keyRewardsMultiplier, 1.5)
	v.SetDefault(keyRewardsXPPerSpark, 10)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyNotificationsSound, "")
	v.SetDefault(keyNotificationsCmd, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyTelemetryEnabled, false)
	v.SetDefault(keyTelemetryEndpoint, "")
	v.SetDefault(keyTelemetryInsecure, false)
	v.SetDefault(keyLogLevel, "info")

	// values answered in the first-run prompt
	if c.Session.Duration != 0 {
		v.Set(keySessionDuration, c.Session.Duration.String())
	}

	if c.Session.ExtendBy != 0 {
		v.Set(keySessionExtendBy, c.Session.ExtendBy.String())
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	return nil
}

// parseDuration parses duration strings, treating a bare number as minutes.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, errInvalidCLIDuration.Fmt(s)
	}

	return mins, nil
}

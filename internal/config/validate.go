package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/blinkrail/blinkrail/internal/logging"
	"github.com/blinkrail/blinkrail/internal/notify"
	"github.com/blinkrail/blinkrail/internal/session"
)

var (
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	minExtension = 1 * time.Minute
	maxExtension = 120 * time.Minute

	minBonusThreshold = session.MinBonusThreshold
	maxBonusThreshold = maxSessionDuration
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateRange(
		"session duration",
		c.Session.Duration,
		minSessionDuration,
		maxSessionDuration,
	); err != nil {
		return err
	}

	if err := validateRange(
		"session extension",
		c.Session.ExtendBy,
		minExtension,
		maxExtension,
	); err != nil {
		return err
	}

	if err := c.validateRewards(); err != nil {
		return err
	}

	if c.Notifications.Sound != "" {
		if err := validateSound(c.Notifications.Sound); err != nil {
			return err
		}
	}

	if c.Telemetry.Enabled && strings.TrimSpace(c.Telemetry.Endpoint) == "" {
		return errMissingEndpoint
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

func validateRange(name string, d, lower, upper time.Duration) error {
	if d < lower || d > upper {
		return errInvalidDuration.Fmt(name, lower, upper)
	}

	return nil
}

func (c *Config) validateRewards() error {
	if err := validateRange(
		"bonus threshold",
		c.Rewards.BonusThreshold,
		minBonusThreshold,
		maxBonusThreshold,
	); err != nil {
		return err
	}

	if c.Rewards.BonusMultiplier <= 1 {
		return errInvalidMultiplier.Fmt(c.Rewards.BonusMultiplier)
	}

	if c.Rewards.XPPerSpark <= 0 {
		return errInvalidXP.Fmt(c.Rewards.XPPerSpark)
	}

	return nil
}

// validateSound checks that a notification sound is an existing audio file in
// a supported format.
func validateSound(sound string) error {
	ext := strings.ToLower(filepath.Ext(sound))

	if !slices.Contains(notify.SoundFormats, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	_, err := os.Stat(sound)
	if errors.Is(err, os.ErrNotExist) {
		return errUnknownSound.Fmt(sound)
	}

	return err
}

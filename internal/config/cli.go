package config

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/blinkrail/blinkrail/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Duration      string
	ExtendBy      string
	Sound         string
	SessionCmd    string
	Since         string
	Until         string
	DisableNotify bool
	NoColor       bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Duration:      ctx.String("duration"),
			ExtendBy:      ctx.String("extend-by"),
			Sound:         ctx.String("sound"),
			SessionCmd:    ctx.String("session-cmd"),
			Since:         ctx.String("since"),
			Until:         ctx.String("until"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoColor:       ctx.Bool("no-color"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if opts.Duration != "" {
		dur, err := parseDuration(opts.Duration)
		if err != nil {
			return err
		}

		c.Session.Duration = dur
	}

	if opts.ExtendBy != "" {
		dur, err := parseDuration(opts.ExtendBy)
		if err != nil {
			return err
		}

		c.Session.ExtendBy = dur
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Sound != "" {
		if opts.Sound == "off" {
			c.Notifications.Sound = ""
		} else {
			c.Notifications.Sound = opts.Sound
		}
	}

	if opts.SessionCmd != "" {
		c.Notifications.Cmd = opts.SessionCmd
	}

	c.CLI.NoColor = opts.NoColor

	return applyCLIDates(c, opts, now)
}

// applyCLIDates parses the --since and --until reporting bounds.
func applyCLIDates(c *Config, opts CLIOptions, now time.Time) error {
	if opts.Since != "" {
		since, err := timeutil.FromStr(opts.Since, now)
		if err != nil {
			return err
		}

		c.CLI.Since = since
	}

	if opts.Until != "" {
		until, err := timeutil.FromStr(opts.Until, now)
		if err != nil {
			return err
		}

		c.CLI.Until = until
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
 ____  _ _       _              _ _
| __ )| (_)_ __ | | ___ __ __ _(_) |
|  _ \| | | '_ \| |/ / '__/ _' | | |
| |_) | | | | | |   <| | | (_| | | |
|____/|_|_|_| |_|_|\_\_|  \__,_|_|_|`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	SessionMinutes int
	ExtendMinutes  int
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts the first time Blinkrail runs in a terminal.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if !isTerminal(os.Stdin) {
			return nil
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return fi.Mode()&os.ModeCharDevice != 0
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Blinkrail for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'blinkrail edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Focus session length").
				Options(
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("35 minutes", 35),
					huh.NewOption("50 minutes", 50),
					huh.NewOption("60 minutes (bonus sparks)", 60),
					huh.NewOption("90 minutes (bonus sparks)", 90),
				).
				Value(&opts.SessionMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Extend a running session by").
				Options(
					huh.NewOption("5 minutes", 5).Selected(true),
					huh.NewOption("10 minutes", 10),
					huh.NewOption("15 minutes", 15),
				).
				Value(&opts.ExtendMinutes),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Session.Duration = time.Duration(opts.SessionMinutes) * time.Minute
	c.Session.ExtendBy = time.Duration(opts.ExtendMinutes) * time.Minute
}

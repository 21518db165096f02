// Package app defines the Blinkrail command-line interface
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/blinkrail/blinkrail/internal/config"
)

// Get retrieves the blinkrail app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "blinkrail",
		Usage: `
		Blinkrail is a focus timer for the command-line. Every completed session
		earns focus sparks and experience points, with a bonus for deep focus
		sessions of an hour or more.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "resume",
				Usage:  "Resume a paused session",
				Flags:  append([]cli.Flag{selectFlag}, sessionFlags...),
				Action: resumeAction,
			},
			{
				Name:   "status",
				Usage:  "List the paused sessions that can be resumed",
				Action: statusAction,
			},
			{
				Name:   "list",
				Usage:  "List the sessions completed within a period",
				Flags:  reportFlags,
				Action: listAction,
			},
			{
				Name: "stats",
				Usage: `
				Summarise the rewards earned within a period. Defaults to a 
				reporting period of 7 days`,
				Flags:  reportFlags,
				Action: statsAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: append(
			[]cli.Flag{durationFlag, noColorFlag},
			sessionFlags...,
		),
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}

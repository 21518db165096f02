package app

import (
	"github.com/urfave/cli/v2"

	"github.com/blinkrail/blinkrail/internal/timeutil"
)

var (
	durationFlag = &cli.StringFlag{
		Name:    "duration",
		Aliases: []string{"t"},
		Usage:   "Length of the focus session (e.g. 25m, 1h30m or a number of minutes)",
	}

	extendByFlag = &cli.StringFlag{
		Name:    "extend-by",
		Aliases: []string{"e"},
		Usage:   "How much time the extend key adds to a running session",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the desktop notification and sound that follow a completed session",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Path to an mp3, ogg, flac or wav file to play when a session completes. Disable sound by setting to 'off'",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each completed session",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	selectFlag = &cli.BoolFlag{
		Name:    "select",
		Aliases: []string{"s"},
		Usage:   "Choose which paused session to resume",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period. One of: all-time, today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days",
		Value:   string(timeutil.Period7Days),
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Start of the reporting period (e.g. '2024-03-01' or '3 days ago'). Overrides --period",
	}

	untilFlag = &cli.StringFlag{
		Name:  "until",
		Usage: "End of the reporting period (e.g. 'yesterday'). Overrides --period",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print machine readable JSON instead of a table",
	}
)

// sessionFlags are accepted by every command that runs a session.
var sessionFlags = []cli.Flag{
	extendByFlag,
	disableNotificationFlag,
	soundFlag,
	sessionCmdFlag,
}

// reportFlags are accepted by the reporting commands.
var reportFlags = []cli.Flag{
	periodFlag,
	sinceFlag,
	untilFlag,
	jsonFlag,
}

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/huh"
	json "github.com/goccy/go-json"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/blinkrail/blinkrail/internal/apperr"
	"github.com/blinkrail/blinkrail/internal/config"
	"github.com/blinkrail/blinkrail/internal/ledger"
	"github.com/blinkrail/blinkrail/internal/notify"
	"github.com/blinkrail/blinkrail/internal/osutil"
	"github.com/blinkrail/blinkrail/internal/pathutil"
	"github.com/blinkrail/blinkrail/internal/report"
	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/store"
	"github.com/blinkrail/blinkrail/internal/timer"
	"github.com/blinkrail/blinkrail/internal/timeutil"
	"github.com/blinkrail/blinkrail/internal/ui"
)

const (
	envNoColor          = "NO_COLOR"
	envBlinkrailNoColor = "BLINKRAIL_NO_COLOR"

	topReasons = 5
)

var errInvalidRange = &apperr.Error{
	Message: "the start of the reporting period (%s) is after its end (%s)",
}

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// pickSession chooses the session that the timer will drive. The options
// attach the notifier and reward policy.
type pickSession func(db store.DB, opts ...session.Option) (*session.Session, error)

// runSession opens the stores, wires the notifier, metrics and ledger around
// the picked session and blocks until the timer exits.
func runSession(ctx *cli.Context, cfg *config.Config, pick pickSession) error {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	l, err := ledger.Open(pathutil.LedgerFilePath())
	if err != nil {
		return err
	}

	defer l.Close()

	recorder := newRecorder(ctx.Context, cfg)
	defer closeRecorder(recorder)

	dispatcher := notify.NewDispatcher(ctx.Context, notificationSinks(cfg)...)
	// let the notifications finish before the process exits
	defer dispatcher.Wait()

	sess, err := pick(
		db,
		session.WithNotifier(dispatcher),
		session.WithRewardPolicy(cfg.RewardPolicy()),
	)
	if err != nil {
		return err
	}

	t := timer.New(ctx.Context, sess, db, l, recorder, timer.Options{
		ExtendBy:       cfg.Session.ExtendBy,
		DarkTheme:      cfg.Display.DarkTheme,
		TwentyFourHour: cfg.Display.TwentyFourHour,
	})

	err = timer.Run(ctx.Context, t)
	if err != nil {
		return err
	}

	return t.Err()
}

// defaultAction starts a new focus session.
func defaultAction(ctx *cli.Context) error {
	cfg, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}

	defer cleanup()

	return runSession(ctx, cfg, func(_ store.DB, opts ...session.Option) (*session.Session, error) {
		return session.New(cfg.Session.Duration, opts...), nil
	})
}

// resumeAction handles the resume command and continues the most recently
// started paused session, or the one the user selects.
func resumeAction(ctx *cli.Context) error {
	cfg, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}

	defer cleanup()

	return runSession(ctx, cfg, func(db store.DB, opts ...session.Option) (*session.Session, error) {
		sessions, err := db.PausedSessions(opts...)
		if err != nil {
			return nil, err
		}

		if !ctx.Bool("select") || len(sessions) == 1 {
			return sessions[0], nil
		}

		return selectPausedSession(sessions)
	})
}

// selectPausedSession prompts the user to choose from the resumable sessions.
func selectPausedSession(sessions []*session.Session) (*session.Session, error) {
	options := make([]huh.Option[int], len(sessions))

	for i, s := range sessions {
		options[i] = huh.NewOption(pausedLabel(s), i)
	}

	var choice int

	err := huh.NewSelect[int]().
		Title("Which session do you want to resume?").
		Options(options...).
		Value(&choice).
		Run()
	if err != nil {
		return nil, err
	}

	return sessions[choice], nil
}

// statusAction handles the status command and prints the paused sessions.
func statusAction(ctx *cli.Context) error {
	_, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}

	defer cleanup()

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	sessions, err := db.PausedSessions()
	if errors.Is(err, store.ErrNoPausedSession) {
		report.Info(noPausedMsg)
		return nil
	}

	if err != nil {
		return err
	}

	return printPausedTable(config.Stdout, sessions)
}

// reportBounds works out the reporting period from --period, --since and
// --until.
func reportBounds(
	ctx *cli.Context,
	cfg *config.Config,
	now time.Time,
) (since, until time.Time, err error) {
	p, err := timeutil.ParsePeriod(ctx.String("period"))
	if err != nil {
		return since, until, err
	}

	since, until = timeutil.Bounds(p, now)

	if !cfg.CLI.Since.IsZero() {
		since = cfg.CLI.Since
	}

	if !cfg.CLI.Until.IsZero() {
		until = cfg.CLI.Until
	}

	if since.After(until) {
		return since, until, errInvalidRange.Fmt(
			since.Format(time.DateTime),
			until.Format(time.DateTime),
		)
	}

	return since, until, nil
}

// listAction handles the list command and prints the sessions completed
// within a period.
func listAction(ctx *cli.Context) error {
	cfg, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}

	defer cleanup()

	since, until, err := reportBounds(ctx, cfg, time.Now())
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	sessions, err := db.GetSessions(
		since,
		until,
		session.WithRewardPolicy(cfg.RewardPolicy()),
	)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(listEntries(sessions))
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if len(sessions) == 0 {
		report.Info(noSessionsMsg)
		return nil
	}

	return printSessionsTable(config.Stdout, sessions)
}

// Stats is the summary printed by the stats command.
type Stats struct {
	Since   time.Time       `json:"since"`
	Until   time.Time       `json:"until"`
	Daily   []ledger.Day    `json:"daily"`
	Reasons []ledger.Reason `json:"top_interruptions"`
	Totals  ledger.Totals   `json:"totals"`
}

// statsAction computes the rewards summary for the specified time period.
func statsAction(ctx *cli.Context) error {
	cfg, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}

	defer cleanup()

	since, until, err := reportBounds(ctx, cfg, time.Now())
	if err != nil {
		return err
	}

	l, err := ledger.Open(pathutil.LedgerFilePath())
	if err != nil {
		return err
	}

	defer l.Close()

	s := Stats{
		Since: since,
		Until: until,
	}

	s.Totals, err = l.Totals(ctx.Context, since, until)
	if err != nil {
		return err
	}

	s.Daily, err = l.Daily(ctx.Context, since, until)
	if err != nil {
		return err
	}

	s.Reasons, err = l.Reasons(ctx.Context, since, until, topReasons)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	return printStats(config.Stdout, &s)
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	_, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}

	defer cleanup()

	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		ui.DisableStyling()
	}

	// Disable colour output if BLINKRAIL_NO_COLOR is set
	if _, exists := os.LookupEnv(envBlinkrailNoColor); exists {
		ui.DisableStyling()
	}

	if ctx.Bool("no-color") {
		ui.DisableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting blinkrail")

	return nil
}

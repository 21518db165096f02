package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/blinkrail/blinkrail/internal/config"
	"github.com/blinkrail/blinkrail/internal/logging"
	"github.com/blinkrail/blinkrail/internal/metrics"
	"github.com/blinkrail/blinkrail/internal/notify"
	"github.com/blinkrail/blinkrail/internal/pathutil"
	"github.com/blinkrail/blinkrail/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// setup loads the configuration and installs the application log. The
// returned function releases the log file.
func setup(ctx *cli.Context) (*config.Config, func(), error) {
	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, nil, err
	}

	closer, err := logging.Init(pathutil.LogFilePath(), cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	if cfg.CLI.NoColor {
		ui.DisableStyling()
	}

	command := "start"
	if ctx.Command != nil && ctx.Command.Name != "" {
		command = ctx.Command.Name
	}

	slog.InfoContext(
		ctx.Context,
		"configuration loaded",
		slog.String("command", command),
		slog.String("config", cfg.String()),
	)

	return cfg, func() {
		_ = closer.Close()
	}, nil
}

// notificationSinks returns the sinks enabled in the configuration. The
// session command runs even when notifications are disabled.
func notificationSinks(cfg *config.Config) []notify.Sink {
	var sinks []notify.Sink

	if cfg.Notifications.Enabled {
		sinks = append(sinks, notify.NewDesktop(pathutil.Dir()))

		if cfg.Notifications.Sound != "" {
			sinks = append(sinks, &notify.Sound{Path: cfg.Notifications.Sound})
		}
	}

	if cfg.Notifications.Cmd != "" {
		sinks = append(sinks, &notify.Command{Line: cfg.Notifications.Cmd})
	}

	return sinks
}

// newRecorder returns the metrics exporter when telemetry is enabled. A
// collector that cannot be reached never stops a session from running.
func newRecorder(ctx context.Context, cfg *config.Config) metrics.Recorder {
	if !cfg.Telemetry.Enabled {
		return metrics.NoOp{}
	}

	e, err := metrics.New(ctx, metrics.Config{
		Endpoint: cfg.Telemetry.Endpoint,
		Version:  config.Version,
		Enabled:  cfg.Telemetry.Enabled,
		Insecure: cfg.Telemetry.Insecure,
	})
	if err != nil {
		slog.WarnContext(
			ctx,
			"telemetry disabled",
			slog.Any("error", err),
		)

		return metrics.NoOp{}
	}

	return e
}

func closeRecorder(r metrics.Recorder) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := r.Close(ctx)
	if err != nil {
		slog.Warn("unable to flush metrics", slog.Any("error", err))
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/blinkrail/blinkrail/internal/app"
	"github.com/blinkrail/blinkrail/internal/pathutil"
	"github.com/blinkrail/blinkrail/internal/report"
	"github.com/blinkrail/blinkrail/internal/static"
)

func run(ctx context.Context, args []string) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	if err := static.Install(pathutil.Dir()); err != nil {
		report.Error(err)
	}

	return app.Get().RunContext(ctx, args)
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	err := run(ctx, os.Args)

	stop()

	if err != nil {
		report.Quit(err)
	}
}

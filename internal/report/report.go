// Package report prints user facing messages and errors
package report

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/blinkrail/blinkrail/internal/osutil"
)

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(int(osutil.ExitError))
}

func Info(format string, a ...any) {
	pterm.Info.Printfln(format, a...)
}

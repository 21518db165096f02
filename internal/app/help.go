package app

import (
	"fmt"
	"strings"

	"github.com/blinkrail/blinkrail/internal/timeutil"
	"github.com/blinkrail/blinkrail/internal/ui"
)

// timerKeys mirrors the key bindings of the session screen.
var timerKeys = [][2]string{
	{"p, space", "pause or resume the session"},
	{"i", "log what interrupted you"},
	{"e", "extend the session by session.extend_by"},
	{"c", "complete the session now"},
	{"q, ctrl+c", "save the session for later and quit"},
}

// helpText renders the urfave/cli help template for the root command.
func helpText() string {
	var b strings.Builder

	section := func(title string) {
		b.WriteString(ui.Yellow(title) + "\n")
	}

	section("BLINKRAIL")
	b.WriteString("\t\t{{.Usage}}\n\n")

	section("USAGE")
	b.WriteString("\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}\n\n")

	section("COMMANDS")
	fmt.Fprintf(
		&b,
		"{{range .Commands}}{{if not .HideHelp}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}\n\n",
		ui.Green("{{join .Names `, `}}"),
	)

	section("OPTIONS")
	fmt.Fprintf(
		&b,
		"{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}%s,{{end}}{{end}} %s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		ui.Green("-{{$element}}"),
		ui.Green("--{{.Name}} {{.DefaultText}}"),
	)

	section("SESSION KEYS")

	for _, k := range timerKeys {
		fmt.Fprintf(&b, "\t\t%-12s %s\n", ui.Blue(k[0]), k[1])
	}

	b.WriteString("\n")

	section("REPORTING PERIODS")

	periods := make([]string, len(timeutil.PeriodCollection))
	for i, p := range timeutil.PeriodCollection {
		periods[i] = string(p)
	}

	fmt.Fprintf(
		&b,
		"\t\t%s\n\t\t--since and --until also accept dates such as '2024-03-01' or '3 days ago'\n\n",
		strings.Join(periods, ", "),
	)

	section("ENVIRONMENT")
	b.WriteString(envHelp() + "\n\n")

	b.WriteString("{{if .Version}}" + ui.Yellow("VERSION") + "\n\t\t{{.Version}}{{end}}\n")

	return b.String()
}

func envHelp() string {
	return `		BLINKRAIL_NO_COLOR, NO_COLOR
				set to any value to print without colours
		BLINKRAIL_ENV
				keep a separate config file, database, ledger and log for the
				named environment (e.g. BLINKRAIL_ENV=test)`
}

package timer

import "github.com/charmbracelet/lipgloss"

const (
	padding  = 2
	maxWidth = 80
)

type style struct {
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	active    lipgloss.Style
	paused    lipgloss.Style
	reward    lipgloss.Style
	bonus     lipgloss.Style
	err       lipgloss.Style
}

func newStyle(dark bool) style {
	var (
		text   = lipgloss.Color("#1F2937")
		muted  = lipgloss.Color("#6B7280")
		green  = lipgloss.Color("#15803D")
		yellow = lipgloss.Color("#B45309")
		purple = lipgloss.Color("#6D28D9")
		red    = lipgloss.Color("#B91C1C")
	)

	if dark {
		text = lipgloss.Color("#F9FAFB")
		muted = lipgloss.Color("#9CA3AF")
		green = lipgloss.Color("#4ADE80")
		yellow = lipgloss.Color("#FACC15")
		purple = lipgloss.Color("#C084FC")
		red = lipgloss.Color("#F87171")
	}

	badge := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		MarginRight(1).
		Foreground(lipgloss.Color("#111827"))

	return style{
		base:      lipgloss.NewStyle().Padding(1, padding),
		main:      lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary: lipgloss.NewStyle().Foreground(text),
		hint:      lipgloss.NewStyle().Foreground(muted),
		active:    badge.Background(green),
		paused:    badge.Background(yellow),
		reward:    lipgloss.NewStyle().Bold(true).Foreground(purple),
		bonus:     lipgloss.NewStyle().Italic(true).Foreground(yellow),
		err:       lipgloss.NewStyle().Foreground(red),
	}
}

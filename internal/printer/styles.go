package printer

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	freeColor    = lipgloss.Color("#04B575")
	ownedColor   = lipgloss.Color("#00D7FF")
	mutedColor   = lipgloss.Color("#666666")
)

// styles holds the renderers for each kind of table cell. All of them are
// identity functions when color is off.
type styles struct {
	header func(...string) string
	rule   func(...string) string
	free   func(...string) string
	owned  func(...string) string
}

func plain(strs ...string) string { return strings.Join(strs, " ") }

func newStyles(w io.Writer, mode ColorMode) styles {
	if mode == ColorNever {
		return styles{header: plain, rule: plain, free: plain, owned: plain}
	}

	r := lipgloss.NewRenderer(w)
	if mode == ColorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}

	return styles{
		header: r.NewStyle().Bold(true).Foreground(primaryColor).Render,
		rule:   r.NewStyle().Foreground(mutedColor).Render,
		free:   r.NewStyle().Foreground(freeColor).Render,
		owned:  r.NewStyle().Foreground(ownedColor).Bold(true).Render,
	}
}

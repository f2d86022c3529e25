package ui

import "github.com/charmbracelet/lipgloss"

// Accent is the brand color shared by both palettes.
const Accent = lipgloss.Color("#6C63FF")

type palette struct {
	text  lipgloss.Color
	muted lipgloss.Color
	done  lipgloss.Color
	err   lipgloss.Color
}

var (
	lightPalette = palette{
		text:  lipgloss.Color("#212121"),
		muted: lipgloss.Color("#616161"),
		done:  lipgloss.Color("#9E9E9E"),
		err:   lipgloss.Color("#C62828"),
	}
	darkPalette = palette{
		text:  lipgloss.Color("#F5F5F5"),
		muted: lipgloss.Color("#9E9E9E"),
		done:  lipgloss.Color("#757575"),
		err:   lipgloss.Color("#EF9A9A"),
	}
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	task     lipgloss.Style
	done     lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	prompt   lipgloss.Style
	errText  lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		title:    lipgloss.NewStyle().Foreground(Accent).Bold(true),
		header:   lipgloss.NewStyle().Foreground(p.muted).Bold(true),
		task:     lipgloss.NewStyle().Foreground(p.text),
		done:     lipgloss.NewStyle().Foreground(p.done).Strikethrough(true),
		selected: lipgloss.NewStyle().Foreground(Accent).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		prompt:   lipgloss.NewStyle().Foreground(Accent),
		errText:  lipgloss.NewStyle().Foreground(p.err),
	}
}

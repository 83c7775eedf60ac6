package console

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/coda"
)

// Styles maps a Theme to lipgloss styles for line-mode output.
type Styles struct {
	Prompt  lipgloss.Style
	Speaker lipgloss.Style
	Status  lipgloss.Style
	Title   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates Styles from a Theme, bound to lr so color output follows
// the capabilities of lr's writer.
func NewStyles(lr *lipgloss.Renderer, t coda.Theme) Styles {
	return Styles{
		Prompt:  lr.NewStyle().Foreground(ansiColor(t.Prompt)).Bold(true),
		Speaker: lr.NewStyle().Foreground(ansiColor(t.Speaker)).Bold(true),
		Status:  lr.NewStyle().Foreground(ansiColor(t.Status)),
		Title:   lr.NewStyle().Foreground(ansiColor(t.Status)).Bold(true),
		Warning: lr.NewStyle().Foreground(ansiColor(t.Warning)).Bold(true),
		Error:   lr.NewStyle().Foreground(ansiColor(t.Error)).Bold(true),
		Success: lr.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lr.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Package components provides shared TUI building blocks.
package components

import (
	"github.com/Dicklesworthstone/agentsense/internal/tui/theme"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerStyle selects the spinner animation.
type SpinnerStyle int

const (
	SpinnerStyleDots SpinnerStyle = iota
	SpinnerStyleLine
	SpinnerStylePulse
)

// NewSpinner creates a spinner with the given style, colored from the
// active theme.
func NewSpinner(style SpinnerStyle) spinner.Model {
	s := spinner.New()
	switch style {
	case SpinnerStyleLine:
		s.Spinner = spinner.Line
	case SpinnerStylePulse:
		s.Spinner = spinner.Pulse
	default:
		s.Spinner = spinner.Dot
	}

	t := theme.Current
	s.Style = lipgloss.NewStyle().Foreground(t.Mauve)
	return s
}

// ScanningSpinner is the spinner shown while a detection pass is pending.
func ScanningSpinner() spinner.Model {
	s := NewSpinner(SpinnerStyleDots)
	t := theme.Current
	s.Style = lipgloss.NewStyle().Foreground(t.Blue)
	return s
}

// SpinnerWithLabel renders a spinner next to a label.
func SpinnerWithLabel(s spinner.Model, label string) string {
	t := theme.Current
	labelStyle := lipgloss.NewStyle().Foreground(t.Text)
	return s.View() + " " + labelStyle.Render(label)
}

// Package tui runs the agentsense watch dashboard, built on Bubble Tea
// with Bubbles and Lip Gloss.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/notify"
	"github.com/Dicklesworthstone/agentsense/internal/tui/dashboard"
	"github.com/Dicklesworthstone/agentsense/internal/tui/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Options configures the watch dashboard.
type Options struct {
	// Registry is the effective registry to scan. Required.
	Registry *agentsense.Registry
	// ConfigPath, when non-empty, is watched for changes; edits rebuild
	// the registry without restarting the dashboard.
	ConfigPath string
	// Theme overrides the color flavor (mocha, macchiato, frappe, latte).
	Theme string
	// DisableMouse turns off mouse support.
	DisableMouse bool
	// RefreshInterval is the polling interval in seconds.
	RefreshInterval int
	// Notify enables desktop notifications on detection changes.
	Notify bool
	// Logger receives watcher and notification diagnostics.
	Logger *log.Logger
}

// RunWithOptions starts the dashboard and blocks until the user quits.
func RunWithOptions(opts Options) error {
	if opts.Registry == nil {
		return fmt.Errorf("no registry configured")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Theme != "" {
		if !theme.Valid(theme.FlavorName(opts.Theme)) {
			return fmt.Errorf("unknown theme %q (want mocha, macchiato, frappe, or latte)", opts.Theme)
		}
		theme.SetTheme(theme.FlavorName(opts.Theme))
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 2
	}

	var notifier notify.Notifier
	if opts.Notify {
		notifier = notify.Func(notify.Desktop)
	}

	model := dashboard.New(dashboard.Options{
		Registry: opts.Registry,
		Interval: time.Duration(opts.RefreshInterval) * time.Second,
		Notifier: notifier,
		Logger:   opts.Logger,
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if !opts.DisableMouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, progOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.ConfigPath != "" {
		go func() {
			err := WatchConfig(ctx, opts.ConfigPath, opts.Logger, func(reg *agentsense.Registry) {
				p.Send(dashboard.ReloadMsg{Registry: reg})
			})
			if err != nil {
				opts.Logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

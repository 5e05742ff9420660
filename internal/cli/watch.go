package cli

import (
	"fmt"

	"github.com/Dicklesworthstone/agentsense/internal/config"
	"github.com/Dicklesworthstone/agentsense/internal/tui"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		flagInterval int
		flagNotify   bool
		flagNoMouse  bool
		flagTheme    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard that re-runs detection on a ticker",
		Long: `Open a dashboard that re-runs detection on a ticker and shows the
current result, the evidence behind it, and the effective registry.

Edits to the config file take effect immediately; the registry is
rebuilt in place without restarting the dashboard. With --notify a
desktop notification fires whenever the detected tool changes.

Key bindings:
  tab        switch between panels
  j/k        move within the registry panel
  r          force a rescan
  q          quit

Theme options: mocha (default), macchiato, frappe, latte

Examples:
  agentsense watch
  agentsense watch --interval 5 --notify
  agentsense watch --theme latte`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			reg, err := cfg.BuildRegistry()
			if err != nil {
				return err
			}

			interval := cfg.Watch.IntervalSecs
			if cmd.Flags().Changed("interval") {
				interval = flagInterval
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %d", interval)
			}
			notifyOn := cfg.Watch.Notify || flagNotify
			theme := cfg.Watch.Theme
			if flagTheme != "" {
				theme = flagTheme
			}

			configPath, err := config.Path()
			if err != nil {
				return err
			}

			return tui.RunWithOptions(tui.Options{
				Registry:        reg,
				ConfigPath:      configPath,
				Theme:           theme,
				DisableMouse:    flagNoMouse,
				RefreshInterval: interval,
				Notify:          notifyOn,
				Logger:          log.Default(),
			})
		},
	}

	cmd.Flags().IntVar(&flagInterval, "interval", 2, "seconds between detection passes")
	cmd.Flags().BoolVar(&flagNotify, "notify", false, "send a desktop notification when the detected tool changes")
	cmd.Flags().BoolVar(&flagNoMouse, "no-mouse", false, "disable mouse support")
	cmd.Flags().StringVar(&flagTheme, "theme", "", "override theme (mocha, macchiato, frappe, latte)")

	return cmd
}

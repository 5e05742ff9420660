// Package theme provides the Catppuccin color flavors used by the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// FlavorName identifies a color flavor.
type FlavorName string

const (
	FlavorMocha     FlavorName = "mocha"
	FlavorMacchiato FlavorName = "macchiato"
	FlavorFrappe    FlavorName = "frappe"
	FlavorLatte     FlavorName = "latte"
)

// Theme is one resolved color palette.
type Theme struct {
	Mauve    lipgloss.Color
	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Teal     lipgloss.Color
	Blue     lipgloss.Color
	Lavender lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Overlay0 lipgloss.Color
	Surface  lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Base     lipgloss.Color
}

var flavors = map[FlavorName]Theme{
	FlavorMocha: {
		Mauve: "#cba6f7", Red: "#f38ba8", Peach: "#fab387", Yellow: "#f9e2af",
		Green: "#a6e3a1", Teal: "#94e2d5", Blue: "#89b4fa", Lavender: "#b4befe",
		Text: "#cdd6f4", Subtext0: "#a6adc8", Overlay0: "#6c7086",
		Surface: "#181825", Surface0: "#313244", Surface1: "#45475a", Base: "#1e1e2e",
	},
	FlavorMacchiato: {
		Mauve: "#c6a0f6", Red: "#ed8796", Peach: "#f5a97f", Yellow: "#eed49f",
		Green: "#a6da95", Teal: "#8bd5ca", Blue: "#8aadf4", Lavender: "#b7bdf8",
		Text: "#cad3f5", Subtext0: "#a5adcb", Overlay0: "#6e738d",
		Surface: "#1e2030", Surface0: "#363a4f", Surface1: "#494d64", Base: "#24273a",
	},
	FlavorFrappe: {
		Mauve: "#ca9ee6", Red: "#e78284", Peach: "#ef9f76", Yellow: "#e5c890",
		Green: "#a6d189", Teal: "#81c8be", Blue: "#8caaee", Lavender: "#babbf1",
		Text: "#c6d0f5", Subtext0: "#a5adce", Overlay0: "#737994",
		Surface: "#292c3c", Surface0: "#414559", Surface1: "#51576d", Base: "#303446",
	},
	FlavorLatte: {
		Mauve: "#8839ef", Red: "#d20f39", Peach: "#fe640b", Yellow: "#df8e1d",
		Green: "#40a02b", Teal: "#179299", Blue: "#1e66f5", Lavender: "#7287fd",
		Text: "#4c4f69", Subtext0: "#6c6f85", Overlay0: "#9ca0b0",
		Surface: "#e6e9ef", Surface0: "#ccd0da", Surface1: "#bcc0cc", Base: "#eff1f5",
	},
}

// Current is the active theme. Mocha is the default.
var Current = flavors[FlavorMocha]

// SetTheme switches the active theme. Unknown names keep the current one.
func SetTheme(name FlavorName) {
	if t, ok := flavors[name]; ok {
		Current = t
	}
}

// Valid returns true if name is a known flavor.
func Valid(name FlavorName) bool {
	_, ok := flavors[name]
	return ok
}

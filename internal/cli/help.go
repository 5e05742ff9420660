package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Catppuccin Mocha accents used by the quick reference.
const (
	colorMauve   = lipgloss.Color("#cba6f7")
	colorBlue    = lipgloss.Color("#89b4fa")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorRed     = lipgloss.Color("#f38ba8")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorOverlay = lipgloss.Color("#6c7086")
)

func newQuickRefCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "ref",
		Short:  "Show the one-screen quick reference",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			showQuickReference()
		},
	}
}

// clampWidth keeps the reference readable on very narrow or very wide
// terminals.
func clampWidth(w int) int {
	if w < 72 {
		return 72
	}
	if w > 100 {
		return 100
	}
	return w
}

// detectWidth resolves the terminal width: COLUMNS first, then the
// terminal itself, then 80.
func detectWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// supportsUnicode guesses whether the terminal renders non-ASCII glyphs.
func supportsUnicode() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	for _, v := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		val := strings.ToLower(os.Getenv(v))
		if strings.Contains(val, "utf-8") || strings.Contains(val, "utf8") {
			return true
		}
	}
	return false
}

// gradientText colors each rune from a palette, cycling when the text is
// longer than the palette.
func gradientText(text string, colors []lipgloss.Color) string {
	if len(colors) == 0 {
		return text
	}
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		style := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// bullet renders one command/description pair.
func bullet(command, description string) string {
	cmdStyle := lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(colorSubtext)
	return fmt.Sprintf("  %s  %s", cmdStyle.Render(fmt.Sprintf("%-34s", command)), descStyle.Render(description))
}

// renderSection renders a titled block of lines.
func renderSection(unicode bool, title string, lines []string) string {
	if !unicode {
		title = stripNonASCII(title)
	}
	titleStyle := lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func stripNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// categoryLegend explains the three detection categories.
func categoryLegend(unicode bool) string {
	mark := func(glyph, fallback string, color lipgloss.Color) string {
		s := glyph
		if !unicode {
			s = fallback
		}
		return lipgloss.NewStyle().Foreground(color).Render(s)
	}
	lines := []string{
		fmt.Sprintf("  %s agent        autonomous tool drives the process", mark("●", "*", colorRed)),
		fmt.Sprintf("  %s interactive  AI features in a human session", mark("●", "*", colorBlue)),
		fmt.Sprintf("  %s hybrid       both modes", mark("●", "*", colorMauve)),
	}
	return renderSection(unicode, "◆ Categories", lines)
}

// flagLegend lists the detection flags.
func flagLegend(unicode bool) string {
	lines := []string{
		bullet("--format json|text", "output encoding"),
		bullet("--check agent|interactive|hybrid", "exit 0 only for this category"),
		bullet("--quiet", "exit code only"),
		bullet("--debug", "result + environment + ancestry"),
	}
	return renderSection(unicode, "◆ Flags", lines)
}

// footerLegend shows the exit-code contract.
func footerLegend(unicode bool) string {
	style := lipgloss.NewStyle().Foreground(colorOverlay)
	sep := " · "
	if !unicode {
		sep = " | "
	}
	return style.Render("exit 0: detected" + sep + "exit 1: not detected or check failed")
}

// showQuickReference prints a one-screen summary of the CLI.
func showQuickReference() {
	unicode := supportsUnicode()
	width := clampWidth(detectWidth())

	title := "agentsense"
	if unicode {
		title = gradientText(title, []lipgloss.Color{colorMauve, colorBlue, colorGreen})
	}
	fmt.Println(lipgloss.NewStyle().Width(width).Render(title))
	fmt.Println()

	fmt.Print(renderSection(unicode, "◆ Commands", []string{
		bullet("agentsense", "detect and describe the hosting tool"),
		bullet("agentsense signatures", "list the registry in priority order"),
		bullet("agentsense watch", "live detection dashboard"),
		bullet("agentsense config init", "write the default config file"),
		bullet("agentsense config show", "print the resolved config"),
	}))
	fmt.Println()
	fmt.Print(flagLegend(unicode))
	fmt.Println()
	fmt.Print(categoryLegend(unicode))
	fmt.Println()
	fmt.Println(footerLegend(unicode))
}

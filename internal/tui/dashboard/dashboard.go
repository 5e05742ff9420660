package dashboard

import (
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/tui/components"
	"github.com/Dicklesworthstone/agentsense/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

const maxAncestryRows = 8

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return components.SpinnerWithLabel(m.spinner, "starting...")
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewResult())
	b.WriteString("\n")
	b.WriteString(m.viewEvidence())
	b.WriteString("\n")
	b.WriteString(m.viewRegistry())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	th := theme.Current
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Mauve).Render("agentsense watch")
	if !m.scanned {
		return title + "  " + components.SpinnerWithLabel(m.spinner, "scanning...")
	}
	meta := lipgloss.NewStyle().Foreground(th.Subtext0).Render(
		fmt.Sprintf("scans %d · changes %d · last %s",
			m.scans, m.changes, m.lastScan.Format("15:04:05")))
	return title + "  " + meta
}

func (m Model) viewResult() string {
	th := theme.Current
	border := th.Overlay0
	if m.focus == FocusResult {
		border = th.Lavender
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	if !m.current.Matched {
		return panel.Render(lipgloss.NewStyle().Foreground(th.Subtext0).
			Render("No AI coding tool detected"))
	}

	catStyle := lipgloss.NewStyle().Bold(true)
	switch m.current.Category {
	case agentsense.CategoryAgent:
		catStyle = catStyle.Foreground(th.Red)
	case agentsense.CategoryInteractive:
		catStyle = catStyle.Foreground(th.Blue)
	case agentsense.CategoryHybrid:
		catStyle = catStyle.Foreground(th.Mauve)
	}

	name := lipgloss.NewStyle().Bold(true).Foreground(th.Green).Render(m.current.Name)
	id := lipgloss.NewStyle().Foreground(th.Subtext0).Render("(" + m.current.ID + ")")
	return panel.Render(name + " " + id + "  " + catStyle.Render(string(m.current.Category)))
}

// viewEvidence shows the environment variables the matched signature cares
// about and the top of the ancestor chain.
func (m Model) viewEvidence() string {
	th := theme.Current
	label := lipgloss.NewStyle().Bold(true).Foreground(th.Teal)

	var b strings.Builder
	b.WriteString(label.Render("Evidence") + "\n")

	vars := m.evidenceVars()
	if len(vars) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Subtext0).Render("  (no matched signature)") + "\n")
	}
	for _, name := range vars {
		value := m.env[name]
		if value != "" {
			mark := lipgloss.NewStyle().Foreground(th.Green).Render("✓")
			b.WriteString(fmt.Sprintf("  %s %s=%s\n", mark, name, value))
		} else {
			mark := lipgloss.NewStyle().Foreground(th.Overlay0).Render("·")
			b.WriteString(fmt.Sprintf("  %s %s unset\n", mark, name))
		}
	}

	b.WriteString(label.Render("Ancestry") + "\n")
	if len(m.ancestry) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Subtext0).Render("  (no ancestors resolved)") + "\n")
	}
	for i, proc := range m.ancestry {
		if i >= maxAncestryRows {
			b.WriteString(lipgloss.NewStyle().Foreground(th.Subtext0).
				Render(fmt.Sprintf("  ... %d more", len(m.ancestry)-maxAncestryRows)) + "\n")
			break
		}
		name := agentsense.CommandName(proc.Command)
		if name == "" {
			name = "?"
		}
		b.WriteString(fmt.Sprintf("  %-7d %s\n", proc.PID, name))
	}
	return b.String()
}

// evidenceVars lists the variable names the matched signature inspects.
func (m Model) evidenceVars() []string {
	if !m.current.Matched {
		return nil
	}
	sig, ok := m.opts.Registry.Lookup(m.current.ID)
	if !ok {
		return nil
	}

	seen := map[string]bool{}
	var names []string
	add := func(conds ...agentsense.EnvCondition) {
		for _, c := range conds {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
		}
	}
	for _, chk := range sig.EnvChecks {
		switch v := chk.(type) {
		case agentsense.EnvCondition:
			add(v)
		case agentsense.ConditionGroup:
			add(v.Any...)
			add(v.All...)
			add(v.None...)
		}
	}
	return names
}

func (m Model) viewRegistry() string {
	th := theme.Current
	label := lipgloss.NewStyle().Bold(true).Foreground(th.Teal)

	table := components.NewTable([]components.Column{
		{Header: "#", Width: 3, Align: lipgloss.Right},
		{Header: "ID", MinWidth: 14, MaxWidth: 24},
		{Header: "NAME", MinWidth: 14, MaxWidth: 24},
		{Header: "CATEGORY", Width: 12},
	})
	for i, sig := range m.signatures {
		matched := ""
		if m.current.Matched && sig.ID == m.current.ID {
			matched = " ◀"
		}
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			sig.ID,
			sig.Name,
			string(sig.Category)+matched,
		)
	}
	if m.focus == FocusRegistry {
		table.WithSelection(m.registryCursor)
	}

	return label.Render(fmt.Sprintf("Registry (%d signatures, priority order)", len(m.signatures))) +
		"\n" + table.Render() + "\n"
}

func (m Model) viewFooter() string {
	th := theme.Current
	return lipgloss.NewStyle().Foreground(th.Overlay0).
		Render("tab focus · j/k move · r rescan · q quit")
}

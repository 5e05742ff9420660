package cli

import (
	"fmt"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/config"
	"github.com/Dicklesworthstone/agentsense/internal/output"
	"github.com/Dicklesworthstone/agentsense/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newSignaturesCmd() *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "List the effective signature registry",
		Long: `List every signature in the effective registry, in priority order.

The effective registry is the built-in table with config-defined
signatures prepended and disabled entries removed. Order matters: when
several signatures would match the same environment, the one listed
first wins.

Examples:
  agentsense signatures
  agentsense signatures --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			formatStr := flagFormat
			if formatStr == "" {
				formatStr = cfg.Format
			}
			format, err := output.ParseFormat(formatStr)
			if err != nil {
				return err
			}

			reg, err := cfg.BuildRegistry()
			if err != nil {
				return err
			}
			sigs := reg.Signatures()

			if format == output.FormatJSON {
				return output.NewWriter(format, cmd.OutOrStdout()).Write(signatureDocs(sigs))
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSignatureTable(sigs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: json or text (default from config)")
	return cmd
}

// signatureDoc is the JSON shape for one registry entry.
type signatureDoc struct {
	Priority     int      `json:"priority"`
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	EnvChecks    int      `json:"env_checks"`
	ProcessNames []string `json:"process_names,omitempty"`
	CustomChecks int      `json:"custom_checks,omitempty"`
}

func signatureDocs(sigs []agentsense.Signature) []signatureDoc {
	docs := make([]signatureDoc, 0, len(sigs))
	for i, sig := range sigs {
		docs = append(docs, signatureDoc{
			Priority:     i + 1,
			ID:           sig.ID,
			Name:         sig.Name,
			Category:     string(sig.Category),
			EnvChecks:    len(sig.EnvChecks),
			ProcessNames: sig.ProcessNames,
			CustomChecks: len(sig.CustomChecks),
		})
	}
	return docs
}

func renderSignatureTable(sigs []agentsense.Signature) string {
	width := clampWidth(detectWidth())

	table := components.NewTable([]components.Column{
		{Header: "#", Width: 3, Align: lipgloss.Right},
		{Header: "ID", MinWidth: 12, MaxWidth: 24},
		{Header: "NAME", MinWidth: 12, MaxWidth: 24},
		{Header: "CATEGORY", Width: 11},
		{Header: "CHECKS", MaxWidth: width - 58},
	})
	for i, sig := range sigs {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			sig.ID,
			sig.Name,
			string(sig.Category),
			summarizeChecks(sig),
		)
	}
	return table.Render()
}

// summarizeChecks compresses a signature's check lists into one cell.
func summarizeChecks(sig agentsense.Signature) string {
	var parts []string
	if n := len(sig.EnvChecks); n > 0 {
		parts = append(parts, fmt.Sprintf("env:%d", n))
	}
	if n := len(sig.ProcessNames); n > 0 {
		parts = append(parts, fmt.Sprintf("proc:%d", n))
	}
	if n := len(sig.CustomChecks); n > 0 {
		parts = append(parts, fmt.Sprintf("custom:%d", n))
	}
	if len(parts) == 0 {
		return "-"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

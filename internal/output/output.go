// Package output renders detection results as JSON or styled text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a format string from a flag or config value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format %q (want json or text)", s)
	}
}

// Printer writes values in one format.
type Printer struct {
	format Format
	w      io.Writer
}

// New creates a printer writing to stdout.
func New(format Format) *Printer {
	return &Printer{format: format, w: os.Stdout}
}

// NewWriter creates a printer writing to w.
func NewWriter(format Format, w io.Writer) *Printer {
	return &Printer{format: format, w: w}
}

// Write renders v. JSON output is one indented object; text output uses
// the TextRenderer interface when v implements it and falls back to JSON
// otherwise.
func (p *Printer) Write(v any) error {
	if p.format == FormatText {
		if tr, ok := v.(TextRenderer); ok {
			_, err := io.WriteString(p.w, tr.RenderText())
			return err
		}
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// TextRenderer is implemented by values with a styled text form.
type TextRenderer interface {
	RenderText() string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(10)
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	categoryStyles = map[agentsense.Category]lipgloss.Style{
		agentsense.CategoryAgent:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		agentsense.CategoryInteractive: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		agentsense.CategoryHybrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
)

// DetectionDoc wraps an engine result for rendering. The identity fields
// serialize as nulls when nothing matched, matching the library contract.
type DetectionDoc struct {
	Matched  bool    `json:"matched"`
	ID       *string `json:"id"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// NewDetectionDoc converts a Result into its wire form.
func NewDetectionDoc(res agentsense.Result) DetectionDoc {
	doc := DetectionDoc{Matched: res.Matched}
	if res.Matched {
		id, name, cat := res.ID, res.Name, string(res.Category)
		doc.ID, doc.Name, doc.Category = &id, &name, &cat
	}
	return doc
}

// RenderText renders the result for humans.
func (d DetectionDoc) RenderText() string {
	var b strings.Builder
	if !d.Matched {
		b.WriteString(missStyle.Render("No AI coding tool detected"))
		b.WriteString("\n")
		return b.String()
	}
	cat := agentsense.Category(*d.Category)
	style, ok := categoryStyles[cat]
	if !ok {
		style = headerStyle
	}
	b.WriteString(matchStyle.Render("Detected: ") + headerStyle.Render(*d.Name) + "\n")
	b.WriteString(labelStyle.Render("id") + *d.ID + "\n")
	b.WriteString(labelStyle.Render("category") + style.Render(string(cat)) + "\n")
	return b.String()
}

// DebugReport bundles one detection pass with everything that fed it.
// It exists for diagnosing registry rules, not for scripting.
type DebugReport struct {
	ReportID    string               `json:"report_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Result      DetectionDoc         `json:"result"`
	Environment map[string]string    `json:"environment"`
	Ancestry    []agentsense.Process `json:"ancestry"`
}

// NewDebugReport assembles a report from the inputs of one detection call.
func NewDebugReport(res agentsense.Result, env agentsense.EnvSnapshot, ancestry []agentsense.Process) DebugReport {
	if ancestry == nil {
		ancestry = []agentsense.Process{}
	}
	return DebugReport{
		ReportID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Result:      NewDetectionDoc(res),
		Environment: env,
		Ancestry:    ancestry,
	}
}

// RenderText renders the report with section headers.
func (r DebugReport) RenderText() string {
	var b strings.Builder
	section := lipgloss.NewStyle().Bold(true).Underline(true)

	b.WriteString(section.Render("Detection") + "\n")
	b.WriteString(r.Result.RenderText())
	b.WriteString(labelStyle.Render("report") + r.ReportID + "\n")
	b.WriteString(labelStyle.Render("at") + r.GeneratedAt.Format(time.RFC3339) + "\n\n")

	b.WriteString(section.Render("Ancestry") + "\n")
	if len(r.Ancestry) == 0 {
		b.WriteString(missStyle.Render("(no ancestors resolved)") + "\n")
	}
	for _, proc := range r.Ancestry {
		name := agentsense.CommandName(proc.Command)
		if name == "" {
			name = "?"
		}
		b.WriteString(fmt.Sprintf("  %-7d %-20s %s\n", proc.PID, name, proc.Command))
	}
	b.WriteString("\n")

	b.WriteString(section.Render("Environment") + "\n")
	names := make([]string, 0, len(r.Environment))
	for name := range r.Environment {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  %s=%s\n", name, r.Environment[name]))
	}
	return b.String()
}

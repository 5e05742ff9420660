// Package dashboard implements the watch dashboard: a Bubble Tea view
// that re-runs detection on a ticker and shows what the registry sees.
package dashboard

import (
	"time"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/notify"
	"github.com/Dicklesworthstone/agentsense/internal/tui/components"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// FocusPanel identifies which panel has focus.
type FocusPanel int

const (
	FocusResult FocusPanel = iota
	FocusRegistry
)

// Options configures a dashboard model.
type Options struct {
	// Registry is the effective registry to scan. Required.
	Registry *agentsense.Registry
	// Interval is the time between detection passes.
	Interval time.Duration
	// Notifier, when non-nil, is invoked whenever the detected tool
	// changes between passes.
	Notifier notify.Notifier
	// Logger receives notification failures. Defaults to log.Default().
	Logger *log.Logger
}

// tickMsg fires one detection pass.
type tickMsg time.Time

// scanMsg carries the outcome of one detection pass.
type scanMsg struct {
	result   agentsense.Result
	env      agentsense.EnvSnapshot
	ancestry []agentsense.Process
	at       time.Time
}

// ReloadMsg swaps in a rebuilt registry, typically after a config file
// change. The next pass uses the new registry immediately.
type ReloadMsg struct {
	Registry *agentsense.Registry
}

// notifiedMsg reports the outcome of a notification attempt.
type notifiedMsg struct{ err error }

// Model is the dashboard Bubble Tea model.
type Model struct {
	opts Options

	width  int
	height int
	ready  bool

	spinner spinner.Model
	scanned bool

	current    agentsense.Result
	env        agentsense.EnvSnapshot
	ancestry   []agentsense.Process
	lastScan   time.Time
	lastChange time.Time
	scans      int
	changes    int

	focus          FocusPanel
	registryCursor int
	signatures     []agentsense.Signature
}

// New creates a dashboard model.
func New(opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return Model{
		opts:       opts,
		spinner:    components.ScanningSpinner(),
		signatures: opts.Registry.Signatures(),
	}
}

// Result returns the most recent detection result.
func (m Model) Result() agentsense.Result {
	return m.current
}

// Scans returns how many detection passes have completed.
func (m Model) Scans() int {
	return m.scans
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scanCmd(m.opts.Registry))
}

// scanCmd runs one detection pass against live inputs. Ancestry failures
// degrade to an empty chain, matching the library contract.
func scanCmd(reg *agentsense.Registry) tea.Cmd {
	return func() tea.Msg {
		env := agentsense.LiveEnv()
		ancestry, err := agentsense.Ancestors()
		if err != nil {
			ancestry = nil
		}
		res := reg.Detect(
			agentsense.WithEnviron(env),
			agentsense.WithAncestry(ancestry),
		)
		return scanMsg{result: res, env: env, ancestry: ancestry, at: time.Now()}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m, scanCmd(m.opts.Registry)

	case scanMsg:
		return m.applyScan(msg)

	case ReloadMsg:
		if msg.Registry != nil {
			m.opts.Registry = msg.Registry
			m.signatures = msg.Registry.Signatures()
			if m.registryCursor >= len(m.signatures) {
				m.registryCursor = 0
			}
		}
		return m, scanCmd(m.opts.Registry)

	case notifiedMsg:
		if msg.err != nil {
			m.opts.Logger.Warn("desktop notification failed", "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.focus == FocusResult {
			m.focus = FocusRegistry
		} else {
			m.focus = FocusResult
		}
	case "up", "k":
		if m.focus == FocusRegistry && m.registryCursor > 0 {
			m.registryCursor--
		}
	case "down", "j":
		if m.focus == FocusRegistry && m.registryCursor < len(m.signatures)-1 {
			m.registryCursor++
		}
	case "r":
		return m, scanCmd(m.opts.Registry)
	}
	return m, nil
}

// applyScan records one pass and schedules the next. A change in the
// detected identity bumps the change counter and fires a notification.
func (m Model) applyScan(msg scanMsg) (tea.Model, tea.Cmd) {
	prev := m.current
	m.current = msg.result
	m.env = msg.env
	m.ancestry = msg.ancestry
	m.lastScan = msg.at
	m.scans++

	changed := m.scanned && !sameIdentity(prev, msg.result)
	if changed {
		m.changes++
		m.lastChange = msg.at
	}
	m.scanned = true

	cmds := []tea.Cmd{m.tick()}
	if changed && m.opts.Notifier != nil {
		cmds = append(cmds, notifyCmd(m.opts.Notifier, msg.result))
	}
	return m, tea.Batch(cmds...)
}

func sameIdentity(a, b agentsense.Result) bool {
	return a.Matched == b.Matched && a.ID == b.ID
}

func notifyCmd(n notify.Notifier, res agentsense.Result) tea.Cmd {
	return func() tea.Msg {
		message := "No AI coding tool detected"
		if res.Matched {
			message = res.Name + " detected (" + string(res.Category) + ")"
		}
		return notifiedMsg{err: n.Notify("agentsense", message)}
	}
}

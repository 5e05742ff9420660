package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
)

func testRegistry() *agentsense.Registry {
	return agentsense.NewRegistry(
		agentsense.Signature{
			ID: "tool-a", Name: "Tool A", Category: agentsense.CategoryAgent,
			EnvChecks: []agentsense.EnvMatcher{agentsense.Env("TOOL_A")},
		},
		agentsense.Signature{
			ID: "tool-b", Name: "Tool B", Category: agentsense.CategoryInteractive,
			EnvChecks: []agentsense.EnvMatcher{agentsense.Env("TOOL_B")},
		},
	)
}

func scanned(res agentsense.Result) scanMsg {
	return scanMsg{
		result:   res,
		env:      agentsense.EnvSnapshot{"TOOL_A": "1"},
		ancestry: []agentsense.Process{{PID: 7, Command: "/usr/bin/zsh"}},
		at:       time.Now(),
	}
}

// drain runs a command tree and collects every produced message.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func TestApplyScanRecordsResult(t *testing.T) {
	m := New(Options{Registry: testRegistry(), Interval: time.Minute})

	res := agentsense.Result{
		Matched: true, ID: "tool-a", Name: "Tool A",
		Category: agentsense.CategoryAgent,
	}
	updated, _ := m.Update(scanned(res))
	m = updated.(Model)

	if m.Result() != res {
		t.Errorf("Result() = %+v, want %+v", m.Result(), res)
	}
	if m.Scans() != 1 {
		t.Errorf("Scans() = %d, want 1", m.Scans())
	}
	if m.changes != 0 {
		t.Errorf("changes = %d, want 0 on first scan", m.changes)
	}
}

func TestChangeTriggersNotification(t *testing.T) {
	var notified []string
	notifier := notify.Func(func(title, message string) error {
		notified = append(notified, message)
		return nil
	})
	m := New(Options{Registry: testRegistry(), Interval: time.Minute, Notifier: notifier})

	first := agentsense.Result{
		Matched: true, ID: "tool-a", Name: "Tool A",
		Category: agentsense.CategoryAgent,
	}
	updated, cmd := m.Update(scanned(first))
	m = updated.(Model)
	drain(cmd)
	if len(notified) != 0 {
		t.Fatalf("first scan notified %v, want none", notified)
	}

	// Same identity again: no notification.
	updated, cmd = m.Update(scanned(first))
	m = updated.(Model)
	drain(cmd)
	if len(notified) != 0 {
		t.Fatalf("unchanged scan notified %v, want none", notified)
	}

	second := agentsense.Result{
		Matched: true, ID: "tool-b", Name: "Tool B",
		Category: agentsense.CategoryInteractive,
	}
	updated, cmd = m.Update(scanned(second))
	m = updated.(Model)
	drain(cmd)

	if len(notified) != 1 {
		t.Fatalf("changed scan notified %v, want exactly one", notified)
	}
	if !strings.Contains(notified[0], "Tool B") {
		t.Errorf("notification = %q, want it to name Tool B", notified[0])
	}
	if m.changes != 1 {
		t.Errorf("changes = %d, want 1", m.changes)
	}
}

func TestReloadSwapsRegistry(t *testing.T) {
	m := New(Options{Registry: testRegistry(), Interval: time.Minute})
	if len(m.signatures) != 2 {
		t.Fatalf("len(signatures) = %d, want 2", len(m.signatures))
	}

	replacement := agentsense.NewRegistry(agentsense.Signature{
		ID: "only", Name: "Only", Category: agentsense.CategoryHybrid,
		EnvChecks: []agentsense.EnvMatcher{agentsense.Env("ONLY")},
	})
	updated, cmd := m.Update(ReloadMsg{Registry: replacement})
	m = updated.(Model)

	if len(m.signatures) != 1 || m.signatures[0].ID != "only" {
		t.Errorf("signatures after reload = %+v, want [only]", m.signatures)
	}
	if cmd == nil {
		t.Error("reload did not schedule a rescan")
	}
}

func TestKeyHandling(t *testing.T) {
	m := New(Options{Registry: testRegistry(), Interval: time.Minute})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.focus != FocusRegistry {
		t.Errorf("focus after tab = %v, want FocusRegistry", m.focus)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = updated.(Model)
	if m.registryCursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.registryCursor)
	}

	// Cursor stays in bounds.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = updated.(Model)
	if m.registryCursor != 1 {
		t.Errorf("cursor past end = %d, want 1", m.registryCursor)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q did not produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := New(Options{Registry: testRegistry(), Interval: time.Minute})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	updated, _ = m.Update(scanned(agentsense.Result{
		Matched: true, ID: "tool-a", Name: "Tool A",
		Category: agentsense.CategoryAgent,
	}))
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"agentsense watch", "Tool A", "Registry", "tool-b", "Evidence", "TOOL_A"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestEvidenceVars(t *testing.T) {
	reg := agentsense.NewRegistry(agentsense.Signature{
		ID: "grouped", Name: "Grouped", Category: agentsense.CategoryAgent,
		EnvChecks: []agentsense.EnvMatcher{
			agentsense.ConditionGroup{
				All:  []agentsense.EnvCondition{agentsense.Env("A")},
				None: []agentsense.EnvCondition{agentsense.Env("B")},
			},
			agentsense.Env("C"),
		},
	})
	m := New(Options{Registry: reg, Interval: time.Minute})
	updated, _ := m.Update(scanMsg{
		result: agentsense.Result{Matched: true, ID: "grouped", Name: "Grouped", Category: agentsense.CategoryAgent},
		env:    agentsense.EnvSnapshot{"A": "1"},
		at:     time.Now(),
	})
	m = updated.(Model)

	got := m.evidenceVars()
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("evidenceVars() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("evidenceVars()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/config"
)

// runCLI executes a fresh command tree in-process and returns the exit
// code alongside the captured output.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	code := 0
	if err != nil {
		code = 1
		if !errors.Is(err, ErrNoDetection) {
			stderr.WriteString(err.Error())
		}
	}
	return code, stdout.String(), stderr.String()
}

// isolate pins detection inputs and points config at a nonexistent file
// so results never depend on the machine running the tests.
func isolate(t *testing.T, env agentsense.EnvSnapshot, ancestry []agentsense.Process) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "config.toml"))
	restore := OverrideInputs(env, ancestry)
	t.Cleanup(restore)
}

func TestDetectJSON(t *testing.T) {
	isolate(t, agentsense.EnvSnapshot{"CLAUDECODE": "true"}, nil)

	code, stdout, _ := runCLI(t, "--format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	var doc struct {
		Matched  bool   `json:"matched"`
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decoding output %q: %v", stdout, err)
	}
	if !doc.Matched || doc.ID != "claude-code" || doc.Name != "Claude Code" || doc.Category != "agent" {
		t.Errorf("doc = %+v, want claude-code/agent", doc)
	}
}

func TestDetectText(t *testing.T) {
	isolate(t, agentsense.EnvSnapshot{"CURSOR_TRACE_ID": "x"}, nil)

	code, stdout, _ := runCLI(t)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "Cursor") {
		t.Errorf("stdout = %q, want it to name Cursor", stdout)
	}
}

func TestDetectNoMatch(t *testing.T) {
	isolate(t, agentsense.EnvSnapshot{"RANDOM_VARIABLE": "some-value"}, nil)

	code, stdout, _ := runCLI(t, "--format", "json")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decoding output %q: %v", stdout, err)
	}
	if doc["matched"] != false {
		t.Errorf("matched = %v, want false", doc["matched"])
	}
	if doc["id"] != nil || doc["category"] != nil {
		t.Errorf("id = %v, category = %v, want nulls", doc["id"], doc["category"])
	}
}

func TestDetectViaAncestry(t *testing.T) {
	isolate(t, agentsense.EnvSnapshot{}, []agentsense.Process{
		{PID: 41, Command: "/home/u/.local/bin/crush"},
	})

	code, stdout, _ := runCLI(t, "--format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, `"crush"`) {
		t.Errorf("stdout = %q, want crush match", stdout)
	}
}

func TestCheckFlag(t *testing.T) {
	tests := []struct {
		name  string
		env   agentsense.EnvSnapshot
		check string
		want  int
	}{
		{"agent check passes for agent", agentsense.EnvSnapshot{"CLAUDECODE": "1"}, "agent", 0},
		{"agent check passes for hybrid", agentsense.EnvSnapshot{"TERM_PROGRAM": "WarpTerminal"}, "agent", 0},
		{"agent check fails for interactive", agentsense.EnvSnapshot{"CURSOR_TRACE_ID": "x"}, "agent", 1},
		{"interactive check passes for hybrid", agentsense.EnvSnapshot{"TERM_PROGRAM": "WarpTerminal"}, "interactive", 0},
		{"hybrid check fails for agent", agentsense.EnvSnapshot{"CLAUDECODE": "1"}, "hybrid", 1},
		{"hybrid check passes for hybrid", agentsense.EnvSnapshot{"REPL_ID": "abc"}, "hybrid", 0},
		{"check fails with no match", agentsense.EnvSnapshot{}, "agent", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, tt.env, nil)
			code, _, _ := runCLI(t, "--check", tt.check, "--quiet")
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestQuietSuppressesOutput(t *testing.T) {
	isolate(t, agentsense.EnvSnapshot{"CLAUDECODE": "1"}, nil)

	code, stdout, _ := runCLI(t, "--quiet")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
}

func TestInvalidFlagValues(t *testing.T) {
	isolate(t, agentsense.EnvSnapshot{"CLAUDECODE": "1"}, nil)

	code, _, stderr := runCLI(t, "--format", "xml")
	if code != 1 {
		t.Errorf("invalid format exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "invalid format") {
		t.Errorf("stderr = %q, want invalid format message", stderr)
	}

	code, _, stderr = runCLI(t, "--check", "robot")
	if code != 1 {
		t.Errorf("invalid check exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "invalid check") {
		t.Errorf("stderr = %q, want invalid check message", stderr)
	}
}

func TestDebugReportOutput(t *testing.T) {
	isolate(t, agentsense.EnvSnapshot{"CLAUDECODE": "1", "HOME": "/home/u"}, []agentsense.Process{
		{PID: 9, Command: "/usr/local/bin/claude"},
	})

	code, stdout, _ := runCLI(t, "--debug", "--format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	for _, field := range []string{"report_id", "generated_at", "result", "environment", "ancestry"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("debug report missing %q", field)
		}
	}

	env, ok := doc["environment"].(map[string]any)
	if !ok || env["CLAUDECODE"] != "1" {
		t.Errorf("environment = %v, want CLAUDECODE present", doc["environment"])
	}
}

func TestConfigDefinedSignatureWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[[signatures]]
id = "house-bot"
name = "House Bot"
category = "agent"
env = ["HOUSE_BOT"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv(config.EnvConfigPath, path)
	restore := OverrideInputs(agentsense.EnvSnapshot{"HOUSE_BOT": "1", "CLAUDECODE": "1"}, nil)
	t.Cleanup(restore)

	code, stdout, _ := runCLI(t, "--format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "house-bot") {
		t.Errorf("stdout = %q, want config signature to win", stdout)
	}
}

func TestCheckPassed(t *testing.T) {
	agent := agentsense.Result{Matched: true, Category: agentsense.CategoryAgent}
	hybrid := agentsense.Result{Matched: true, Category: agentsense.CategoryHybrid}
	none := agentsense.Result{}

	tests := []struct {
		name  string
		res   agentsense.Result
		check string
		want  bool
	}{
		{"no check, matched", agent, "", true},
		{"no check, unmatched", none, "", false},
		{"agent includes hybrid", hybrid, "agent", true},
		{"interactive includes hybrid", hybrid, "interactive", true},
		{"hybrid excludes agent", agent, "hybrid", false},
		{"interactive excludes agent", agent, "interactive", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkPassed(tt.res, tt.check); got != tt.want {
				t.Errorf("checkPassed(%v, %q) = %v, want %v", tt.res.Category, tt.check, got, tt.want)
			}
		})
	}
}

// Package harness provides the E2E test environment infrastructure.
package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/cli"
	"github.com/Dicklesworthstone/agentsense/internal/config"
)

// CLIResult is the outcome of one in-process CLI invocation.
type CLIResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// E2EEnvironment is the test environment for E2E tests.
//
// It provides an isolated config location, pinned detection inputs, and
// an in-process CLI runner, so scenarios never depend on the machine
// running them.
type E2EEnvironment struct {
	T *testing.T

	// ConfigDir is the temp directory holding the config file.
	ConfigDir string

	// ConfigPath is the config file location (AGENTSENSE_CONFIG).
	ConfigPath string

	// Logger is the step logger.
	Logger *StepLogger

	// stepCount tracks step numbers
	stepCount atomic.Int32

	// startTime is when the environment was created
	startTime time.Time
}

// NewE2EEnvironment creates a new isolated test environment.
//
// The environment pins AGENTSENSE_CONFIG to a temp path and pins
// detection inputs to an empty environment and empty ancestry until a
// scenario sets them. All state is restored via t.Cleanup.
func NewE2EEnvironment(t *testing.T) *E2EEnvironment {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	t.Setenv(config.EnvConfigPath, path)

	restore := cli.OverrideInputs(agentsense.EnvSnapshot{}, nil)
	t.Cleanup(restore)

	env := &E2EEnvironment{
		T:          t,
		ConfigDir:  dir,
		ConfigPath: path,
		Logger:     NewStepLogger(t),
		startTime:  time.Now(),
	}
	env.Logger.Info("E2E environment created at %s", dir)
	return env
}

// Step logs a test step with automatic numbering.
func (env *E2EEnvironment) Step(format string, args ...any) {
	env.T.Helper()
	step := env.stepCount.Add(1)
	env.Logger.Step(int(step), format, args...)
}

// Result logs a step result.
func (env *E2EEnvironment) Result(format string, args ...any) {
	env.T.Helper()
	env.Logger.Result(format, args...)
}

// Elapsed returns time since environment creation.
func (env *E2EEnvironment) Elapsed() time.Duration {
	return time.Since(env.startTime)
}

// PinInputs fixes the environment snapshot and ancestry every detection
// command sees for the rest of the test.
func (env *E2EEnvironment) PinInputs(snapshot agentsense.EnvSnapshot, ancestry []agentsense.Process) {
	env.T.Helper()
	restore := cli.OverrideInputs(snapshot, ancestry)
	env.T.Cleanup(restore)
	env.Result("Inputs pinned: %d env vars, %d ancestors", len(snapshot), len(ancestry))
}

// WriteConfig writes the config file used by subsequent CLI runs.
func (env *E2EEnvironment) WriteConfig(content string) {
	env.T.Helper()
	if err := os.WriteFile(env.ConfigPath, []byte(content), 0644); err != nil {
		env.T.Fatalf("WriteConfig: %v", err)
	}
	env.Result("Config written: %d bytes", len(content))
}

// RunCLI executes the CLI in-process with a fresh command tree.
func (env *E2EEnvironment) RunCLI(args ...string) CLIResult {
	env.T.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	code := 0
	if err != nil {
		code = 1
		if !errors.Is(err, cli.ErrNoDetection) {
			fmt.Fprintln(&stderr, err.Error())
		}
	}

	res := CLIResult{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}
	env.Result("agentsense %v -> exit %d", args, res.ExitCode)
	return res
}

// AssertExitCode fails the test when the exit code differs.
func (env *E2EEnvironment) AssertExitCode(res CLIResult, want int) {
	env.T.Helper()
	if res.ExitCode != want {
		env.T.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s",
			res.ExitCode, want, res.Stdout, res.Stderr)
	}
}

// AssertStdoutContains fails the test when stdout lacks the substring.
func (env *E2EEnvironment) AssertStdoutContains(res CLIResult, want string) {
	env.T.Helper()
	if !bytes.Contains([]byte(res.Stdout), []byte(want)) {
		env.T.Fatalf("stdout missing %q:\n%s", want, res.Stdout)
	}
}

// AssertStderrContains fails the test when stderr lacks the substring.
func (env *E2EEnvironment) AssertStderrContains(res CLIResult, want string) {
	env.T.Helper()
	if !bytes.Contains([]byte(res.Stderr), []byte(want)) {
		env.T.Fatalf("stderr missing %q:\n%s", want, res.Stderr)
	}
}

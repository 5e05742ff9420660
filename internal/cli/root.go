// Package cli implements the agentsense command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/Dicklesworthstone/agentsense/internal/config"
	"github.com/Dicklesworthstone/agentsense/internal/output"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// ErrNoDetection is returned when detection (or the requested --check)
// fails. The binary maps it to exit code 1 without an error message.
var ErrNoDetection = errors.New("no detection")

// detection inputs, pinned by tests so results never depend on the
// machine running them (see OverrideInputs).
var (
	inputsPinned   bool
	pinnedEnv      agentsense.EnvSnapshot
	pinnedAncestry []agentsense.Process
)

// OverrideInputs pins the environment snapshot and ancestry used by every
// detection command (for testing). The returned function restores live
// inputs.
func OverrideInputs(env agentsense.EnvSnapshot, ancestry []agentsense.Process) func() {
	inputsPinned = true
	pinnedEnv = env
	pinnedAncestry = ancestry
	return func() {
		inputsPinned = false
		pinnedEnv = nil
		pinnedAncestry = nil
	}
}

// detectInputs resolves the inputs for one detection pass. Ancestry
// failures degrade to an empty chain.
func detectInputs() (agentsense.EnvSnapshot, []agentsense.Process) {
	if inputsPinned {
		return pinnedEnv, pinnedAncestry
	}
	env := agentsense.LiveEnv()
	ancestry, err := agentsense.Ancestors()
	if err != nil {
		log.Debug("ancestor walk failed", "error", err)
		ancestry = nil
	}
	return env, ancestry
}

type rootOptions struct {
	format  string
	check   string
	quiet   bool
	debug   bool
	verbose bool
}

// NewRootCmd builds the command tree. A fresh tree per call keeps flag
// state isolated, which the in-process end-to-end tests rely on.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "agentsense",
		Short: "Detect which AI coding tool is hosting the current process",
		Long: `Detect which AI coding assistant or agentic tool, if any, is
controlling or hosting the current process.

Detection inspects the process environment and the ancestor process chain
against an ordered registry of known tool signatures. The first matching
signature wins and determines the reported identity and category:

  agent        an autonomous tool is driving the process
  interactive  AI features inside a human-driven session
  hybrid       both

The exit code is 0 when a tool is detected (or the requested --check
passes) and 1 otherwise, so the bare command works in shell conditionals.

Examples:
  agentsense                      # describe the detected tool
  agentsense --format json        # machine-readable result
  agentsense --check agent -q     # exit 0 iff under agent control
  agentsense --debug              # bundle result, env, and ancestry`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json or text (default from config)")
	cmd.Flags().StringVar(&opts.check, "check", "", "succeed only for this category: agent, interactive, or hybrid")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress output, report via exit code only")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "emit the full debug report (result, environment, ancestry)")

	cmd.AddCommand(newSignaturesCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newQuickRefCmd())

	return cmd
}

func runDetect(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	formatStr := opts.format
	if formatStr == "" {
		formatStr = cfg.Format
	}
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	switch opts.check {
	case "", "agent", "interactive", "hybrid":
	default:
		return fmt.Errorf("invalid check %q (want agent, interactive, or hybrid)", opts.check)
	}

	reg, err := cfg.BuildRegistry()
	if err != nil {
		return err
	}

	env, ancestry := detectInputs()
	res := reg.Detect(
		agentsense.WithEnviron(env),
		agentsense.WithAncestry(ancestry),
	)

	quiet := opts.quiet || cfg.Quiet
	if !quiet {
		writer := output.NewWriter(format, cmd.OutOrStdout())
		var doc any = output.NewDetectionDoc(res)
		if opts.debug {
			doc = output.NewDebugReport(res, env, ancestry)
		}
		if err := writer.Write(doc); err != nil {
			return err
		}
	}

	if !checkPassed(res, opts.check) {
		return ErrNoDetection
	}
	return nil
}

// checkPassed applies the category test from --check, or plain matched
// when no check was requested.
func checkPassed(res agentsense.Result, check string) bool {
	if !res.Matched {
		return false
	}
	switch check {
	case "agent":
		return res.Category.IsAgent()
	case "interactive":
		return res.Category.IsInteractive()
	case "hybrid":
		return res.Category == agentsense.CategoryHybrid
	default:
		return true
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, ErrNoDetection) {
			log.Error(err.Error())
		}
		return 1
	}
	return 0
}

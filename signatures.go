package agentsense

import (
	"os"
	"strings"
)

// AllSignatures returns the built-in signature table in priority order.
// Agent-mode signatures precede the interactive signature of the same
// product: an editor's agent mode is distinguished by extra variables the
// interactive session lacks, so the specific entry has to win first.
func AllSignatures() []Signature {
	return []Signature{
		// =================================================================
		// Terminal agents with dedicated marker variables
		// =================================================================

		{
			ID: "claude-code", Name: "Claude Code", Category: CategoryAgent,
			EnvChecks: []EnvMatcher{
				Env("CLAUDECODE"),
				Env("CLAUDE_CODE_ENTRYPOINT"),
			},
		},

		// =================================================================
		// Editors with an agent mode; agent entry first
		// =================================================================

		// Cursor's background agent keeps the trace id but swaps the pager
		// for a non-interactive pipeline.
		{
			ID: "cursor-agent", Name: "Cursor Agent", Category: CategoryAgent,
			EnvChecks: []EnvMatcher{
				ConditionGroup{All: []EnvCondition{
					Env("CURSOR_TRACE_ID"),
					EnvEquals("PAGER", "head -n 10000 | cat"),
				}},
			},
		},
		{
			ID: "cursor", Name: "Cursor", Category: CategoryInteractive,
			EnvChecks: []EnvMatcher{
				Env("CURSOR_TRACE_ID"),
				EnvEquals("TERM_PROGRAM", "cursor"),
			},
		},

		// Zed agent sessions pin PAGER=cat; the interactive entry excludes
		// that exact value so the two stay disjoint.
		{
			ID: "zed-agent", Name: "Zed Agent", Category: CategoryAgent,
			EnvChecks: []EnvMatcher{
				ConditionGroup{All: []EnvCondition{
					EnvEquals("TERM_PROGRAM", "zed"),
					EnvEquals("PAGER", "cat"),
				}},
			},
		},
		{
			ID: "zed", Name: "Zed", Category: CategoryInteractive,
			EnvChecks: []EnvMatcher{
				ConditionGroup{
					All:  []EnvCondition{EnvEquals("TERM_PROGRAM", "zed")},
					None: []EnvCondition{EnvEquals("PAGER", "cat")},
				},
			},
		},

		// Bolt.new runs on WebContainers (jsh shell); its agent forces
		// non-interactive npm.
		{
			ID: "bolt-new-agent", Name: "Bolt.new Agent", Category: CategoryAgent,
			EnvChecks: []EnvMatcher{
				ConditionGroup{All: []EnvCondition{
					EnvEquals("SHELL", "/bin/jsh"),
					EnvEquals("npm_config_yes", "true"),
				}},
			},
		},
		{
			ID: "bolt-new", Name: "Bolt.new", Category: CategoryInteractive,
			EnvChecks: []EnvMatcher{
				ConditionGroup{
					All:  []EnvCondition{EnvEquals("SHELL", "/bin/jsh")},
					None: []EnvCondition{EnvEquals("npm_config_yes", "true")},
				},
			},
		},

		// =================================================================
		// CLI agents, detected by env markers and the ancestor chain
		// =================================================================

		{
			ID: "codex-cli", Name: "Codex CLI", Category: CategoryAgent,
			EnvChecks: []EnvMatcher{
				Env("CODEX_SANDBOX"),
				Env("CODEX_QUIET_MODE"),
			},
			ProcessNames: []string{"codex"},
		},
		{
			ID: "gemini-cli", Name: "Gemini CLI", Category: CategoryAgent,
			EnvChecks:    []EnvMatcher{Env("GEMINI_CLI")},
			ProcessNames: []string{"gemini"},
		},
		{
			ID: "crush", Name: "Crush", Category: CategoryAgent,
			EnvChecks:    []EnvMatcher{Env("CRUSH")},
			ProcessNames: []string{"crush"},
		},
		{
			ID: "opencode", Name: "OpenCode", Category: CategoryAgent,
			EnvChecks:    []EnvMatcher{Env("OPENCODE")},
			ProcessNames: []string{"opencode"},
		},
		{
			ID: "aider", Name: "Aider", Category: CategoryAgent,
			ProcessNames: []string{"aider"},
		},
		{
			ID: "goose", Name: "Goose", Category: CategoryAgent,
			ProcessNames: []string{"goose"},
		},
		{
			ID: "cline", Name: "Cline", Category: CategoryAgent,
			EnvChecks: []EnvMatcher{Env("CLINE")},
		},

		// =================================================================
		// AI-assisted environments
		// =================================================================

		// TERM_PROGRAM casing differs across Windsurf builds, which the
		// exact-match conditions cannot express.
		{
			ID: "windsurf", Name: "Windsurf", Category: CategoryInteractive,
			EnvChecks: []EnvMatcher{Env("WINDSURF_SESSION_ID")},
			CustomChecks: []func() bool{
				func() bool {
					return strings.EqualFold(os.Getenv("TERM_PROGRAM"), "windsurf")
				},
			},
		},
		{
			ID: "github-copilot", Name: "GitHub Copilot", Category: CategoryHybrid,
			EnvChecks:    []EnvMatcher{Env("GITHUB_COPILOT")},
			ProcessNames: []string{"copilot"},
		},
		{
			ID: "warp", Name: "Warp", Category: CategoryHybrid,
			EnvChecks: []EnvMatcher{EnvEquals("TERM_PROGRAM", "WarpTerminal")},
		},
		{
			ID: "replit", Name: "Replit", Category: CategoryHybrid,
			EnvChecks: []EnvMatcher{
				Env("REPL_ID"),
				Env("REPLIT_USER"),
			},
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Dicklesworthstone/agentsense/internal/config"
	"github.com/Dicklesworthstone/agentsense/internal/output"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the agentsense configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var flagForce bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Long: `Write a default config file to ~/.config/agentsense/config.toml
(or the path in AGENTSENSE_CONFIG).

The file documents the available settings: output format, disabled
built-in signatures, custom [[signatures]] blocks, and watch dashboard
options.

Examples:
  agentsense config init
  agentsense config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !flagForce {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := writeDefaultConfig(path); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flagForce, "force", "f", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			formatStr := flagFormat
			if formatStr == "" {
				formatStr = "text"
			}
			format, err := output.ParseFormat(formatStr)
			if err != nil {
				return err
			}

			if format == output.FormatJSON {
				return output.NewWriter(format, cmd.OutOrStdout()).Write(cfg)
			}
			enc := toml.NewEncoder(cmd.OutOrStdout())
			enc.Indent = "  "
			return enc.Encode(cfg)
		},
	}

	cmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: json or text (toml)")
	return cmd
}

// writeDefaultConfig writes the default config with a commented header.
func writeDefaultConfig(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := `# agentsense configuration
#
# format    - default output format: "text" or "json"
# quiet     - suppress output, report via exit code only
# disabled  - built-in signature IDs to remove from the registry
#
# Custom signatures are [[signatures]] blocks prepended to the built-in
# table (so they win over the defaults). Env entries are "NAME" for a
# presence check or "NAME=value" for an exact match:
#
#   [[signatures]]
#   id = "my-agent"
#   name = "My Agent"
#   category = "agent"            # agent, interactive, or hybrid
#   env = ["MY_AGENT"]            # any of these
#   env_all = ["MY_MODE=auto"]    # all of these
#   env_none = ["MY_DISABLED"]    # none of these
#   process_names = ["my-agent"]  # ancestor command substrings

`
	if _, err := f.WriteString(header); err != nil {
		return err
	}

	enc := toml.NewEncoder(f)
	enc.Indent = "  "
	return enc.Encode(config.DefaultConfig())
}

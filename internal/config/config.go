// Package config loads agentsense configuration from the user dotdir,
// environment variables, and flags via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dicklesworthstone/agentsense"
	"github.com/spf13/viper"
)

// EnvConfigPath names the variable that overrides the config file location.
const EnvConfigPath = "AGENTSENSE_CONFIG"

// WatchConfig controls the watch dashboard.
type WatchConfig struct {
	// IntervalSecs is the polling interval for re-running detection.
	IntervalSecs int `mapstructure:"interval_secs" toml:"interval_secs"`
	// Notify enables a desktop notification when the detected tool changes.
	Notify bool `mapstructure:"notify" toml:"notify"`
	// Theme selects the dashboard color flavor.
	Theme string `mapstructure:"theme" toml:"theme"`
}

// SignatureConfig is one [[signatures]] block: a declarative signature
// defined in the config file. Env entries are either "NAME" (presence) or
// "NAME=value" (exact match).
type SignatureConfig struct {
	ID           string   `mapstructure:"id" toml:"id"`
	Name         string   `mapstructure:"name" toml:"name"`
	Category     string   `mapstructure:"category" toml:"category"`
	Env          []string `mapstructure:"env" toml:"env,omitempty"`
	EnvAll       []string `mapstructure:"env_all" toml:"env_all,omitempty"`
	EnvNone      []string `mapstructure:"env_none" toml:"env_none,omitempty"`
	ProcessNames []string `mapstructure:"process_names" toml:"process_names,omitempty"`
}

// Config is the resolved configuration.
type Config struct {
	// Format is the default output format (json or text).
	Format string `mapstructure:"format" toml:"format"`
	// Quiet suppresses normal output, leaving only the exit code.
	Quiet bool `mapstructure:"quiet" toml:"quiet"`
	// Disabled lists built-in signature IDs to remove from the registry.
	Disabled []string `mapstructure:"disabled" toml:"disabled,omitempty"`
	// Watch configures the watch dashboard.
	Watch WatchConfig `mapstructure:"watch" toml:"watch"`
	// Signatures are user-defined signatures, prepended to the built-in
	// table in file order so they win over the defaults.
	Signatures []SignatureConfig `mapstructure:"signatures" toml:"signatures,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Format: "text",
		Watch: WatchConfig{
			IntervalSecs: 2,
			Theme:        "mocha",
		},
	}
}

// Dir returns the agentsense config directory (~/.config/agentsense).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "agentsense"), nil
}

// Path returns the config file path, honoring AGENTSENSE_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file (if present), applies AGENTSENSE_* overrides,
// and validates the result. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from an explicit file path.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("AGENTSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("format", def.Format)
	v.SetDefault("quiet", def.Quiet)
	v.SetDefault("watch.interval_secs", def.Watch.IntervalSecs)
	v.SetDefault("watch.notify", def.Watch.Notify)
	v.SetDefault("watch.theme", def.Watch.Theme)

	if err := v.ReadInConfig(); err != nil {
		// A missing file means defaults; anything else is a real error.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	switch c.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid format %q (want json or text)", c.Format)
	}
	if c.Watch.IntervalSecs <= 0 {
		return fmt.Errorf("watch.interval_secs must be positive, got %d", c.Watch.IntervalSecs)
	}
	for i, sc := range c.Signatures {
		if _, err := sc.Build(); err != nil {
			id := sc.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			return fmt.Errorf("signature %s: %w", id, err)
		}
	}
	return nil
}

// Build converts a config block into an engine signature.
func (c SignatureConfig) Build() (agentsense.Signature, error) {
	var sig agentsense.Signature
	if c.ID == "" {
		return sig, fmt.Errorf("missing id")
	}
	if c.Name == "" {
		return sig, fmt.Errorf("missing name")
	}
	cat := agentsense.Category(c.Category)
	if !cat.Valid() {
		return sig, fmt.Errorf("invalid category %q (want agent, interactive, or hybrid)", c.Category)
	}
	if len(c.Env) == 0 && len(c.EnvAll) == 0 && len(c.EnvNone) == 0 && len(c.ProcessNames) == 0 {
		return sig, fmt.Errorf("no conditions defined; the signature would never match")
	}

	sig = agentsense.Signature{
		ID:           c.ID,
		Name:         c.Name,
		Category:     cat,
		ProcessNames: append([]string(nil), c.ProcessNames...),
	}

	group := agentsense.ConditionGroup{}
	var err error
	if group.Any, err = parseConditions(c.Env); err != nil {
		return sig, fmt.Errorf("env: %w", err)
	}
	if group.All, err = parseConditions(c.EnvAll); err != nil {
		return sig, fmt.Errorf("env_all: %w", err)
	}
	if group.None, err = parseConditions(c.EnvNone); err != nil {
		return sig, fmt.Errorf("env_none: %w", err)
	}
	if !group.Empty() {
		sig.EnvChecks = []agentsense.EnvMatcher{group}
	}
	return sig, nil
}

// parseConditions turns "NAME" and "NAME=value" entries into conditions.
func parseConditions(entries []string) ([]agentsense.EnvCondition, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	conds := make([]agentsense.EnvCondition, 0, len(entries))
	for _, entry := range entries {
		name, value, hasValue := strings.Cut(entry, "=")
		if name == "" {
			return nil, fmt.Errorf("entry %q has no variable name", entry)
		}
		if hasValue {
			conds = append(conds, agentsense.EnvEquals(name, value))
		} else {
			conds = append(conds, agentsense.Env(name))
		}
	}
	return conds, nil
}

// BuildRegistry assembles the effective registry: the built-in table with
// disabled entries removed and config-defined signatures prepended, highest
// priority first.
func (c *Config) BuildRegistry() (*agentsense.Registry, error) {
	reg := agentsense.NewRegistry(agentsense.AllSignatures()...)
	for _, id := range c.Disabled {
		reg.Remove(id)
	}
	for i := len(c.Signatures) - 1; i >= 0; i-- {
		sig, err := c.Signatures[i].Build()
		if err != nil {
			return nil, fmt.Errorf("signature %s: %w", c.Signatures[i].ID, err)
		}
		reg.Prepend(sig)
	}
	return reg, nil
}

package agentsense

import (
	"os"
	"strings"
)

// EnvSnapshot is an immutable view of a process environment. A variable
// that is absent or set to the empty string counts as not set.
type EnvSnapshot map[string]string

// LiveEnv captures the current process environment as a snapshot.
func LiveEnv() EnvSnapshot {
	environ := os.Environ()
	env := make(EnvSnapshot, len(environ))
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok {
			env[name] = value
		}
	}
	return env
}

// ConditionKind selects how an EnvCondition compares a variable.
type ConditionKind string

const (
	// ConditionPresence matches when the variable is set to any non-empty value.
	ConditionPresence ConditionKind = "presence"
	// ConditionEquals matches when the variable is set and equals the expected
	// value exactly (case-sensitive, no trimming).
	ConditionEquals ConditionKind = "equals"
)

// Valid returns true if the kind is a known condition kind.
func (k ConditionKind) Valid() bool {
	switch k {
	case ConditionPresence, ConditionEquals:
		return true
	default:
		return false
	}
}

// EnvCondition is a single check against one environment variable.
type EnvCondition struct {
	Kind  ConditionKind `json:"kind" toml:"kind"`
	Name  string        `json:"name" toml:"name"`
	Value string        `json:"value,omitempty" toml:"value,omitempty"`
}

// Env returns a presence condition: NAME is set and non-empty.
func Env(name string) EnvCondition {
	return EnvCondition{Kind: ConditionPresence, Name: name}
}

// EnvEquals returns an exact-value condition: NAME is set and equals value.
func EnvEquals(name, value string) EnvCondition {
	return EnvCondition{Kind: ConditionEquals, Name: name, Value: value}
}

// Match reports whether the condition holds for the snapshot.
func (c EnvCondition) Match(env EnvSnapshot) bool {
	got := env[c.Name]
	if got == "" {
		return false
	}
	switch c.Kind {
	case ConditionPresence:
		return true
	case ConditionEquals:
		return got == c.Value
	default:
		return false
	}
}

// ConditionGroup combines conditions with any/all/none semantics. Each
// clause that is absent or empty is vacuously true; the group matches when
// all three clauses hold. A group with no clauses at all therefore matches
// every environment, which is almost never what a signature author wants.
type ConditionGroup struct {
	Any  []EnvCondition `json:"any,omitempty" toml:"any,omitempty"`
	All  []EnvCondition `json:"all,omitempty" toml:"all,omitempty"`
	None []EnvCondition `json:"none,omitempty" toml:"none,omitempty"`
}

// Match reports whether the group holds for the snapshot.
func (g ConditionGroup) Match(env EnvSnapshot) bool {
	if len(g.Any) > 0 {
		matched := false
		for _, c := range g.Any {
			if c.Match(env) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, c := range g.All {
		if !c.Match(env) {
			return false
		}
	}
	for _, c := range g.None {
		if c.Match(env) {
			return false
		}
	}
	return true
}

// Empty returns true if the group defines no clauses and would match
// unconditionally.
func (g ConditionGroup) Empty() bool {
	return len(g.Any) == 0 && len(g.All) == 0 && len(g.None) == 0
}

// EnvMatcher is the element type of Signature.EnvChecks. EnvCondition and
// ConditionGroup both satisfy it.
type EnvMatcher interface {
	Match(env EnvSnapshot) bool
}

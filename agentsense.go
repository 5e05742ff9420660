// Package agentsense detects which AI coding assistant or agentic tool, if
// any, is controlling or hosting the current process.
//
// Detection is a single synchronous pass over an ordered registry of
// provider signatures. Each signature describes one tool through
// environment-variable conditions, ancestor-process name fragments, and
// optional custom predicates. The first signature that matches wins, so
// registration order is the priority mechanism: more specific signatures
// (for example an editor's agent mode) are registered before the general
// ones they would otherwise shadow.
//
// The environment snapshot and the ancestor list are plain inputs. By
// default they come from the live process, but both can be overridden,
// which keeps detection deterministic and testable:
//
//	res := agentsense.Detect(
//		agentsense.WithEnviron(agentsense.EnvSnapshot{"CLAUDECODE": "1"}),
//		agentsense.WithAncestry(nil),
//	)
package agentsense

// Category classifies how a detected tool relates to the current process.
type Category string

const (
	// CategoryAgent means an autonomous tool is driving the process.
	CategoryAgent Category = "agent"
	// CategoryInteractive means the process runs inside an AI-assisted
	// environment that a human is driving.
	CategoryInteractive Category = "interactive"
	// CategoryHybrid means the tool operates in both modes.
	CategoryHybrid Category = "hybrid"
)

// Valid returns true if the category is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryAgent, CategoryInteractive, CategoryHybrid:
		return true
	default:
		return false
	}
}

// IsAgent returns true for categories that imply autonomous control.
func (c Category) IsAgent() bool {
	return c == CategoryAgent || c == CategoryHybrid
}

// IsInteractive returns true for categories that imply a human-driven
// session.
func (c Category) IsInteractive() bool {
	return c == CategoryInteractive || c == CategoryHybrid
}

// Result is the outcome of one detection pass. It is constructed fresh on
// every call and never cached; repeated calls re-read the live inputs.
// When Matched is false the identity fields are zero.
type Result struct {
	Matched  bool     `json:"matched"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Detect runs detection against the default registry.
func Detect(opts ...Option) Result {
	return defaultRegistry.Detect(opts...)
}

// IsAgent returns true if the detected category is agent or hybrid.
func IsAgent(opts ...Option) bool {
	return Detect(opts...).Category.IsAgent()
}

// IsInteractive returns true if the detected category is interactive or
// hybrid.
func IsInteractive(opts ...Option) bool {
	return Detect(opts...).Category.IsInteractive()
}

// IsHybrid returns true if the detected category is exactly hybrid.
func IsHybrid(opts ...Option) bool {
	return Detect(opts...).Category == CategoryHybrid
}

// IsProvider returns true if detection matched a signature whose display
// name equals name.
func IsProvider(name string, opts ...Option) bool {
	res := Detect(opts...)
	return res.Matched && res.Name == name
}

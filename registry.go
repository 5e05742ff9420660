package agentsense

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Signature describes how to recognize one provider. A signature matches
// when any of its three check lists succeeds: an EnvChecks element holds
// for the environment, a ProcessNames fragment occurs in an ancestor
// command string, or a CustomChecks predicate returns true. The lists are
// consulted in that order and evaluation stops at the first success.
type Signature struct {
	// ID is the stable lowercase-kebab identifier. The registry does not
	// enforce uniqueness; authors must keep IDs unique because Remove and
	// lookups key on them.
	ID string `json:"id" toml:"id"`
	// Name is the display string, compared verbatim by IsProvider.
	Name string `json:"name" toml:"name"`
	// Category classifies the provider.
	Category Category `json:"category" toml:"category"`
	// EnvChecks are alternatives: the signature matches if any element
	// matches the environment snapshot.
	EnvChecks []EnvMatcher `json:"env_checks,omitempty" toml:"-"`
	// ProcessNames are case-sensitive substrings looked for in ancestor
	// command strings.
	ProcessNames []string `json:"process_names,omitempty" toml:"process_names,omitempty"`
	// CustomChecks are escape hatches for conditions the declarative
	// checks cannot express. A predicate that panics counts as false for
	// that predicate only.
	CustomChecks []func() bool `json:"-" toml:"-"`
}

// Registry holds signatures in priority order. Earlier entries win when
// several would match the same inputs; there is no numeric priority.
type Registry struct {
	mu     sync.RWMutex
	sigs   []Signature
	logger *log.Logger
}

// NewRegistry creates a registry with the given signatures in order.
func NewRegistry(sigs ...Signature) *Registry {
	r := &Registry{}
	r.sigs = append(r.sigs, sigs...)
	return r
}

// SetLogger directs the registry's diagnostics (recovered predicate
// panics, ancestry failures) to l. Without one, log.Default() is used.
func (r *Registry) SetLogger(l *log.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

func (r *Registry) log() *log.Logger {
	if r.logger != nil {
		return r.logger
	}
	return log.Default()
}

// Add appends a signature at the lowest priority.
func (r *Registry) Add(sig Signature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sigs = append(r.sigs, sig)
}

// Prepend inserts a signature at the highest priority.
func (r *Registry) Prepend(sig Signature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sigs = append([]Signature{sig}, r.sigs...)
}

// Remove deletes the first signature with the given id. It returns true
// if one was removed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sig := range r.sigs {
		if sig.ID == id {
			r.sigs = append(r.sigs[:i], r.sigs[i+1:]...)
			return true
		}
	}
	return false
}

// Lookup returns the signature with the given id.
func (r *Registry) Lookup(id string) (Signature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sig := range r.sigs {
		if sig.ID == id {
			return sig, true
		}
	}
	return Signature{}, false
}

// Signatures returns the registered signatures in priority order.
func (r *Registry) Signatures() []Signature {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Signature, len(r.sigs))
	copy(out, r.sigs)
	return out
}

// Option adjusts one Detect call. Absent options mean live inputs.
type Option func(*detectInput)

type detectInput struct {
	env          EnvSnapshot
	envSet       bool
	ancestors    []Process
	ancestorsSet bool
}

// WithEnviron substitutes env for the live process environment. A nil
// snapshot is an empty environment, not "use the live one".
func WithEnviron(env EnvSnapshot) Option {
	return func(in *detectInput) {
		in.env = env
		in.envSet = true
	}
}

// WithAncestry substitutes ancestors for the live ancestor walk. A nil
// slice is an empty ancestry.
func WithAncestry(ancestors []Process) Option {
	return func(in *detectInput) {
		in.ancestors = ancestors
		in.ancestorsSet = true
	}
}

// Detect scans the registry in priority order and returns the first match.
// If no signature matches, the zero Result is returned. The scan reads
// only its inputs, so concurrent calls are safe.
func (r *Registry) Detect(opts ...Option) Result {
	var in detectInput
	for _, opt := range opts {
		opt(&in)
	}

	env := in.env
	if !in.envSet {
		env = LiveEnv()
	}
	ancestors := in.ancestors
	if !in.ancestorsSet {
		procs, err := Ancestors()
		if err != nil {
			// Ancestry is best-effort: a failed walk means no ancestors.
			r.log().Debug("ancestor walk failed", "error", err)
			procs = nil
		}
		ancestors = procs
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sig := range r.sigs {
		if r.matches(sig, env, ancestors) {
			return Result{Matched: true, ID: sig.ID, Name: sig.Name, Category: sig.Category}
		}
	}
	return Result{}
}

func (r *Registry) matches(sig Signature, env EnvSnapshot, ancestors []Process) bool {
	for _, chk := range sig.EnvChecks {
		if chk != nil && chk.Match(env) {
			return true
		}
	}
	if len(sig.ProcessNames) > 0 && matchesAncestry(sig.ProcessNames, ancestors) {
		return true
	}
	for _, check := range sig.CustomChecks {
		if r.runCustomCheck(sig.ID, check) {
			return true
		}
	}
	return false
}

// matchesAncestry reports whether any fragment occurs in any ancestor
// command string. Matching is a plain case-sensitive substring test;
// empty fragments never count.
func matchesAncestry(fragments []string, ancestors []Process) bool {
	for _, proc := range ancestors {
		for _, frag := range fragments {
			if frag != "" && strings.Contains(proc.Command, frag) {
				return true
			}
		}
	}
	return false
}

// runCustomCheck invokes one predicate behind a fault boundary. A panic
// makes that predicate false; other predicates and signatures still run.
func (r *Registry) runCustomCheck(id string, check func() bool) (ok bool) {
	if check == nil {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			r.log().Debug("custom check panicked", "signature", id, "panic", rec)
		}
	}()
	return check()
}

// Default registry, seeded with the built-in signature table.
var defaultRegistry = NewRegistry(AllSignatures()...)

// DefaultRegistry returns the process-wide registry used by the
// package-level functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

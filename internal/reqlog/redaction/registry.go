package redaction

import (
	"fmt"
	"path"
	"strings"
	"sync"
)

// MatchMode selects how ResolveRoute matches rules.
type MatchMode string

const (
	// MatchMethod matches rules by HTTP method only; the rule path is
	// stored but ignored.
	MatchMethod MatchMode = "method"

	// MatchRoute matches rules by HTTP method and route path.
	MatchRoute MatchMode = "route"
)

// ParseMatchMode parses a configured match mode. Empty means MatchMethod.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchMethod:
		return MatchMethod, nil
	case MatchRoute:
		return MatchRoute, nil
	default:
		return "", fmt.Errorf("redaction: unknown match mode %q", s)
	}
}

// Rule lists the body attributes to redact for one route.
type Rule struct {
	Method     string   `json:"method" yaml:"method"`
	Path       string   `json:"path" yaml:"path"`
	Attributes []string `json:"attributes" yaml:"attributes"`
}

func (r Rule) matchesMethod(method string) bool {
	return strings.EqualFold(r.Method, method)
}

// matchesPath reports whether the rule path covers the request path.
// An empty rule path covers every path. Rule paths may use path.Match
// globs such as /users/*.
func (r Rule) matchesPath(p string) bool {
	if r.Path == "" {
		return true
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if r.Path == p {
		return true
	}
	ok, err := path.Match(r.Path, p)
	return err == nil && ok
}

// Option configures a Registry.
type Option func(*Registry)

// WithMatchMode sets the mode used by ResolveRoute.
func WithMatchMode(m MatchMode) Option {
	return func(r *Registry) {
		r.mode = m
	}
}

// Registry holds the registered rules and the global defaults.
type Registry struct {
	mu       sync.RWMutex
	rules    []Rule
	defaults []string
	mode     MatchMode
}

// NewRegistry creates a registry with the given default attribute paths.
func NewRegistry(defaults []string, opts ...Option) *Registry {
	r := &Registry{
		defaults: append([]string(nil), defaults...),
		mode:     MatchMethod,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends a rule. Duplicates are kept; the first matching rule
// wins at resolution time.
func (r *Registry) Register(method, routePath string, attributes []string) {
	rule := Rule{
		Method:     method,
		Path:       routePath,
		Attributes: append([]string(nil), attributes...),
	}

	r.mu.Lock()
	r.rules = append(r.rules, rule)
	r.mu.Unlock()
}

// Resolve returns the attribute paths for the first rule matching method,
// merged with the defaults. The rule path is not consulted.
func (r *Registry) Resolve(method string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.rules {
		if rule.matchesMethod(method) {
			return merge(rule.Attributes, r.defaults)
		}
	}
	return append([]string{}, r.defaults...)
}

// ResolveRoute resolves by method and, in MatchRoute mode, by path.
func (r *Registry) ResolveRoute(method, routePath string) []string {
	if r.Mode() != MatchRoute {
		return r.Resolve(method)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.rules {
		if rule.matchesMethod(method) && rule.matchesPath(routePath) {
			return merge(rule.Attributes, r.defaults)
		}
	}
	return append([]string{}, r.defaults...)
}

// Mode returns the configured match mode.
func (r *Registry) Mode() MatchMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// Defaults returns a copy of the global default list.
func (r *Registry) Defaults() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.defaults...)
}

// Rules returns a snapshot of the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, len(r.rules))
	for i, rule := range r.rules {
		rule.Attributes = append([]string(nil), rule.Attributes...)
		out[i] = rule
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// merge returns the rule attributes followed by the defaults the rule
// does not already list. Both lists otherwise keep their order and
// repeats.
func merge(specific, defaults []string) []string {
	out := make([]string, 0, len(specific)+len(defaults))
	listed := make(map[string]struct{}, len(specific))
	for _, a := range specific {
		out = append(out, a)
		listed[a] = struct{}{}
	}
	for _, a := range defaults {
		if _, ok := listed[a]; ok {
			continue
		}
		out = append(out, a)
	}
	return out
}

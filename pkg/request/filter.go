// Package request derives which submitted inputs a save request persists. By
// default only registered field names survive; configuring an exclusion list
// inverts the filter to "everything except excluded".
package request

import "strings"

// Filter holds the whitelist of registered field names plus an optional
// exclusion list that flips the filter into blacklist mode.
type Filter struct {
	fields   []string
	excluded []string
}

// Option configures filter construction.
type Option func(*Filter)

// WithExcluded switches the filter into exclusion mode: every submitted input
// except the listed names is kept. An empty list leaves whitelist mode
// active.
func WithExcluded(names ...string) Option {
	return func(f *Filter) {
		f.excluded = append(f.excluded, names...)
	}
}

// NewFilter builds a filter over the registered field names, typically the
// output of a registry's Names().
func NewFilter(fieldNames []string, options ...Option) Filter {
	f := Filter{fields: cleanNames(fieldNames)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&f)
	}
	f.excluded = cleanNames(f.excluded)
	return f
}

// Exclusive reports whether the filter runs in exclusion mode.
func (f Filter) Exclusive() bool {
	return len(f.excluded) > 0
}

// Keys returns the subset of the submitted keys that should be persisted,
// preserving the submitted order.
func (f Filter) Keys(submitted []string) []string {
	out := make([]string, 0, len(submitted))
	for _, key := range submitted {
		if f.allows(key) {
			out = append(out, key)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Strip returns a copy of the submitted values containing only persisted
// inputs.
func (f Filter) Strip(values map[string]any) map[string]any {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]any)
	for key, value := range values {
		if f.allows(key) {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (f Filter) allows(key string) bool {
	if f.Exclusive() {
		return !contains(f.excluded, key)
	}
	return contains(f.fields, key)
}

func contains(names []string, target string) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}

func cleanNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

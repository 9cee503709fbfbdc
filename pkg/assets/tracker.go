// Package assets tracks which field types already injected their CSS/JS on
// the current page so repeated field types do not load the same asset twice.
package assets

import (
	"sort"
	"strings"
	"sync"
)

// Identifier computes the namespaced type identifier used by the tracker:
// "namespace.type" when a namespace is set, the bare type otherwise.
func Identifier(fieldType, namespace string) string {
	fieldType = strings.TrimSpace(fieldType)
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return fieldType
	}
	return namespace + "." + fieldType
}

// Tracker is a set of namespaced field-type identifiers marked as loaded.
// Reset it per page lifecycle; marking is idempotent.
type Tracker struct {
	mu     sync.RWMutex
	loaded map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{loaded: make(map[string]struct{})}
}

// Mark records a namespaced identifier as loaded. Marking an already-loaded
// identifier changes nothing.
func (t *Tracker) Mark(identifier string) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.loaded[identifier] = struct{}{}
}

// MarkOnce marks an identifier and reports whether this call was the first to
// mark it. Renderers use it to decide whether a field type still needs its
// assets emitted.
func (t *Tracker) MarkOnce(identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.loaded[identifier]; ok {
		return false
	}
	t.loaded[identifier] = struct{}{}
	return true
}

// MarkType marks a field type qualified by its namespace.
func (t *Tracker) MarkType(fieldType, namespace string) {
	t.Mark(Identifier(fieldType, namespace))
}

// Loaded reports whether an identifier was marked.
func (t *Tracker) Loaded(identifier string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.loaded[identifier]
	return ok
}

// TypeLoaded reports whether a namespaced field type was marked.
func (t *Tracker) TypeLoaded(fieldType, namespace string) bool {
	return t.Loaded(Identifier(fieldType, namespace))
}

// Identifiers returns the marked identifiers, sorted for deterministic
// inspection.
func (t *Tracker) Identifiers() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.loaded))
	for id := range t.loaded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Reset forgets every marked identifier, starting a fresh page lifecycle.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loaded = make(map[string]struct{})
}

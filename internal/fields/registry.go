package fields

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Options configures registry behaviour. Options are constructed by the
// public adapter in pkg/fields and passed into NewRegistry.
type Options struct {
	Labeler       func(string) string
	DefaultType   string
	ViewNamespace string
}

func defaultRegistryOptions() Options {
	return Options{
		Labeler:     DefaultLabeler,
		DefaultType: TypeText,
	}
}

// Registry keeps an ordered set of field descriptors keyed by name. Insertion
// order is user visible: rendered forms list fields in registry order.
// Mutations on missing names are silent no-ops so form setup code can stay
// declarative.
type Registry struct {
	mu    sync.RWMutex
	opts  Options
	order []string
	byKey map[string]Field
}

// NewRegistry creates an empty registry with the supplied options. Zero-value
// option members fall back to the defaults.
func NewRegistry(options Options) *Registry {
	opts := defaultRegistryOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.DefaultType != "" {
		opts.DefaultType = options.DefaultType
	}
	if options.ViewNamespace != "" {
		opts.ViewNamespace = options.ViewNamespace
	}
	return &Registry{
		opts:  opts,
		byKey: make(map[string]Field),
	}
}

// Add normalizes and inserts a descriptor. Re-adding an existing name
// replaces the stored descriptor and moves it to the end, collapsing to a
// single entry at the last-written position.
func (r *Registry) Add(field Field) error {
	normalized, err := r.normalize(field)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[normalized.Name]; exists {
		r.order = removeName(r.order, normalized.Name)
	}
	r.order = append(r.order, normalized.Name)
	r.byKey[normalized.Name] = normalized
	return nil
}

// AddFields inserts descriptors in order, stopping at the first invalid one.
func (r *Registry) AddFields(fields ...Field) error {
	for _, field := range fields {
		if err := r.Add(field); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes a field by name. Missing names are a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[name]; !exists {
		return
	}
	delete(r.byKey, name)
	r.order = removeName(r.order, name)
}

// RemoveFields deletes several fields by name.
func (r *Registry) RemoveFields(names ...string) {
	for _, name := range names {
		r.Remove(name)
	}
}

// Clear empties the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.byKey = make(map[string]Field)
}

// Get returns a copy of the named descriptor.
func (r *Registry) Get(name string) (Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	field, ok := r.byKey[name]
	if !ok {
		return Field{}, false
	}
	return field.Clone(), true
}

// Has reports whether a field is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byKey[name]
	return ok
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Names returns the registered field names in registry order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Fields returns copies of every descriptor in registry order.
func (r *Registry) Fields() []Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Field, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byKey[name].Clone())
	}
	return out
}

// MoveBefore repositions name immediately before anchor, preserving the
// relative order of every other field. A no-op when either name is missing or
// both are the same field.
func (r *Registry) MoveBefore(name, anchor string) {
	r.moveRelative(name, anchor, 0)
}

// MoveAfter repositions name immediately after anchor.
func (r *Registry) MoveAfter(name, anchor string) {
	r.moveRelative(name, anchor, 1)
}

func (r *Registry) moveRelative(name, anchor string, offset int) {
	if name == anchor {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[name]; !ok {
		return
	}
	if _, ok := r.byKey[anchor]; !ok {
		return
	}

	trimmed := removeName(r.order, name)
	at := indexOf(trimmed, anchor) + offset

	next := make([]string, 0, len(r.order))
	next = append(next, trimmed[:at]...)
	next = append(next, name)
	next = append(next, trimmed[at:]...)
	r.order = next
}

// Reorder rebuilds the registry order from the supplied name sequence. Names
// not present in the registry are skipped; registered fields the sequence
// omits keep their original relative order, appended at the end.
func (r *Registry) Reorder(names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(names))
	next := make([]string, 0, len(r.order))
	for _, name := range names {
		if _, ok := r.byKey[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		next = append(next, name)
	}
	for _, name := range r.order {
		if _, ok := seen[name]; ok {
			continue
		}
		next = append(next, name)
	}
	r.order = next
}

// Patch merges the supplied attributes into an existing descriptor. Known
// descriptor keys (type, label, view_namespace, upload) update the struct
// members; everything else merges into Attributes. Missing names are a silent
// no-op. The field's position is unchanged.
func (r *Registry) Patch(name string, updates Attributes) {
	if len(updates) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byKey[name]
	if !ok {
		return
	}

	patched := current.Clone()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &patched,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return
	}

	scrubbed := make(map[string]any, len(updates))
	for key, value := range updates {
		if key == "name" {
			// Renames go through Remove/Add so ordering stays explicit.
			continue
		}
		scrubbed[key] = value
	}
	if err := decoder.Decode(scrubbed); err != nil {
		return
	}

	// mapstructure's ",remain" replaces the attribute map wholesale; merge the
	// original attributes back underneath the patch.
	merged := make(Attributes, len(current.Attributes)+len(patched.Attributes))
	for key, value := range current.Attributes {
		merged[key] = value
	}
	for key, value := range patched.Attributes {
		merged[key] = value
	}
	if len(merged) > 0 {
		patched.Attributes = merged
	}
	patched.Name = name
	r.byKey[name] = patched
}

func (r *Registry) normalize(field Field) (Field, error) {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return Field{}, fmt.Errorf("fields: descriptor requires a name")
	}

	out := field.Clone()
	out.Name = name
	if out.Type == "" {
		out.Type = r.opts.DefaultType
	}
	if out.Label == "" {
		out.Label = r.opts.Labeler(name)
	}
	if out.ViewNamespace == "" {
		out.ViewNamespace = r.opts.ViewNamespace
	}
	if out.Type == TypeUpload {
		out.Upload = true
	}
	return out, nil
}

func removeName(names []string, target string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == target {
			continue
		}
		out = append(out, name)
	}
	return out
}

func indexOf(names []string, target string) int {
	for i, name := range names {
		if name == target {
			return i
		}
	}
	return -1
}

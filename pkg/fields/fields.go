package fields

import internalfields "github.com/goliatone/go-crudfields/internal/fields"

// Field re-exports the internal field descriptor.
type Field = internalfields.Field

// Attributes re-exports the loose attribute map carried by descriptors.
type Attributes = internalfields.Attributes

// Registry re-exports the ordered field registry.
type Registry = internalfields.Registry

// Built-in field type identifiers.
const (
	TypeText     = internalfields.TypeText
	TypeTextarea = internalfields.TypeTextarea
	TypeNumber   = internalfields.TypeNumber
	TypeCheckbox = internalfields.TypeCheckbox
	TypeSelect   = internalfields.TypeSelect
	TypeUpload   = internalfields.TypeUpload
	TypeJSON     = internalfields.TypeJSON
	TypeHidden   = internalfields.TypeHidden
)

// RegistryOption configures registry construction.
type RegistryOption func(*internalfields.Options)

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) RegistryOption {
	return func(opts *internalfields.Options) {
		opts.Labeler = labeler
	}
}

// WithDefaultType overrides the type assigned to descriptors registered
// without one.
func WithDefaultType(fieldType string) RegistryOption {
	return func(opts *internalfields.Options) {
		opts.DefaultType = fieldType
	}
}

// WithViewNamespace sets a namespace applied to descriptors that do not carry
// their own, qualifying template and asset lookup.
func WithViewNamespace(namespace string) RegistryOption {
	return func(opts *internalfields.Options) {
		opts.ViewNamespace = namespace
	}
}

// NewRegistry returns an empty ordered registry backed by the internal
// implementation.
func NewRegistry(options ...RegistryOption) *Registry {
	cfg := internalfields.Options{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return internalfields.NewRegistry(cfg)
}

// FromMap decodes a loose descriptor map into a Field.
func FromMap(raw map[string]any) (Field, error) {
	return internalfields.FromMap(raw)
}

// DefaultLabeler exposes the built-in name-to-label conversion.
func DefaultLabeler(name string) string {
	return internalfields.DefaultLabeler(name)
}

// NamespacedType qualifies a field type with a view namespace, matching the
// identifiers used by the asset tracker and template lookup.
func NamespacedType(fieldType, namespace string) string {
	return internalfields.NamespacedType(fieldType, namespace)
}

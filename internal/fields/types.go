package fields

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Common field type identifiers understood by the bundled renderer. Callers
// may register fields with any type string; unknown types fall back to text
// rendering.
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeNumber   = "number"
	TypeCheckbox = "checkbox"
	TypeSelect   = "select"
	TypeUpload   = "upload"
	TypeJSON     = "json"
	TypeHidden   = "hidden"
)

// Attributes carries descriptor entries beyond the typed struct members, such
// as placeholder text, select options, or wrapper CSS classes.
type Attributes map[string]any

// Field describes one form input: its unique name, the template used to
// render it, and any extra attributes the template consumes.
type Field struct {
	Name          string     `json:"name" yaml:"name" mapstructure:"name"`
	Type          string     `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Label         string     `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	ViewNamespace string     `json:"viewNamespace,omitempty" yaml:"viewNamespace,omitempty" mapstructure:"view_namespace"`
	Upload        bool       `json:"upload,omitempty" yaml:"upload,omitempty" mapstructure:"upload"`
	Attributes    Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:",remain"`
}

// TemplateKey returns the namespaced identifier used for template and asset
// lookup: "namespace.type" when a view namespace is set, the bare type
// otherwise.
func (f Field) TemplateKey() string {
	return NamespacedType(f.Type, f.ViewNamespace)
}

// Attr reads an attribute value, returning false when unset.
func (f Field) Attr(key string) (any, bool) {
	if f.Attributes == nil {
		return nil, false
	}
	value, ok := f.Attributes[key]
	return value, ok
}

// Clone returns a deep-enough copy: the attribute map is duplicated so callers
// can mutate the result without affecting registry state. Attribute values are
// shared.
func (f Field) Clone() Field {
	out := f
	if f.Attributes != nil {
		out.Attributes = make(Attributes, len(f.Attributes))
		for key, value := range f.Attributes {
			out.Attributes[key] = value
		}
	}
	return out
}

// NamespacedType qualifies a field type with its view namespace.
func NamespacedType(fieldType, namespace string) string {
	if namespace == "" {
		return fieldType
	}
	return namespace + "." + fieldType
}

// FromMap decodes a loose descriptor map into a Field. Known keys (name,
// type, label, view_namespace, upload) map onto struct members; everything
// else lands in Attributes.
func FromMap(raw map[string]any) (Field, error) {
	var field Field
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &field,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Field{}, fmt.Errorf("fields: configure decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Field{}, fmt.Errorf("fields: decode descriptor: %w", err)
	}
	if len(field.Attributes) == 0 {
		field.Attributes = nil
	}
	return field, nil
}

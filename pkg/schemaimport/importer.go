// Package schemaimport bootstraps field registries from OpenAPI component
// schemas: each schema property becomes a field descriptor with an inferred
// input type, so an admin panel can start from an existing API contract
// instead of hand-declaring every field.
package schemaimport

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-crudfields/pkg/fields"
)

// Option configures the importer.
type Option func(*Importer)

// WithExternalRefs allows the loader to resolve refs outside the document.
func WithExternalRefs() Option {
	return func(i *Importer) {
		i.externalRefs = true
	}
}

// WithRequiredAttribute records schema-required properties by setting the
// named attribute to true on the generated descriptor. Defaults to
// "required".
func WithRequiredAttribute(attr string) Option {
	return func(i *Importer) {
		if strings.TrimSpace(attr) != "" {
			i.requiredAttr = attr
		}
	}
}

// Importer converts OpenAPI component schemas into field descriptor lists.
type Importer struct {
	externalRefs bool
	requiredAttr string
}

// New constructs an Importer applying any provided options.
func New(options ...Option) *Importer {
	imp := &Importer{requiredAttr: "required"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(imp)
	}
	return imp
}

// FieldsFromData parses an OpenAPI document payload (JSON or YAML) and
// derives the field list for the named component schema. Properties convert
// in name order so repeated imports stay deterministic.
func (i *Importer) FieldsFromData(ctx context.Context, data []byte, schemaName string) ([]fields.Field, error) {
	if ctx == nil {
		return nil, errors.New("schemaimport: context is required")
	}
	if len(data) == 0 {
		return nil, errors.New("schemaimport: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schemaimport: load document: %w", err)
	}
	return i.fieldsFromSpec(spec, schemaName)
}

// FieldsFromFile loads the document from disk and derives the field list for
// the named component schema.
func (i *Importer) FieldsFromFile(ctx context.Context, path, schemaName string) ([]fields.Field, error) {
	if ctx == nil {
		return nil, errors.New("schemaimport: context is required")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemaimport: load %s: %w", path, err)
	}
	return i.fieldsFromSpec(spec, schemaName)
}

func (i *Importer) fieldsFromSpec(spec *openapi3.T, schemaName string) ([]fields.Field, error) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("schemaimport: document has no component schemas")
	}
	ref, ok := spec.Components.Schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("schemaimport: schema %q not found", schemaName)
	}
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schemaimport: schema %q is unresolved", schemaName)
	}

	schema := ref.Value
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("schemaimport: schema %q declares no properties", schemaName)
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]fields.Field, 0, len(names))
	for _, name := range names {
		property := schema.Properties[name]
		field := i.fieldFromProperty(name, property)
		if _, required := requiredSet[name]; required {
			if field.Attributes == nil {
				field.Attributes = fields.Attributes{}
			}
			field.Attributes[i.requiredAttr] = true
		}
		out = append(out, field)
	}
	return out, nil
}

func (i *Importer) fieldFromProperty(name string, ref *openapi3.SchemaRef) fields.Field {
	field := fields.Field{Name: name}
	if ref == nil || ref.Value == nil {
		field.Type = fields.TypeText
		return field
	}

	schema := ref.Value
	field.Type = inferType(schema)

	if schema.Description != "" {
		field.Attributes = fields.Attributes{"hint": schema.Description}
	}
	if len(schema.Enum) > 0 {
		field.Type = fields.TypeSelect
		if field.Attributes == nil {
			field.Attributes = fields.Attributes{}
		}
		field.Attributes["options"] = append([]any(nil), schema.Enum...)
	}
	if schema.Default != nil {
		if field.Attributes == nil {
			field.Attributes = fields.Attributes{}
		}
		field.Attributes["default"] = schema.Default
	}
	return field
}

func inferType(schema *openapi3.Schema) string {
	switch firstType(schema.Type) {
	case "boolean":
		return fields.TypeCheckbox
	case "integer", "number":
		return fields.TypeNumber
	case "object":
		return fields.TypeJSON
	case "array":
		return "repeatable"
	case "string":
		return stringFieldType(schema.Format)
	default:
		return fields.TypeText
	}
}

func stringFieldType(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "date":
		return "date"
	case "date-time", "datetime":
		return "datetime"
	case "email":
		return "email"
	case "password":
		return "password"
	case "uri", "url":
		return "url"
	case "byte", "binary":
		return fields.TypeUpload
	default:
		return fields.TypeText
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

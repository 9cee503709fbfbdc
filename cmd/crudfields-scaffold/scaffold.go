package main

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-crudfields/pkg/fieldconfig"
	"github.com/goliatone/go-crudfields/pkg/fields"
)

// prompter abstracts the interactive prompts so the scaffold flow can be
// tested without a terminal.
type prompter interface {
	Input(ctx context.Context, message, fallback string) (string, error)
	Confirm(ctx context.Context, message string, fallback bool) (bool, error)
	Select(ctx context.Context, message string, options []string) (string, error)
}

type document struct {
	Operations map[string]operation `yaml:"operations"`
}

type operation struct {
	Fields       []fieldconfig.FieldDef `yaml:"fields"`
	SaveExcluded []string               `yaml:"saveExcluded,omitempty"`
}

func (d document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

var fieldTypes = []string{
	fields.TypeText,
	fields.TypeTextarea,
	fields.TypeNumber,
	fields.TypeCheckbox,
	fields.TypeSelect,
	fields.TypeUpload,
	fields.TypeJSON,
	fields.TypeHidden,
}

// run drives the interactive flow: one operation id, a repeated field prompt,
// and optional save exclusions.
func run(ctx context.Context, p prompter, operationID string) (document, error) {
	if operationID == "" {
		answered, err := p.Input(ctx, "Operation id:", "create")
		if err != nil {
			return document{}, err
		}
		operationID = strings.TrimSpace(answered)
	}
	if operationID == "" {
		return document{}, fmt.Errorf("scaffold: operation id is required")
	}

	op := operation{}
	seen := make(map[string]bool)
	for {
		def, err := promptField(ctx, p, seen)
		if err != nil {
			return document{}, err
		}
		op.Fields = append(op.Fields, def)
		seen[def.Name] = true

		more, err := p.Confirm(ctx, "Add another field?", true)
		if err != nil {
			return document{}, err
		}
		if !more {
			break
		}
	}

	excluded, err := p.Input(ctx, "Fields excluded from save (comma separated, empty for none):", "")
	if err != nil {
		return document{}, err
	}
	op.SaveExcluded = splitNames(excluded)

	return document{Operations: map[string]operation{operationID: op}}, nil
}

func promptField(ctx context.Context, p prompter, seen map[string]bool) (fieldconfig.FieldDef, error) {
	var name string
	for {
		answered, err := p.Input(ctx, "Field name:", "")
		if err != nil {
			return fieldconfig.FieldDef{}, err
		}
		name = strings.TrimSpace(answered)
		if name == "" {
			continue
		}
		if seen[name] {
			return fieldconfig.FieldDef{}, fmt.Errorf("scaffold: field %q already declared", name)
		}
		break
	}

	fieldType, err := p.Select(ctx, "Field type:", fieldTypes)
	if err != nil {
		return fieldconfig.FieldDef{}, err
	}

	label, err := p.Input(ctx, "Label:", fields.DefaultLabeler(name))
	if err != nil {
		return fieldconfig.FieldDef{}, err
	}

	required, err := p.Confirm(ctx, "Required?", false)
	if err != nil {
		return fieldconfig.FieldDef{}, err
	}

	def := fieldconfig.FieldDef{
		Name:   name,
		Type:   fieldType,
		Label:  strings.TrimSpace(label),
		Upload: fieldType == fields.TypeUpload,
	}
	if required {
		def.Attributes = map[string]any{"required": true}
	}
	return def, nil
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Package fieldconfig loads declarative field definitions from JSON or YAML
// documents, keyed by operation. Panels use the parsed store to seed their
// per-operation field registries.
package fieldconfig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-crudfields/pkg/fields"
)

// LoadFS walks the provided filesystem and parses every JSON/YAML field
// configuration file. When fsys is nil or no configuration files are present,
// the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{operations: make(map[string]Operation)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldconfig: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for opID, raw := range doc.Operations {
			id := strings.TrimSpace(opID)
			if id == "" {
				return fmt.Errorf("fieldconfig: file %s defines an empty operation id", path)
			}
			if _, exists := store.operations[id]; exists {
				return fmt.Errorf("fieldconfig: duplicate operation %q (file %s)", id, path)
			}

			op, err := normaliseOperation(raw, id, path)
			if err != nil {
				return err
			}
			store.operations[id] = op
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Apply registers an operation's declared fields into the supplied registry
// in document order.
func Apply(op Operation, registry *fields.Registry) error {
	if registry == nil {
		return fmt.Errorf("fieldconfig: registry is required")
	}
	for _, def := range op.Fields {
		if err := registry.Add(def.Field()); err != nil {
			return fmt.Errorf("fieldconfig: operation %q: %w", op.ID, err)
		}
	}
	return nil
}

// Field converts the on-disk definition into a registry descriptor.
func (d FieldDef) Field() fields.Field {
	field := fields.Field{
		Name:          d.Name,
		Type:          d.Type,
		Label:         d.Label,
		ViewNamespace: d.ViewNamespace,
		Upload:        d.Upload,
	}
	if len(d.Attributes) > 0 {
		field.Attributes = fields.Attributes(d.Attributes)
	}
	return field
}

type documentFile struct {
	Operations map[string]operationFile `json:"operations" yaml:"operations"`
}

type operationFile struct {
	Fields       []FieldDef `json:"fields" yaml:"fields"`
	SaveExcluded []string   `json:"saveExcluded" yaml:"saveExcluded"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("fieldconfig: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("fieldconfig: parse %s: invalid JSON or YAML", source)
}

func normaliseOperation(raw operationFile, id, source string) (Operation, error) {
	op := Operation{
		ID:           id,
		Source:       source,
		Fields:       append([]FieldDef(nil), raw.Fields...),
		SaveExcluded: append([]string(nil), raw.SaveExcluded...),
	}

	seen := make(map[string]int, len(op.Fields))
	for i, def := range op.Fields {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return Operation{}, fmt.Errorf("fieldconfig: operation %q (file %s) declares a field without a name", id, source)
		}
		op.Fields[i].Name = name
		if prev, dup := seen[name]; dup {
			return Operation{}, fmt.Errorf("fieldconfig: operation %q (file %s) declares field %q twice (positions %d and %d)", id, source, name, prev, i)
		}
		seen[name] = i
	}
	return op, nil
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

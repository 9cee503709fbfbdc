package fieldconfig

import "sort"

// Store keeps the parsed operations from field configuration documents. It is
// safe for concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation declares the field set for one named operation context (create,
// update, ...) plus optional save-filter exclusions.
type Operation struct {
	ID           string
	Source       string
	Fields       []FieldDef
	SaveExcluded []string
}

// FieldDef is the on-disk shape of one field descriptor. Known keys map onto
// the registry descriptor; attributes carry everything renderer templates
// consume beyond them.
type FieldDef struct {
	Name          string         `json:"name" yaml:"name"`
	Type          string         `json:"type,omitempty" yaml:"type,omitempty"`
	Label         string         `json:"label,omitempty" yaml:"label,omitempty"`
	ViewNamespace string         `json:"viewNamespace,omitempty" yaml:"viewNamespace,omitempty"`
	Upload        bool           `json:"upload,omitempty" yaml:"upload,omitempty"`
	Attributes    map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Operation returns the configuration for the supplied operation id.
func (s *Store) Operation(id string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// IDs returns the configured operation ids, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.operations))
	for id := range s.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any operations.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}

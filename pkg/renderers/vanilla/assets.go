package vanilla

import "github.com/goliatone/go-crudfields/pkg/fields"

// AssetKind distinguishes stylesheet from script references in the manifest.
type AssetKind string

const (
	AssetCSS AssetKind = "css"
	AssetJS  AssetKind = "js"
)

// Asset is a single static file a field type depends on, relative to the
// asset mount prefix.
type Asset struct {
	Kind AssetKind
	Path string
}

// Manifest maps a field type to the static assets its control needs on the
// page. Keys are bare field types; lookups fall back from the namespaced
// template key to the bare type.
type Manifest map[string][]Asset

// DefaultManifest covers the built-in controls that ship behavior beyond
// plain HTML inputs.
func DefaultManifest() Manifest {
	return Manifest{
		fields.TypeSelect: {
			{Kind: AssetJS, Path: "crudfields-select.js"},
		},
		fields.TypeUpload: {
			{Kind: AssetJS, Path: "crudfields-upload.js"},
		},
		fields.TypeJSON: {
			{Kind: AssetCSS, Path: "crudfields-json.css"},
			{Kind: AssetJS, Path: "crudfields-json.js"},
		},
	}
}

// Lookup resolves the assets for a field, preferring the namespaced template
// key over the bare type.
func (m Manifest) Lookup(field fields.Field) []Asset {
	if m == nil {
		return nil
	}
	if assets, ok := m[field.TemplateKey()]; ok {
		return assets
	}
	return m[field.Type]
}

// Package crudfields manages the field configuration behind CRUD admin
// panels: ordered per-operation field registries, loaded-asset tracking,
// save-request filtering, attribute cast decoding, and form rendering.
package crudfields

import (
	"context"

	"github.com/goliatone/go-crudfields/pkg/casts"
	"github.com/goliatone/go-crudfields/pkg/fields"
	"github.com/goliatone/go-crudfields/pkg/panel"
	"github.com/goliatone/go-crudfields/pkg/render"
)

// Field aliases the registry descriptor exported via the root package for
// convenience.
type Field = fields.Field

// Attributes carries the renderer-facing extras of a field descriptor.
type Attributes = fields.Attributes

// Registry is the per-operation ordered field registry.
type Registry = fields.Registry

// Form is the renderable snapshot of one operation's field set.
type Form = render.Form

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.Options

// Casts maps attribute names onto their structured cast kinds.
type Casts = casts.Map

// NewPanel exposes the panel constructor from the top-level module.
func NewPanel(options ...panel.Option) *panel.Panel {
	return panel.New(options...)
}

// NewRegistry constructs a standalone field registry for callers that manage
// operations themselves.
func NewRegistry(options ...fields.RegistryOption) *Registry {
	return fields.NewRegistry(options...)
}

// GenerateHTML builds a panel from the supplied options and renders the named
// operation with the default renderer. It is the simplest entry point for
// callers that just want HTML output.
func GenerateHTML(ctx context.Context, operation string, options ...panel.Option) ([]byte, error) {
	p := panel.New(options...)
	return p.Generate(ctx, panel.Request{Operation: operation})
}

// Package panel coordinates the per-operation field registries, asset
// trackers, and save filters behind a CRUD admin panel, and drives the
// renderer pipeline that turns an operation's field set into output.
package panel

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-crudfields/pkg/assets"
	"github.com/goliatone/go-crudfields/pkg/casts"
	"github.com/goliatone/go-crudfields/pkg/fieldconfig"
	"github.com/goliatone/go-crudfields/pkg/fields"
	"github.com/goliatone/go-crudfields/pkg/render"
	"github.com/goliatone/go-crudfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-crudfields/pkg/request"
	"github.com/goliatone/go-crudfields/pkg/schemaimport"
)

const defaultRendererName = "vanilla"

// Option customises the panel configuration.
type Option func(*Panel)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(p *Panel) {
		p.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(p *Panel) {
		p.defaultRenderer = name
	}
}

// WithRegistryOptions sets the field registry options applied to every
// operation the panel creates (labeler, default type, view namespace).
func WithRegistryOptions(options ...fields.RegistryOption) Option {
	return func(p *Panel) {
		p.registryOptions = append(p.registryOptions, options...)
	}
}

// WithLabeler sets the label derivation applied to fields added without an
// explicit label, across every operation.
func WithLabeler(labeler func(string) string) Option {
	return WithRegistryOptions(fields.WithLabeler(labeler))
}

// WithImporter injects the schema importer used by ImportSchema.
func WithImporter(importer *schemaimport.Importer) Option {
	return func(p *Panel) {
		if importer != nil {
			p.importer = importer
		}
	}
}

// WithFieldConfig seeds the panel's operations from a parsed configuration
// store.
func WithFieldConfig(store *fieldconfig.Store) Option {
	return func(p *Panel) {
		p.store = store
	}
}

// WithFieldConfigFS loads field configuration documents from an fs.FS at
// construction time.
func WithFieldConfigFS(fsys fs.FS) Option {
	return func(p *Panel) {
		p.configFS = fsys
	}
}

// WithCasts declares the model's attribute casts so SaveValues can decode
// structured payloads.
func WithCasts(source casts.Source) Option {
	return func(p *Panel) {
		p.casts = source
	}
}

// WithDecorators registers decorators that run against the assembled form
// before rendering.
func WithDecorators(decorators ...Decorator) Option {
	return func(p *Panel) {
		if len(decorators) == 0 {
			return
		}
		p.decorators = append(p.decorators, decorators...)
	}
}

// WithThemeSelector passes a go-theme selector through to the panel so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(p *Panel) {
		p.themeSelector = selector
	}
}

// WithThemeDefaults sets the theme and variant used when a request names
// neither.
func WithThemeDefaults(name, variant string) Option {
	return func(p *Panel) {
		p.defaultTheme = name
		p.defaultVariant = variant
	}
}

// WithThemeFallbacks replaces the fallback partials merged under every theme
// selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(p *Panel) {
		p.themeFallbacks = fallbacks
	}
}

// Decorator mutates the assembled form before it reaches a renderer.
type Decorator interface {
	Decorate(form *render.Form) error
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(form *render.Form) error

func (f DecoratorFunc) Decorate(form *render.Form) error { return f(form) }

// Panel owns one field registry, asset tracker, and save filter per operation
// context. It applies sensible defaults (vanilla renderer, embedded
// templates) while remaining open to dependency injection.
type Panel struct {
	mu         sync.RWMutex
	operations map[string]*Operation

	registry        *render.Registry
	defaultRenderer string
	registryOptions []fields.RegistryOption
	store           *fieldconfig.Store
	configFS        fs.FS
	casts           casts.Source
	decorators      []Decorator
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	importer        *schemaimport.Importer
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs a Panel applying any provided options. Missing dependencies
// are initialised with the built-in implementations so callers can start with
// a single constructor call.
func New(options ...Option) *Panel {
	p := &Panel{
		operations:      make(map[string]*Operation),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

func (p *Panel) applyDefaults() {
	if p.defaultsApplied {
		return
	}

	if p.registry == nil {
		p.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			p.initialiseErr = fmt.Errorf("panel: default renderer: %w", err)
		} else {
			p.registry.MustRegister(renderer)
		}
	}
	if p.defaultRenderer == "" {
		p.defaultRenderer = defaultRendererName
	}
	if p.themeFallbacks == nil {
		p.themeFallbacks = defaultThemeFallbacks()
	}

	if p.store == nil && p.configFS != nil {
		store, err := fieldconfig.LoadFS(p.configFS)
		if err != nil {
			p.initialiseErr = fmt.Errorf("panel: load field config: %w", err)
		} else {
			p.store = store
		}
	}
	if p.initialiseErr == nil && p.store != nil {
		if err := p.applyStore(); err != nil {
			p.initialiseErr = err
		}
	}

	p.defaultsApplied = true
}

func (p *Panel) applyStore() error {
	for _, id := range p.store.IDs() {
		op, _ := p.store.Operation(id)
		state := p.Operation(id)
		if err := fieldconfig.Apply(op, state.Fields()); err != nil {
			return fmt.Errorf("panel: apply field config: %w", err)
		}
		state.ExcludeFromSave(op.SaveExcluded...)
	}
	return nil
}

// Operation returns the per-operation state for the supplied name, creating
// it on first use.
func (p *Panel) Operation(name string) *Operation {
	p.mu.Lock()
	defer p.mu.Unlock()

	if op, ok := p.operations[name]; ok {
		return op
	}
	op := &Operation{
		name:    name,
		fields:  fields.NewRegistry(p.registryOptions...),
		tracker: assets.NewTracker(),
	}
	p.operations[name] = op
	return op
}

// Has reports whether an operation was already configured, without creating
// it.
func (p *Panel) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.operations[name]
	return ok
}

// Operations returns the configured operation names, sorted.
func (p *Panel) Operations() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.operations))
	for name := range p.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Renderers exposes the renderer registry for callers that want to register
// additional output formats.
func (p *Panel) Renderers() *render.Registry {
	return p.registry
}

// SaveValues filters a submitted payload down to the operation's writable
// fields, then decodes structured attributes according to the configured
// casts. The input map is not mutated.
func (p *Panel) SaveValues(operation string, values map[string]any) map[string]any {
	stripped := p.Operation(operation).SaveFilter().Strip(values)
	if p.casts == nil || stripped == nil {
		return stripped
	}
	return casts.Decode(p.casts, stripped)
}

// SaveKeys filters submitted parameter names down to the operation's
// writable fields, preserving submission order.
func (p *Panel) SaveKeys(operation string, submitted []string) []string {
	return p.Operation(operation).SaveFilter().Keys(submitted)
}

// ImportSchema registers the fields derived from an OpenAPI component schema
// into the named operation.
func (p *Panel) ImportSchema(ctx context.Context, operation string, data []byte, schemaName string) error {
	importer := p.importer
	if importer == nil {
		importer = schemaimport.New()
	}

	imported, err := importer.FieldsFromData(ctx, data, schemaName)
	if err != nil {
		return fmt.Errorf("panel: import schema: %w", err)
	}
	if err := p.Operation(operation).Fields().AddFields(imported...); err != nil {
		return fmt.Errorf("panel: import schema: %w", err)
	}
	return nil
}

// Operation is the per-operation state: the ordered field registry, the
// loaded-asset tracker, the save-filter exclusions, and form metadata.
type Operation struct {
	mu      sync.RWMutex
	name    string
	fields  *fields.Registry
	tracker *assets.Tracker

	title        string
	action       string
	method       string
	saveExcluded []string
}

// Name returns the operation identifier.
func (o *Operation) Name() string { return o.name }

// Fields returns the operation's field registry.
func (o *Operation) Fields() *fields.Registry { return o.fields }

// Assets returns the operation's loaded-asset tracker. Generate does not use
// it implicitly: pass it through RenderOptions.Assets to share asset state
// across several renders on one page, and Reset it when a new page starts.
func (o *Operation) Assets() *assets.Tracker { return o.tracker }

// SetTitle sets the form heading used when a render request omits one.
func (o *Operation) SetTitle(title string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.title = title
}

// SetEndpoint sets the submission target used when a render request omits
// one.
func (o *Operation) SetEndpoint(action, method string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.action = action
	o.method = method
}

// ExcludeFromSave marks field names the save filter should reject even when
// registered. Passing no names leaves the exclusions unchanged.
func (o *Operation) ExcludeFromSave(names ...string) {
	if len(names) == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.saveExcluded = append(o.saveExcluded, names...)
}

// SaveExcluded returns a copy of the configured exclusions.
func (o *Operation) SaveExcluded() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if len(o.saveExcluded) == 0 {
		return nil
	}
	out := make([]string, len(o.saveExcluded))
	copy(out, o.saveExcluded)
	return out
}

// SaveFilter builds the request filter for the operation's current field set
// and exclusions.
func (o *Operation) SaveFilter() request.Filter {
	o.mu.RLock()
	excluded := make([]string, len(o.saveExcluded))
	copy(excluded, o.saveExcluded)
	o.mu.RUnlock()

	return request.NewFilter(o.fields.Names(), request.WithExcluded(excluded...))
}

// Form snapshots the operation into a renderable form using its configured
// metadata.
func (o *Operation) Form() render.Form {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return render.Form{
		Operation: o.name,
		Title:     o.title,
		Action:    o.action,
		Method:    o.method,
		Fields:    o.fields.Fields(),
	}
}

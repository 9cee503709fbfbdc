// Package vanilla renders forms as dependency-free HTML using the embedded
// pongo2 template bundle. Field markup is resolved per namespaced field type,
// and each field type's CSS/JS is emitted at most once per page through the
// assets tracker.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-crudfields/pkg/assets"
	"github.com/goliatone/go-crudfields/pkg/fields"
	"github.com/goliatone/go-crudfields/pkg/render"
	rendertemplate "github.com/goliatone/go-crudfields/pkg/render/template"
	gotemplate "github.com/goliatone/go-crudfields/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	sanitizer        *bluemonday.Policy
	manifest         Manifest
	assetPrefix      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. Templates
// follow the embedded layout: templates/form.tmpl plus
// templates/fields/<type>.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the HTML policy applied to hint/help markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// WithManifest replaces the field-type asset manifest.
func WithManifest(manifest Manifest) Option {
	return func(cfg *config) {
		if manifest != nil {
			cfg.manifest = manifest
		}
	}
}

// WithAssetPrefix sets the URL prefix prepended to manifest asset paths.
// Defaults to "/assets/".
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		if prefix != "" {
			cfg.assetPrefix = prefix
		}
	}
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	sanitizer   *bluemonday.Policy
	manifest    Manifest
	assetPrefix string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		sanitizer:   bluemonday.UGCPolicy(),
		manifest:    DefaultManifest(),
		assetPrefix: "/assets/",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		sanitizer:   cfg.sanitizer,
		manifest:    cfg.manifest,
		assetPrefix: cfg.assetPrefix,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form markup for one operation. The per-page asset
// tracker from options gates which field-type assets are linked; pass the
// same tracker across multiple Render calls to share assets on one page.
func (r *Renderer) Render(_ context.Context, form render.Form, options render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	tracker := options.Assets
	if tracker == nil {
		tracker = assets.NewTracker()
	}

	method := render.EffectiveMethod(form, options)
	hidden := render.MergeHiddenFields(options.Hidden, render.MethodOverride(method))

	pageAssets := r.collectAssets(form.Fields, options, tracker)

	rendered := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		html, err := r.renderField(field, options)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
		}
		rendered = append(rendered, map[string]any{
			"name": field.Name,
			"type": field.Type,
			"html": html,
		})
	}

	hiddenInputs := make([]map[string]any, 0)
	for _, input := range render.SortedHiddenFields(hidden) {
		hiddenInputs = append(hiddenInputs, map[string]any{
			"name":  input.Name,
			"value": input.Value,
		})
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form": map[string]any{
			"operation": form.Operation,
			"title":     form.Title,
			"action":    form.Action,
			"method":    browserMethod(method),
		},
		"hidden":      hiddenInputs,
		"fields":      rendered,
		"stylesheets": pageAssets.stylesheets,
		"scripts":     pageAssets.scripts,
		"theme":       themeContext(options),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// renderField resolves the field template by namespaced type, falling back to
// the bare type and finally the text control.
func (r *Renderer) renderField(field fields.Field, options render.Options) (string, error) {
	data := map[string]any{"field": r.fieldContext(field, options)}

	var lastErr error
	for _, candidate := range templateCandidates(field) {
		html, err := r.templates.RenderTemplate(candidate, data)
		if err == nil {
			return html, nil
		}
		lastErr = err
	}
	return "", lastErr
}

type pageAssets struct {
	stylesheets []string
	scripts     []string
}

func (r *Renderer) collectAssets(formFields []fields.Field, options render.Options, tracker *assets.Tracker) pageAssets {
	resolve := r.assetURL
	if options.Theme != nil && options.Theme.AssetURL != nil {
		resolve = options.Theme.AssetURL
	}

	page := pageAssets{}
	if tracker.MarkOnce("vanilla.base") {
		page.stylesheets = append(page.stylesheets, resolve(StylesheetName))
	}

	for _, field := range formFields {
		if !tracker.MarkOnce(assets.Identifier(field.Type, field.ViewNamespace)) {
			continue
		}
		for _, asset := range r.manifest.Lookup(field) {
			switch asset.Kind {
			case AssetCSS:
				page.stylesheets = append(page.stylesheets, resolve(asset.Path))
			case AssetJS:
				page.scripts = append(page.scripts, resolve(asset.Path))
			}
		}
	}
	return page
}

func (r *Renderer) assetURL(path string) string {
	if path == "" {
		return ""
	}
	return r.assetPrefix + path
}

func templateCandidates(field fields.Field) []string {
	candidates := make([]string, 0, 3)
	if key := field.TemplateKey(); key != field.Type {
		candidates = append(candidates, "templates/fields/"+key+".tmpl")
	}
	if field.Type != "" {
		candidates = append(candidates, "templates/fields/"+field.Type+".tmpl")
	}
	candidates = append(candidates, "templates/fields/"+fields.TypeText+".tmpl")
	return candidates
}

// browserMethod maps the effective verb onto what a <form method=""> accepts.
// Everything but GET submits as POST; non-browser verbs ride the hidden
// _method input instead.
func browserMethod(method string) string {
	if strings.EqualFold(method, "GET") {
		return "get"
	}
	return "post"
}

func themeContext(options render.Options) map[string]any {
	cfg := options.Theme
	if cfg == nil {
		return map[string]any{}
	}

	vars := cfg.CSSVars
	if len(vars) == 0 && len(cfg.Tokens) > 0 {
		vars = make(map[string]string, len(cfg.Tokens))
		for key, value := range cfg.Tokens {
			vars["--"+key] = value
		}
	}

	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(vars),
	}
}

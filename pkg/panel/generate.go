package panel

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-crudfields/pkg/assets"
	"github.com/goliatone/go-crudfields/pkg/render"
)

// Request describes the inputs required to render one operation's form.
type Request struct {
	// Operation selects which configured operation to render.
	Operation string

	// Renderer names the renderer to use. If empty, the panel falls back to
	// the configured default renderer.
	Renderer string

	// Title, Action, and Method override the operation's configured form
	// metadata for this request.
	Title  string
	Action string
	Method string

	// ThemeName and ThemeVariant pick the theme resolved through the
	// configured selector. Empty values fall back to the panel defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request instructions such as prefilled
	// values, server-side errors, or extra hidden inputs. When omitted,
	// renderers receive the zero-value struct.
	RenderOptions render.Options
}

// Generate assembles the operation's form, applies decorators and theme
// configuration, and renders it with the selected renderer.
func (p *Panel) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("panel: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.initialiseErr; err != nil {
		return nil, err
	}

	if req.Operation == "" {
		return nil, errors.New("panel: operation is required")
	}
	if !p.Has(req.Operation) {
		return nil, fmt.Errorf("panel: operation %q not configured", req.Operation)
	}

	state := p.Operation(req.Operation)
	form := state.Form()
	if req.Title != "" {
		form.Title = req.Title
	}
	if req.Action != "" {
		form.Action = req.Action
	}
	if req.Method != "" {
		form.Method = req.Method
	}

	if err := p.applyDecorators(&form); err != nil {
		return nil, err
	}

	renderer, err := p.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Assets == nil {
		// Each Generate call is one page lifecycle. Callers composing several
		// forms on a single page pass a shared tracker via RenderOptions.
		options.Assets = assets.NewTracker()
	}
	if options.Theme == nil {
		cfg, err := p.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("panel: render output: %w", err)
	}
	return output, nil
}

func (p *Panel) applyDecorators(form *render.Form) error {
	if len(p.decorators) == 0 || form == nil {
		return nil
	}
	for _, decorator := range p.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("panel: decorate form: %w", err)
		}
	}
	return nil
}

func (p *Panel) rendererFor(name string) (render.Renderer, error) {
	if p.registry == nil {
		return nil, errors.New("panel: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = p.defaultRenderer
	}

	if target != "" {
		renderer, err := p.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("panel: renderer %q: %w", name, err)
		}
	}

	names := p.registry.List()
	if len(names) == 0 {
		return nil, errors.New("panel: no renderers registered")
	}

	renderer, err := p.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("panel: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

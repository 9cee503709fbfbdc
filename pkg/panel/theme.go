package panel

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// defaultThemeFallbacks maps partial keys onto the embedded vanilla field
// templates so a sparse theme manifest still resolves every control.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"fields.text":     "templates/fields/text.tmpl",
		"fields.textarea": "templates/fields/textarea.tmpl",
		"fields.number":   "templates/fields/number.tmpl",
		"fields.checkbox": "templates/fields/checkbox.tmpl",
		"fields.select":   "templates/fields/select.tmpl",
		"fields.upload":   "templates/fields/upload.tmpl",
		"fields.json":     "templates/fields/json.tmpl",
		"fields.hidden":   "templates/fields/hidden.tmpl",
	}
}

// themeConfig resolves the requested theme through the configured selector
// and flattens the selection into renderer configuration. Returns nil when no
// selector is configured or nothing names a theme.
func (p *Panel) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if p.themeSelector == nil {
		return nil, nil
	}

	if name == "" {
		name = p.defaultTheme
	}
	if variant == "" {
		variant = p.defaultVariant
	}
	if name == "" {
		return nil, nil
	}

	selection, err := p.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("panel: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}
	return buildRendererConfig(selection, p.themeFallbacks), nil
}

// buildRendererConfig merges the manifest's base values with the selected
// variant's overrides: variant tokens, templates, and asset files win over
// the base, and fallback partials fill any key the manifest leaves unset.
func buildRendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.Partials = copyStringMap(fallbacks)
		return cfg
	}

	var variant theme.Variant
	if selection.Variant != "" {
		variant = manifest.Variants[selection.Variant]
	}

	cfg.Tokens = mergeStringMaps(manifest.Tokens, variant.Tokens)
	cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.Partials = mergeStringMaps(fallbacks, manifest.Templates, variant.Templates)

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := mergeStringMaps(manifest.Assets.Files, variant.Assets.Files)
	cfg.AssetURL = assetResolver(prefix, files)

	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	return func(key string) string {
		if key == "" {
			return ""
		}
		if mapped, ok := files[key]; ok {
			key = mapped
		}
		if prefix == "" {
			return key
		}
		return prefix + "/" + key
	}
}

func mergeStringMaps(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for key, value := range m {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

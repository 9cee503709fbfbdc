package panel

import (
	"context"
	"testing"

	theme "github.com/goliatone/go-theme"
)

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"fields.text": "themes/acme/text.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"vanilla.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"fields.checkbox": "themes/acme/dark/checkbox.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vanilla.vendor": "vendor.dark.js",
					},
				},
			},
		},
	}
}

func TestGenerate_PassesThemeConfigToRenderer(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: acmeManifest(),
	}}

	panel, renderer := newCapturePanel(WithThemeSelector(selector))
	panel.Operation("create")

	if _, err := panel.Generate(context.Background(), Request{
		Operation:    "create",
		ThemeName:    "acme",
		ThemeVariant: "dark",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0] != (selectorCall{name: "acme", variant: "dark"}) {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("selection identity mismatch: %+v", cfg)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("tokens not merged with variant override, got %s", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("css vars not derived from variant tokens, got %s", cfg.CSSVars["--brand"])
	}
	if cfg.Partials["fields.text"] != "themes/acme/text.tmpl" {
		t.Fatalf("base template override missing, got %s", cfg.Partials["fields.text"])
	}
	if cfg.Partials["fields.checkbox"] != "themes/acme/dark/checkbox.tmpl" {
		t.Fatalf("variant template override missing, got %s", cfg.Partials["fields.checkbox"])
	}
	if cfg.Partials["fields.textarea"] != defaultThemeFallbacks()["fields.textarea"] {
		t.Fatalf("fallback partial not applied, got %s", cfg.Partials["fields.textarea"])
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.AssetURL("vanilla.vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("unexpected vendor asset url: %s", got)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
	if got := cfg.AssetURL("crudfields-vanilla.css"); got != "/assets/themes/acme/crudfields-vanilla.css" {
		t.Fatalf("unmapped keys should join the prefix, got %s", got)
	}
}

func TestGenerate_ThemeDefaultsApplyWhenRequestOmitsTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "light"}}

	panel, renderer := newCapturePanel(
		WithThemeSelector(selector),
		WithThemeDefaults("acme", "light"),
	)
	panel.Operation("create")

	if _, err := panel.Generate(context.Background(), Request{Operation: "create"}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "light"}) {
		t.Fatalf("defaults not forwarded: %+v", selector.calls)
	}
	if renderer.options.Theme == nil {
		t.Fatalf("expected theme config from defaults")
	}
}

func TestGenerate_NoThemeWithoutSelectorOrName(t *testing.T) {
	panel, renderer := newCapturePanel()
	panel.Operation("create")

	if _, err := panel.Generate(context.Background(), Request{Operation: "create"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.options.Theme != nil {
		t.Fatalf("expected nil theme config without a selector")
	}

	selector := &stubThemeSelector{}
	panel2, renderer2 := newCapturePanel(WithThemeSelector(selector))
	panel2.Operation("create")

	if _, err := panel2.Generate(context.Background(), Request{Operation: "create"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 0 {
		t.Fatalf("selector must not run without a theme name")
	}
	if renderer2.options.Theme != nil {
		t.Fatalf("expected nil theme config without a theme name")
	}
}

package vanilla

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-crudfields/pkg/assets"
	"github.com/goliatone/go-crudfields/pkg/fields"
	"github.com/goliatone/go-crudfields/pkg/render"
)

func newTestRenderer(t *testing.T, options ...Option) *Renderer {
	t.Helper()

	renderer, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func articleForm() render.Form {
	return render.Form{
		Operation: "update",
		Title:     "Edit Article",
		Action:    "/admin/articles/42",
		Method:    "PUT",
		Fields: []fields.Field{
			{Name: "title", Type: fields.TypeText, Label: "Title", Attributes: fields.Attributes{"required": true}},
			{Name: "body", Type: fields.TypeTextarea, Label: "Body"},
			{Name: "status", Type: fields.TypeSelect, Label: "Status", Attributes: fields.Attributes{
				"options": []any{"draft", "published"},
			}},
			{Name: "published", Type: fields.TypeCheckbox, Label: "Published"},
			{Name: "meta", Type: fields.TypeJSON, Label: "Meta"},
			{Name: "cover", Type: fields.TypeUpload, Label: "Cover", Upload: true},
		},
	}
}

func TestRender_FullForm(t *testing.T) {
	renderer := newTestRenderer(t)

	output, err := renderer.Render(context.Background(), articleForm(), render.Options{
		Values: map[string]any{
			"title":     "Hello",
			"status":    "published",
			"published": true,
			"meta":      map[string]any{"tags": []any{"go"}},
		},
		Errors: map[string][]string{
			"title": {"title is taken"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`<form class="cf-form" action="/admin/articles/42" method="post" data-operation="update">`,
		`<h2 class="cf-form__title">Edit Article</h2>`,
		`<input type="hidden" name="_method" value="PUT">`,
		`name="title" value="Hello"`,
		`<span class="cf-required">*</span>`,
		`<li>title is taken</li>`,
		`<option value="published" selected>published</option>`,
		`type="checkbox" id="cf-published" name="published" value="true" checked`,
		`data-cf-json`,
		`&quot;tags&quot;`,
		`type="file" id="cf-cover" name="cover" data-cf-upload`,
		`<link rel="stylesheet" href="/assets/crudfields-vanilla.css">`,
		`<script src="/assets/crudfields-select.js" defer></script>`,
		`<script src="/assets/crudfields-json.js" defer></script>`,
		`<script src="/assets/crudfields-upload.js" defer></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q\n%s", want, html)
		}
	}
}

func TestRender_GetFormSkipsMethodOverride(t *testing.T) {
	renderer := newTestRenderer(t)

	form := render.Form{Operation: "search", Action: "/admin/articles", Method: "GET", Fields: []fields.Field{
		{Name: "q", Type: fields.TypeText, Label: "Query"},
	}}

	output, err := renderer.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, `method="get"`) {
		t.Fatalf("expected get form, got:\n%s", html)
	}
	if strings.Contains(html, render.MethodFieldName) {
		t.Fatalf("GET form must not emit a method override:\n%s", html)
	}
}

func TestRender_SharedTrackerEmitsAssetsOnce(t *testing.T) {
	renderer := newTestRenderer(t)
	tracker := assets.NewTracker()

	form := render.Form{Operation: "create", Action: "/a", Fields: []fields.Field{
		{Name: "status", Type: fields.TypeSelect, Label: "Status", Attributes: fields.Attributes{
			"options": []any{"a", "b"},
		}},
	}}

	first, err := renderer.Render(context.Background(), form, render.Options{Assets: tracker})
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := renderer.Render(context.Background(), form, render.Options{Assets: tracker})
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if !strings.Contains(string(first), "crudfields-select.js") {
		t.Fatalf("first render should link the select script:\n%s", first)
	}
	if strings.Contains(string(second), "crudfields-select.js") {
		t.Fatalf("second render must not repeat the select script:\n%s", second)
	}
	if strings.Contains(string(second), "crudfields-vanilla.css") {
		t.Fatalf("second render must not repeat the base stylesheet:\n%s", second)
	}
}

func TestRender_UnknownTypeFallsBackToText(t *testing.T) {
	renderer := newTestRenderer(t)

	form := render.Form{Operation: "create", Action: "/a", Fields: []fields.Field{
		{Name: "contact", Type: "email", Label: "Contact"},
	}}

	output, err := renderer.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(string(output), `type="email" id="cf-contact"`) {
		t.Fatalf("expected email input via text fallback:\n%s", output)
	}
}

func TestRender_NamespacedTemplateWins(t *testing.T) {
	bundle := fstest.MapFS{
		"templates/form.tmpl": &fstest.MapFile{
			Data: []byte(`{% for entry in fields %}{{ entry.html|safe }}{% endfor %}`),
		},
		"templates/fields/media.upload.tmpl": &fstest.MapFile{
			Data: []byte(`<media-picker name="{{ field.name }}"></media-picker>`),
		},
		"templates/fields/text.tmpl": &fstest.MapFile{
			Data: []byte(`<input name="{{ field.name }}">`),
		},
	}
	renderer := newTestRenderer(t, WithTemplatesFS(bundle))

	form := render.Form{Operation: "create", Action: "/a", Fields: []fields.Field{
		{Name: "cover", Type: fields.TypeUpload, ViewNamespace: "media", Upload: true},
		{Name: "title", Type: fields.TypeText},
	}}

	output, err := renderer.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, `<media-picker name="cover"></media-picker>`) {
		t.Fatalf("namespaced template not used:\n%s", html)
	}
	if !strings.Contains(html, `<input name="title">`) {
		t.Fatalf("text fallback not used for plain field:\n%s", html)
	}
}

func TestRender_ThemeVariables(t *testing.T) {
	renderer := newTestRenderer(t)

	form := render.Form{Operation: "create", Action: "/a", Fields: []fields.Field{
		{Name: "title", Type: fields.TypeText, Label: "Title"},
	}}

	output, err := renderer.Render(context.Background(), form, render.Options{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--cf-color-accent": "#123456"},
			AssetURL: func(key string) string {
				return "/themes/acme/" + key
			},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
		`style="--cf-color-accent: #123456"`,
		`<link rel="stylesheet" href="/themes/acme/crudfields-vanilla.css">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q\n%s", want, html)
		}
	}
}

func TestRender_SanitizesHintMarkup(t *testing.T) {
	renderer := newTestRenderer(t)

	form := render.Form{Operation: "create", Action: "/a", Fields: []fields.Field{
		{Name: "title", Type: fields.TypeText, Label: "Title", Attributes: fields.Attributes{
			"hint": `Use <em>plain</em> language<script>alert(1)</script>`,
		}},
	}}

	output, err := renderer.Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, `Use <em>plain</em> language`) {
		t.Fatalf("hint markup lost:\n%s", html)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("script tag survived sanitization:\n%s", html)
	}
}

func TestRendererMetadata(t *testing.T) {
	renderer := newTestRenderer(t)

	if got := renderer.Name(); got != "vanilla" {
		t.Fatalf("name = %q", got)
	}
	if got := renderer.ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
}

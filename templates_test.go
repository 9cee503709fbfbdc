package crudfields

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedTemplatesContainFormAndFieldControls(t *testing.T) {
	fsys := EmbeddedTemplates()
	if _, err := fs.ReadFile(fsys, "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
	for _, name := range []string{"text", "textarea", "number", "checkbox", "select", "upload", "json", "hidden"} {
		if _, err := fs.ReadFile(fsys, "templates/fields/"+name+".tmpl"); err != nil {
			t.Fatalf("expected %s control template to be readable: %v", name, err)
		}
	}
}

func TestEmbeddedAssetsIncludeBaseStylesheet(t *testing.T) {
	fsys := EmbeddedAssets()
	data, err := fs.ReadFile(fsys, "crudfields-vanilla.css")
	if err != nil {
		t.Fatalf("expected base stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".cf-form") {
		t.Fatalf("expected base stylesheet to style .cf-form")
	}
}

package fieldconfig

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-crudfields/pkg/fields"
)

const articleYAML = `
operations:
  create:
    saveExcluded: ["_token"]
    fields:
      - name: title
        type: text
        attributes:
          placeholder: Article title
      - name: body
        type: textarea
  update:
    fields:
      - name: title
`

func TestLoadFS_ParsesYAMLDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/article.yaml": {Data: []byte(articleYAML)},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	op, ok := store.Operation("create")
	if !ok {
		t.Fatalf("create operation missing")
	}
	if op.Source != "forms/article.yaml" {
		t.Fatalf("source: %q", op.Source)
	}
	if diff := cmp.Diff([]string{"_token"}, op.SaveExcluded); diff != "" {
		t.Fatalf("saveExcluded (-want +got):\n%s", diff)
	}

	names := make([]string, 0, len(op.Fields))
	for _, def := range op.Fields {
		names = append(names, def.Name)
	}
	if diff := cmp.Diff([]string{"title", "body"}, names); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}

	if _, ok := store.Operation("update"); !ok {
		t.Fatalf("update operation missing")
	}
}

func TestLoadFS_ParsesJSONDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/user.json": {Data: []byte(`{
			"operations": {
				"create": {
					"fields": [{"name": "email", "type": "text"}]
				}
			}
		}`)},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Empty() {
		t.Fatalf("store is empty")
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestLoadFS_DuplicateOperationAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("operations:\n  create:\n    fields: [{name: title}]\n")},
		"b.yaml": {Data: []byte("operations:\n  create:\n    fields: [{name: body}]\n")},
	}

	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate operation") {
		t.Fatalf("expected duplicate operation error, got %v", err)
	}
}

func TestLoadFS_EmptyFileErrors(t *testing.T) {
	fsys := fstest.MapFS{"empty.yaml": {Data: []byte("  \n")}}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestLoadFS_UnnamedFieldErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("operations:\n  create:\n    fields: [{type: text}]\n")},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected error for unnamed field")
	}
}

func TestLoadFS_DuplicateFieldErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("operations:\n  create:\n    fields: [{name: title}, {name: title}]\n")},
	}
	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "twice") {
		t.Fatalf("expected duplicate field error, got %v", err)
	}
}

func TestLoadFS_IgnoresNonConfigFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md": {Data: []byte("# nope")},
	}
	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("unexpected operations parsed")
	}
}

func TestApply_SeedsRegistryInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/article.yaml": {Data: []byte(articleYAML)},
	}
	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	op, _ := store.Operation("create")

	registry := fields.NewRegistry()
	if err := Apply(op, registry); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if diff := cmp.Diff([]string{"title", "body"}, registry.Names()); diff != "" {
		t.Fatalf("registry order (-want +got):\n%s", diff)
	}

	title, _ := registry.Get("title")
	if title.Label != "Title" {
		t.Fatalf("label not defaulted: %q", title.Label)
	}
	if got, _ := title.Attr("placeholder"); got != "Article title" {
		t.Fatalf("placeholder attribute lost: %v", got)
	}
}

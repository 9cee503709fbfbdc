package casts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode_StructuredStringsAreDecoded(t *testing.T) {
	src := Map{"meta": KindJSON, "tags": KindArray}

	got := Decode(src, map[string]any{
		"title": "Hello",
		"meta":  `{"color":"red"}`,
		"tags":  `["go","web"]`,
	})

	want := map[string]any{
		"title": "Hello",
		"meta":  map[string]any{"color": "red"},
		"tags":  []any{"go", "web"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode (-want +got):\n%s", diff)
	}
}

func TestDecode_FailureFallsBackToEmptyValue(t *testing.T) {
	src := Map{"meta": KindObject, "tags": KindCollection}

	got := Decode(src, map[string]any{
		"meta": `{"broken`,
		"tags": `[1,`,
	})

	want := map[string]any{
		"meta": map[string]any{},
		"tags": []any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode (-want +got):\n%s", diff)
	}
}

func TestDecode_NonStringValuesPassThrough(t *testing.T) {
	src := Map{"meta": KindJSON}

	payload := map[string]any{"color": "red"}
	got := Decode(src, map[string]any{"meta": payload})

	if diff := cmp.Diff(map[string]any{"meta": payload}, got); diff != "" {
		t.Fatalf("decode (-want +got):\n%s", diff)
	}
}

func TestDecode_UnknownCastKindIgnored(t *testing.T) {
	src := Map{"count": "int"}

	got := Decode(src, map[string]any{"count": "3"})
	if diff := cmp.Diff(map[string]any{"count": "3"}, got); diff != "" {
		t.Fatalf("decode (-want +got):\n%s", diff)
	}
}

func TestDecode_NilSourceAndEmptyValues(t *testing.T) {
	if got := Decode(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	got := Decode(nil, map[string]any{"a": 1})
	if diff := cmp.Diff(map[string]any{"a": 1}, got); diff != "" {
		t.Fatalf("decode (-want +got):\n%s", diff)
	}
}

func TestStructured(t *testing.T) {
	for kind, want := range map[string]bool{
		"json":       true,
		" Array ":    true,
		"object":     true,
		"collection": true,
		"int":        false,
		"":           false,
	} {
		if got := Structured(kind); got != want {
			t.Errorf("Structured(%q): want %v, got %v", kind, want, got)
		}
	}
}

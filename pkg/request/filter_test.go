package request

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter_WhitelistByDefault(t *testing.T) {
	filter := NewFilter([]string{"title", "body"})

	got := filter.Strip(map[string]any{
		"title":  "Hello",
		"body":   "World",
		"_token": "csrf",
		"spam":   true,
	})

	want := map[string]any{"title": "Hello", "body": "World"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("strip (-want +got):\n%s", diff)
	}
}

func TestFilter_ExclusionModeKeepsComplement(t *testing.T) {
	filter := NewFilter([]string{"title"}, WithExcluded("_token", "_method"))

	got := filter.Strip(map[string]any{
		"title":   "Hello",
		"surname": "Doe",
		"_token":  "csrf",
		"_method": "PUT",
	})

	want := map[string]any{"title": "Hello", "surname": "Doe"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("strip (-want +got):\n%s", diff)
	}
	if !filter.Exclusive() {
		t.Fatalf("expected exclusion mode")
	}
}

func TestFilter_KeysPreservesSubmittedOrder(t *testing.T) {
	filter := NewFilter([]string{"b", "a"})

	got := filter.Keys([]string{"a", "x", "b"})
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
}

func TestFilter_EmptyInputs(t *testing.T) {
	filter := NewFilter(nil)
	if got := filter.Strip(map[string]any{"any": 1}); got != nil {
		t.Fatalf("empty whitelist kept values: %v", got)
	}
	if got := filter.Keys(nil); got != nil {
		t.Fatalf("expected nil keys, got %v", got)
	}
}

func TestFilter_BlankAndDuplicateNamesIgnored(t *testing.T) {
	filter := NewFilter([]string{" title ", "", "title"})
	got := filter.Keys([]string{"title"})
	if diff := cmp.Diff([]string{"title"}, got); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
}

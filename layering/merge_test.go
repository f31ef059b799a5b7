package layering

import (
	"reflect"
	"testing"
)

func TestMergeLayersMapsStrongWins(t *testing.T) {
	payload := map[string]any{"first": "Ada", "status": "active"}
	defaults := map[string]any{"status": "draft", "role": "member"}

	got := MergeLayers(payload, defaults)
	want := map[string]any{"first": "Ada", "status": "active", "role": "member"}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("merged snapshot mismatch:\nwant: %#v\n got: %#v", want, got)
	}

	// The result is detached from both inputs.
	got["role"] = "admin"
	if defaults["role"] != "member" {
		t.Fatalf("defaults mutated through merge result: %v", defaults)
	}
}

func TestMergeLayersNestedMaps(t *testing.T) {
	strong := map[string]any{"meta": map[string]any{"a": 1}}
	weak := map[string]any{"meta": map[string]any{"a": 0, "b": 2}}

	got := MergeLayers(strong, weak)
	meta, ok := got["meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", got["meta"])
	}
	if meta["a"] != 1 || meta["b"] != 2 {
		t.Fatalf("expected nested merge with strong precedence, got %v", meta)
	}
}

func TestMergeLayersNilStrongFallsBack(t *testing.T) {
	defaults := map[string]any{"status": "draft"}

	got := MergeLayers(nil, defaults)
	if !reflect.DeepEqual(defaults, got) {
		t.Fatalf("expected defaults when payload is nil, got %#v", got)
	}
}

func TestMergeLayersZeroInput(t *testing.T) {
	type sample struct {
		Value int
	}
	var zero sample
	if got := MergeLayers[sample](); got != zero {
		t.Fatalf("expected MergeLayers() to return zero value, got %+v", got)
	}
}

func TestCloneDetachesSnapshots(t *testing.T) {
	original := map[string]any{
		"tags": []any{"a", "b"},
		"meta": map[string]any{"k": "v"},
	}

	cloned := Clone(original)
	cloned["meta"].(map[string]any)["k"] = "changed"
	cloned["tags"].([]any)[0] = "changed"

	if original["meta"].(map[string]any)["k"] != "v" {
		t.Fatalf("expected clone to detach nested maps, got %v", original)
	}
	if original["tags"].([]any)[0] != "a" {
		t.Fatalf("expected clone to detach slices, got %v", original)
	}
}

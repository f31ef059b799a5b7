package virtuals

import "testing"

type personView struct {
	First    string `json:"first"`
	Last     string `json:"last"`
	FullName string `json:"fullName"`
}

func TestAsHydratesTypedView(t *testing.T) {
	rec := newStubRecord(map[string]any{"first": "Ada", "last": "Lovelace"})
	model := New(rec, nameRegistry(t))

	view, err := As[personView](model)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.First != "Ada" || view.Last != "Lovelace" {
		t.Fatalf("expected persisted fields decoded, got %+v", view)
	}
	if view.FullName != "Ada Lovelace" {
		t.Fatalf("expected computed field decoded, got %+v", view)
	}
}

func TestAsHonorsSerializationOptions(t *testing.T) {
	rec := newStubRecord(map[string]any{"first": "Ada", "last": "Lovelace"})
	model := New(rec, nameRegistry(t))

	view, err := As[personView](model, WithVirtuals(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.FullName != "" {
		t.Fatalf("expected virtuals excluded from hydration, got %+v", view)
	}
}

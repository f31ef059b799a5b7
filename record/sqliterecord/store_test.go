package sqliterecord

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-virtuals"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestSaveAssignsIdentityAndPersists(t *testing.T) {
	store := openTestStore(t)
	rec := store.NewRecord("person", map[string]any{"first": "Ada"})

	if !rec.IsNew() {
		t.Fatal("expected fresh record to be new")
	}

	err := rec.Save(context.Background(), map[string]any{"last": "Lovelace"}, virtuals.SaveOptions{})
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if rec.IsNew() || rec.ID() == "" {
		t.Fatal("expected identity assigned on insert")
	}

	loaded, err := store.Load(context.Background(), "person", rec.ID())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if got := loaded.Get("first"); got != "Ada" {
		t.Fatalf("expected seeded attribute persisted, got %v", got)
	}
	if got := loaded.Get("last"); got != "Lovelace" {
		t.Fatalf("expected payload persisted, got %v", got)
	}
}

func TestSaveUpdateRewritesRow(t *testing.T) {
	store := openTestStore(t)
	rec := store.NewRecord("person", map[string]any{"first": "Ada"})

	if err := rec.Save(context.Background(), nil, virtuals.SaveOptions{}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	id := rec.ID()

	err := rec.Save(context.Background(), map[string]any{"first": "Grace"}, virtuals.SaveOptions{
		Method: virtuals.MethodUpdate,
		Patch:  true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.ID() != id {
		t.Fatalf("expected identity stable across updates, got %q", rec.ID())
	}

	loaded, err := store.Load(context.Background(), "person", id)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if got := loaded.Get("first"); got != "Grace" {
		t.Fatalf("expected update persisted, got %v", got)
	}
}

func TestFailedInsertLeavesRecordNew(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	rec := store.NewRecord("person", map[string]any{"first": "Ada"})

	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	if err := rec.Save(context.Background(), nil, virtuals.SaveOptions{}); err == nil {
		t.Fatal("expected save error against a closed store")
	}
	if !rec.IsNew() {
		t.Fatal("failed insert must leave the record new")
	}
	if rec.ID() != "" {
		t.Fatalf("failed insert must not commit an identity, got %q", rec.ID())
	}
}

func TestLoadMissingRecord(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Load(context.Background(), "person", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadScopesByObjectType(t *testing.T) {
	store := openTestStore(t)
	rec := store.NewRecord("person", map[string]any{"first": "Ada"})
	if err := rec.Save(context.Background(), nil, virtuals.SaveOptions{}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := store.Load(context.Background(), "order", rec.ID())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound across object types, got %v", err)
	}
}

func TestUnsetRemovesAttributeFromPayload(t *testing.T) {
	store := openTestStore(t)
	rec := store.NewRecord("person", map[string]any{"first": "Ada", "temp": true})

	if err := rec.Set("temp", nil, virtuals.SetOptions{Unset: true}); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if err := rec.Save(context.Background(), nil, virtuals.SaveOptions{}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	loaded, err := store.Load(context.Background(), "person", rec.ID())
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	snapshot := loaded.ToJSON()
	if _, ok := snapshot["temp"]; ok {
		t.Fatalf("expected attribute removed before persistence, got %v", snapshot)
	}
}

func TestToJSONIncludesIdentity(t *testing.T) {
	store := openTestStore(t)
	rec := store.NewRecord("person", map[string]any{"first": "Ada"})

	if _, ok := rec.ToJSON()["id"]; ok {
		t.Fatal("expected no identity before insert")
	}

	if err := rec.Save(context.Background(), nil, virtuals.SaveOptions{}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := rec.ToJSON()["id"]; got != rec.ID() {
		t.Fatalf("expected identity in snapshot, got %v", got)
	}
}

func TestRecordWorksAsModelBackend(t *testing.T) {
	store := openTestStore(t)
	rec := store.NewRecord("person", map[string]any{"first": "Ada", "last": "Lovelace"})

	registry, err := virtuals.NewRegistry(map[string]virtuals.Accessor{
		"full_name": {
			Get: func(m *virtuals.Model, _ ...any) (any, error) {
				first, _ := m.Record().Get("first").(string)
				last, _ := m.Record().Get("last").(string)
				return first + " " + last, nil
			},
		},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	model := virtuals.New(rec, registry)
	if err := model.Save(context.Background(), nil, virtuals.SaveOptions{}); err != nil {
		t.Fatalf("save: %v", err)
	}

	snapshot, err := model.ToJSON()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got := snapshot["full_name"]; got != "Ada Lovelace" {
		t.Fatalf("expected computed attribute in snapshot, got %v", got)
	}
	if snapshot["id"] == nil {
		t.Fatal("expected persisted identity in snapshot")
	}
}

package virtuals

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func BenchmarkPatchSaveWithTrace(b *testing.B) {
	registry, err := NewRegistry(map[string]Accessor{
		"fullName": {
			Get: func(m *Model, _ ...any) (any, error) {
				first, _ := m.Get("first")
				last, _ := m.Get("last")
				return fmt.Sprintf("%v %v", first, last), nil
			},
			Set: func(m *Model, value any) error {
				parts := strings.SplitN(fmt.Sprint(value), " ", 2)
				if err := m.Set("first", parts[0], SetOptions{}); err != nil {
					return err
				}
				if len(parts) > 1 {
					return m.Set("last", parts[1], SetOptions{})
				}
				return nil
			},
		},
	})
	if err != nil {
		b.Fatalf("registry: %v", err)
	}

	attrs := map[string]any{"first": "Ada", "last": "Lovelace"}
	for i := 0; i < 10; i++ {
		attrs[fmt.Sprintf("field_%d", i)] = i
	}
	model := New(newStubRecord(attrs), registry)

	payload := map[string]any{
		"fullName": "Grace Hopper",
		"field_0":  42,
		"field_1":  "updated",
	}
	opts := SaveOptions{Method: MethodUpdate, Patch: true}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := model.SaveWithTrace(ctx, payload, opts); err != nil {
			b.Fatalf("save: %v", err)
		}
	}
}

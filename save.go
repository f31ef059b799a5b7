package virtuals

import (
	"context"
	"fmt"

	"github.com/goliatone/go-virtuals/layering"
)

// Save persists values through the underlying record. Insert and full-update
// saves pass the payload straight through. A patch save (Patch set with
// update semantics) first runs every virtual setter named in the payload
// against a capture view, strips the virtual keys, and merges the captured
// real-attribute writes into the payload handed downstream; the virtual
// names themselves never reach the record. A setter failure aborts the save
// before anything is persisted.
func (m *Model) Save(ctx context.Context, values map[string]any, opts SaveOptions) error {
	_, err := m.SaveWithTrace(ctx, values, opts)
	return err
}

// SaveValue is the single-key save shape; it folds into the bag form.
func (m *Model) SaveValue(ctx context.Context, key string, value any, opts SaveOptions) error {
	return m.Save(ctx, map[string]any{key: value}, opts)
}

// SaveWithTrace behaves like Save and additionally reports which payload keys
// were virtual and which real-attribute writes the capture pass collected.
func (m *Model) SaveWithTrace(ctx context.Context, values map[string]any, opts SaveOptions) (SaveTrace, error) {
	method := m.effectiveMethod(opts.Method)
	trace := SaveTrace{
		Method:      method.String(),
		Patch:       opts.Patch && method == MethodUpdate,
		PayloadKeys: sortedKeys(values),
	}

	if !trace.Patch {
		payload := copyAttributes(values)
		if method == MethodInsert && len(m.cfg.defaults) > 0 {
			payload = layering.MergeLayers(payload, copyAttributes(m.cfg.defaults))
		}
		if err := m.rec.Save(ctx, payload, opts); err != nil {
			return trace, err
		}
		m.emitSaveEvent(ctx, verbModelSaved, trace)
		return trace, nil
	}

	sink := newCaptureSink()
	view := m.withSink(sink)
	sanitized := make(map[string]any, len(values))
	for _, key := range trace.PayloadKeys {
		acc, ok := m.registry.accessor(key)
		if !ok {
			sanitized[key] = values[key]
			continue
		}
		trace.VirtualKeys = append(trace.VirtualKeys, key)
		if acc.Set == nil {
			// Read-only virtual in a patch payload: stripped, not persisted.
			continue
		}
		if err := view.invokeSetter(key, acc, values[key]); err != nil {
			// The sink is local to this call, so it is released on this
			// path as well; the record never sees a partial payload.
			return trace, fmt.Errorf("virtuals: patch save: %w", err)
		}
	}
	sink.mergeInto(sanitized)
	trace.CapturedKeys = sink.keys()

	if err := m.rec.Save(ctx, sanitized, opts); err != nil {
		return trace, err
	}
	m.emitSaveEvent(ctx, verbModelPatched, trace)
	return trace, nil
}

func (m *Model) effectiveMethod(method Method) Method {
	if method != MethodAuto {
		return method
	}
	if m.rec.IsNew() {
		return MethodInsert
	}
	return MethodUpdate
}

// WithDefaults registers class-level default attributes merged beneath the
// payload on insert saves. The payload always wins; defaults only fill keys
// it leaves unset. The map is copied at construction time.
func WithDefaults(defaults map[string]any) Option {
	normalized := copyAttributes(defaults)
	return func(cfg *modelConfig) {
		cfg.defaults = normalized
	}
}

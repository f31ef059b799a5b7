package virtuals

import "time"

// Get reads name, consulting the registry first. Registered virtuals are
// computed by their getter bound to this model with args; unknown names fall
// through to the real attribute get unchanged. A read never mutates the real
// attribute set by itself.
func (m *Model) Get(name string, args ...any) (any, error) {
	acc, ok := m.registry.accessor(name)
	if !ok {
		return m.rec.Get(name, args...), nil
	}
	start := time.Now()
	value, err := acc.Get(m, args...)
	m.accessLogger().LogAccess(AccessLogEvent{
		Virtual:  name,
		Op:       OpGet,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, wrapAccessError(name, OpGet, err)
	}
	return value, nil
}

// Set writes a single key. Virtual keys dispatch to their setter, whose
// return value is the only effect; the real attribute set is never touched
// for a virtual key. A virtual without a setter swallows the write silently;
// callers that need to detect this should consult Registry.Writable first.
// Non-virtual keys delegate to the real attribute set, or to the capture
// sink while a patch save is in flight.
func (m *Model) Set(name string, value any, opts SetOptions) error {
	acc, ok := m.registry.accessor(name)
	if ok {
		return m.invokeSetter(name, acc, value)
	}
	if m.sink != nil {
		m.sink.put(name, value, opts)
		return nil
	}
	return m.rec.Set(name, value, opts)
}

// SetAll writes a bag of keys. Keys are partitioned once: registered virtuals
// dispatch to their setters (setter-less virtuals drop silently), and the
// non-virtual remainder passes through to the real attribute set in a single
// call, preserving the underlying bag semantics.
func (m *Model) SetAll(values map[string]any, opts SetOptions) error {
	var remainder map[string]any
	for _, name := range sortedKeys(values) {
		acc, ok := m.registry.accessor(name)
		if !ok {
			if remainder == nil {
				remainder = make(map[string]any, len(values))
			}
			remainder[name] = values[name]
			continue
		}
		if err := m.invokeSetter(name, acc, values[name]); err != nil {
			return err
		}
	}
	if remainder == nil {
		return nil
	}
	if m.sink != nil {
		m.sink.putAll(remainder, opts)
		return nil
	}
	return m.rec.SetAll(remainder, opts)
}

func (m *Model) invokeSetter(name string, acc Accessor, value any) error {
	if acc.Set == nil {
		// Read-only virtual: the write is a documented no-op.
		return nil
	}
	start := time.Now()
	err := acc.Set(m, value)
	m.accessLogger().LogAccess(AccessLogEvent{
		Virtual:  name,
		Op:       OpSet,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return wrapAccessError(name, OpSet, err)
	}
	return nil
}

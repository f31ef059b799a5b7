package virtuals

import "sort"

// captureSink buffers real-attribute writes issued while virtual setters run
// during a patch save. The sink is allocated per save call and threaded
// through the capture view, so its lifetime is lexically scoped to that call
// and it is released on every exit path.
type captureSink struct {
	values map[string]any
}

func newCaptureSink() *captureSink {
	return &captureSink{values: map[string]any{}}
}

func (s *captureSink) put(name string, value any, opts SetOptions) {
	if opts.Unset {
		delete(s.values, name)
		return
	}
	s.values[name] = value
}

func (s *captureSink) putAll(values map[string]any, opts SetOptions) {
	for name, value := range values {
		s.put(name, value, opts)
	}
}

// mergeInto copies the captured writes into payload. Captured values are
// authoritative over keys already present.
func (s *captureSink) mergeInto(payload map[string]any) {
	for name, value := range s.values {
		payload[name] = value
	}
}

func (s *captureSink) keys() []string {
	return sortedKeys(s.values)
}

func sortedKeys(values map[string]any) []string {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package virtuals

// Model decorates a persistence Record with virtual properties declared in a
// Registry. The wrapper routes attribute access between the virtual and real
// namespaces; registry membership wins over the real attribute set on every
// call.
//
// A Model is meant for single-goroutine cooperative use, matching the
// underlying record's semantics. Reentrant Get/Set calls issued from inside
// virtual getters and setters are expected and handled.
type Model struct {
	rec      Record
	registry *Registry
	cfg      modelConfig

	// sink is non-nil only on the capture view handed to virtual setters
	// during a patch save. Real-attribute writes through that view land in
	// the sink instead of the live record.
	sink *captureSink
}

// New wraps rec with the virtual declarations in registry. A nil registry is
// valid and yields a transparent wrapper.
func New(rec Record, registry *Registry, opts ...Option) *Model {
	return &Model{
		rec:      rec,
		registry: registry,
		cfg:      applyOptions(opts),
	}
}

// Record returns the wrapped persistence collaborator.
func (m *Model) Record() Record {
	return m.rec
}

// Registry returns the virtual declarations shared by this model's class.
func (m *Model) Registry() *Registry {
	return m.registry
}

// IsNew reports whether the underlying record has no persisted identity yet.
func (m *Model) IsNew() bool {
	return m.rec.IsNew()
}

// Attributes returns a copy of the record's plain attribute mapping. Virtual
// values are not included; use ToJSON for the merged representation.
func (m *Model) Attributes() map[string]any {
	return m.rec.ToJSON()
}

// withSink returns a shallow copy of m whose real-attribute writes are
// redirected into sink. The copy shares the record, registry, and
// configuration; only the write route differs.
func (m *Model) withSink(sink *captureSink) *Model {
	view := *m
	view.sink = sink
	return &view
}

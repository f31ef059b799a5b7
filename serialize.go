package virtuals

// JSONOption configures one ToJSON call.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	virtuals *bool
	omitNew  bool
	params   map[string][]any
}

func applyJSONOptions(opts []JSONOption) jsonConfig {
	cfg := jsonConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithVirtuals overrides the model's default inclusion flag for this call.
func WithVirtuals(include bool) JSONOption {
	return func(cfg *jsonConfig) {
		cfg.virtuals = &include
	}
}

// WithOmitNew suppresses virtuals entirely when the record has not been
// persisted yet.
func WithOmitNew() JSONOption {
	return func(cfg *jsonConfig) {
		cfg.omitNew = true
	}
}

// WithVirtualParams supplies per-virtual getter arguments keyed by virtual
// name. The map is copied.
func WithVirtualParams(params map[string][]any) JSONOption {
	return func(cfg *jsonConfig) {
		for name, args := range params {
			cfg.setArgs(name, args)
		}
	}
}

// WithVirtualArgs supplies getter arguments for a single virtual.
func WithVirtualArgs(name string, args ...any) JSONOption {
	return func(cfg *jsonConfig) {
		cfg.setArgs(name, args)
	}
}

func (cfg *jsonConfig) setArgs(name string, args []any) {
	if cfg.params == nil {
		cfg.params = map[string][]any{}
	}
	cfg.params[name] = append([]any(nil), args...)
}

// ToJSON produces the externally visible plain representation: the record's
// attribute mapping with computed virtual values merged after. Rules apply
// in order: omit-new suppression, then the per-call virtuals override (the
// model default decides when unset), then getter computation with any
// per-virtual arguments. Virtual names overwrite colliding real attribute
// keys. Getter failures propagate.
func (m *Model) ToJSON(opts ...JSONOption) (map[string]any, error) {
	cfg := applyJSONOptions(opts)

	out := m.rec.ToJSON()
	if out == nil {
		out = map[string]any{}
	}
	if cfg.omitNew && m.rec.IsNew() {
		return out, nil
	}

	include := m.cfg.includeVirtuals
	if cfg.virtuals != nil {
		include = *cfg.virtuals
	}
	if !include {
		return out, nil
	}

	for _, name := range m.registry.Names() {
		value, err := m.Get(name, cfg.params[name]...)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

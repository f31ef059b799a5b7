package virtuals

type jsGetterConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSGetterOption configures the JS getter.
type JSGetterOption func(*jsGetterConfig)

// JSWithProgramCache applies a ProgramCache to the JS getter.
func JSWithProgramCache(cache ProgramCache) JSGetterOption {
	return func(cfg *jsGetterConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS getter.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSGetterOption {
	return func(cfg *jsGetterConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSGetterOptions(opts []JSGetterOption) jsGetterConfig {
	cfg := jsGetterConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

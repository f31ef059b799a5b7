package virtuals

import (
	"github.com/goliatone/go-virtuals/pkg/activity"
)

// Option configures a Model wrapper at construction time.
type Option func(*modelConfig)

type modelConfig struct {
	includeVirtuals bool
	logger          AccessLogger
	activityHooks   activity.Hooks
	activityChannel string
	emitter         *activity.Emitter
	objectType      string
	idAttribute     string
	defaults        map[string]any
}

func defaultConfig() modelConfig {
	return modelConfig{
		includeVirtuals: true,
		idAttribute:     "id",
	}
}

func applyOptions(opts []Option) modelConfig {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.emitter = activity.NewEmitter(cfg.activityHooks, activity.Config{
		Enabled: true,
		Channel: cfg.activityChannel,
	})
	return cfg
}

// WithVirtualsByDefault toggles whether ToJSON merges virtuals when the call
// does not specify an override. The default is true.
func WithVirtualsByDefault(include bool) Option {
	return func(cfg *modelConfig) {
		cfg.includeVirtuals = include
	}
}

// WithObjectType sets the object type reported on activity events emitted by
// saves. Defaults to "model".
func WithObjectType(objectType string) Option {
	return func(cfg *modelConfig) {
		cfg.objectType = objectType
	}
}

// WithIDAttribute names the real attribute carrying the record's identity,
// used when building activity events. Defaults to "id".
func WithIDAttribute(name string) Option {
	return func(cfg *modelConfig) {
		if name != "" {
			cfg.idAttribute = name
		}
	}
}

func (m *Model) accessLogger() AccessLogger {
	if m.cfg.logger != nil {
		return m.cfg.logger
	}
	return noopAccessLogger{}
}

func copyAttributes(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

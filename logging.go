package virtuals

import "time"

// AccessLogEvent describes one virtual getter or setter invocation.
type AccessLogEvent struct {
	Virtual  string
	Op       AccessOp
	Duration time.Duration
	Err      error
}

// AccessLogger records accessor events.
type AccessLogger interface {
	LogAccess(AccessLogEvent)
}

// AccessLoggerFunc adapts a function to AccessLogger.
type AccessLoggerFunc func(AccessLogEvent)

// LogAccess implements AccessLogger.
func (f AccessLoggerFunc) LogAccess(event AccessLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopAccessLogger struct{}

func (noopAccessLogger) LogAccess(AccessLogEvent) {}

// WithAccessLogger attaches an accessor logger to the Model wrapper.
func WithAccessLogger(logger AccessLogger) Option {
	return func(cfg *modelConfig) {
		if logger == nil {
			cfg.logger = noopAccessLogger{}
			return
		}
		cfg.logger = logger
	}
}

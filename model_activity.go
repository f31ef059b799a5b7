package virtuals

import (
	"context"
	"fmt"

	"github.com/goliatone/go-virtuals/pkg/activity"
)

// WithActivityHooks attaches hooks notified after successful saves. Hooks
// are cloned and nil entries dropped to preserve immutability.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *modelConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel overrides the channel stamped on save events when the
// event itself carries none. Defaults to "models".
func WithActivityChannel(channel string) Option {
	return func(cfg *modelConfig) {
		cfg.activityChannel = channel
	}
}

// ActivityHooks returns a cloned slice of the hooks configured on the model.
// The returned slice can be safely mutated by the caller.
func (m *Model) ActivityHooks() activity.Hooks {
	if m == nil {
		return nil
	}
	return cloneActivityHooks(m.cfg.activityHooks)
}

const (
	verbModelSaved   = "saved"
	verbModelPatched = "patched"
)

// emitSaveEvent routes a completed save through the configured emitter,
// which applies the channel default before fanning out to hooks. Hook
// failures never fail a save that already persisted.
func (m *Model) emitSaveEvent(ctx context.Context, verb string, trace SaveTrace) {
	if !m.cfg.emitter.Enabled() {
		return
	}

	objectID := ""
	if value := m.rec.Get(m.cfg.idAttribute); value != nil {
		objectID = fmt.Sprint(value)
	}
	input := activity.SaveEventInput{
		ObjectType:   m.cfg.objectType,
		ObjectID:     objectID,
		Method:       trace.Method,
		PayloadKeys:  trace.PayloadKeys,
		VirtualKeys:  trace.VirtualKeys,
		CapturedKeys: trace.CapturedKeys,
	}

	var event activity.Event
	if verb == verbModelPatched {
		event = activity.BuildModelPatchedEvent(input)
	} else {
		event = activity.BuildModelSavedEvent(input)
	}
	_ = m.cfg.emitter.Emit(ctx, event)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}

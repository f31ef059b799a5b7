package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"k": "v"}
	evt := Event{
		Verb:       " saved ",
		ActorID:    " actor ",
		UserID:     " user ",
		TenantID:   " tenant ",
		ObjectType: " person ",
		ObjectID:   " 42 ",
		Channel:    " models ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != "saved" || got.ObjectType != "person" || got.ObjectID != "42" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "actor" || got.UserID != "user" || got.TenantID != "tenant" || got.Channel != "models" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	if got.Metadata["k"] != "v" {
		t.Fatalf("expected metadata value preserved: %+v", got.Metadata)
	}
	got.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
}

func TestHooksNotifyShortCircuitsMissingRequired(t *testing.T) {
	hooks := Hooks{&CaptureHook{}}
	err := hooks.Notify(context.Background(), Event{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	capture := hooks[0].(*CaptureHook)
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	capture := &CaptureHook{}
	failing := errors.New("sink down")
	hooks := Hooks{
		capture,
		HookFunc(func(context.Context, Event) error { return failing }),
		nil,
	}

	err := hooks.Notify(context.Background(), Event{
		Verb:       "saved",
		ObjectType: "person",
		ObjectID:   "1",
		OccurredAt: time.Now(),
	})
	if !errors.Is(err, failing) {
		t.Fatalf("expected joined error to include hook failure, got %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected event delivered to healthy hooks, got %d", len(capture.Events))
	}
}

func TestHooksNotifyNilContext(t *testing.T) {
	var seen context.Context
	hooks := Hooks{HookFunc(func(ctx context.Context, _ Event) error {
		seen = ctx
		return nil
	})}

	err := hooks.Notify(nil, Event{Verb: "saved", ObjectType: "person", ObjectID: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen == nil {
		t.Fatalf("expected background context substituted for nil")
	}
}

func TestHooksEnabled(t *testing.T) {
	if (Hooks{}).Enabled() {
		t.Fatalf("empty hooks must not report enabled")
	}
	if !(Hooks{&CaptureHook{}}).Enabled() {
		t.Fatalf("non-empty hooks should report enabled")
	}
}

func TestEmitterDisabledAndEnabled(t *testing.T) {
	capture := &CaptureHook{}

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if disabled.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := disabled.Emit(context.Background(), Event{Verb: "saved", ObjectType: "person", ObjectID: "1"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured when disabled")
	}

	enabled := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: ""})
	if !enabled.Enabled() {
		t.Fatalf("expected emitter to be enabled")
	}
	if err := enabled.Emit(context.Background(), Event{Verb: "saved", ObjectType: "person", ObjectID: "1"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event captured, got %d", len(capture.Events))
	}
	if capture.Events[0].Channel != "models" {
		t.Fatalf("expected default channel applied, got %q", capture.Events[0].Channel)
	}
}

func TestEmitterPreservesExplicitChannel(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "audit"})

	err := emitter.Emit(context.Background(), Event{
		Verb:       "saved",
		ObjectType: "person",
		ObjectID:   "1",
		Channel:    "billing",
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	last, ok := capture.Last()
	if !ok {
		t.Fatalf("expected event captured")
	}
	if last.Channel != "billing" {
		t.Fatalf("expected explicit channel preserved, got %q", last.Channel)
	}
}

func TestEmitterWithoutHooksStaysDisabled(t *testing.T) {
	emitter := NewEmitter(nil, Config{Enabled: true})
	if emitter.Enabled() {
		t.Fatalf("emitter with no hooks must not report enabled")
	}
}

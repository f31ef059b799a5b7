package activity

import (
	"strings"
	"time"
)

// SaveEventInput describes the common fields for model save events.
type SaveEventInput struct {
	ActorID      string
	UserID       string
	TenantID     string
	ObjectType   string
	ObjectID     string
	Channel      string
	Metadata     map[string]any
	Method       string
	PayloadKeys  []string
	VirtualKeys  []string
	CapturedKeys []string
	OccurredAt   time.Time
}

// BuildModelSavedEvent constructs a normalized event for a full save.
func BuildModelSavedEvent(input SaveEventInput) Event {
	return buildSaveEvent("model.saved", input)
}

// BuildModelPatchedEvent constructs a normalized event for a patch save.
func BuildModelPatchedEvent(input SaveEventInput) Event {
	return buildSaveEvent("model.patched", input)
}

func buildSaveEvent(verb string, input SaveEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Method != "" {
		metadata = ensureMetadata(metadata)
		metadata["method"] = input.Method
	}
	if len(input.PayloadKeys) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["payload_keys"] = append([]string{}, input.PayloadKeys...)
	}
	if len(input.VirtualKeys) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["virtual_keys"] = append([]string{}, input.VirtualKeys...)
	}
	if len(input.CapturedKeys) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["captured_keys"] = append([]string{}, input.CapturedKeys...)
	}

	objectType := strings.TrimSpace(input.ObjectType)
	if objectType == "" {
		objectType = "model"
	}
	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}

package virtuals

import "testing"

func TestSaveTraceJSONRoundTrip(t *testing.T) {
	trace := SaveTrace{
		Method:       "update",
		Patch:        true,
		PayloadKeys:  []string{"email", "fullName"},
		VirtualKeys:  []string{"fullName"},
		CapturedKeys: []string{"first", "last"},
	}

	payload, err := trace.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored, err := SaveTraceFromJSON(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Method != "update" || !restored.Patch {
		t.Fatalf("unexpected header after round trip: %+v", restored)
	}
	if len(restored.CapturedKeys) != 2 || restored.CapturedKeys[0] != "first" {
		t.Fatalf("unexpected captured keys: %v", restored.CapturedKeys)
	}
}

func TestSaveTraceFromJSONRejectsGarbage(t *testing.T) {
	if _, err := SaveTraceFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

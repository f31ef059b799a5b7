package virtuals

import "encoding/json"

// SaveTrace records how one save call routed its payload: which keys the
// caller supplied, which of those were registered virtuals, and which real
// attributes the capture pass collected from their setters. Key slices are
// sorted.
type SaveTrace struct {
	Method       string   `json:"method"`
	Patch        bool     `json:"patch"`
	PayloadKeys  []string `json:"payload_keys,omitempty"`
	VirtualKeys  []string `json:"virtual_keys,omitempty"`
	CapturedKeys []string `json:"captured_keys,omitempty"`
}

// ToJSON serialises the trace for logging or transport helpers.
func (t SaveTrace) ToJSON() ([]byte, error) {
	type alias SaveTrace
	return json.Marshal(alias(t))
}

// SaveTraceFromJSON deserialises a payload previously generated via ToJSON.
func SaveTraceFromJSON(payload []byte) (SaveTrace, error) {
	type alias SaveTrace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return SaveTrace{}, err
	}
	return SaveTrace(trace), nil
}

package signature

import (
	"encoding/json"
	"fmt"
)

// canonicalEnvelope fixes the field order of the signed byte sequence.
// encoding/json emits struct fields in declaration order and map keys
// sorted, so for a given event the serialization is deterministic.
type canonicalEnvelope struct {
	Source    string         `json:"source"`
	EventType string         `json:"eventType"`
	Payload   map[string]any `json:"payload"`
}

// CanonicalBytes returns the exact byte sequence a sender signs for an
// event: compact JSON of source, eventType and payload, in that order,
// with object keys inside payload sorted at every nesting level. This is
// the wire contract; any change breaks interoperability with senders.
func CanonicalBytes(source, eventType string, payload map[string]any) ([]byte, error) {
	b, err := json.Marshal(canonicalEnvelope{
		Source:    source,
		EventType: eventType,
		Payload:   payload,
	})
	if err != nil {
		return nil, fmt.Errorf("canonicalize event: %w", err)
	}
	return b, nil
}

package cache

import (
	"encoding/json"
	"errors"
)

// Value is a cached payload read back from disk. Payloads written from
// maps, slices, or raw JSON come back structured; everything else is raw
// text. The variant is decided by a one-byte sniff of the stored blob.
type Value struct {
	raw        []byte
	structured bool
}

func newValue(data []byte) *Value {
	structured := len(data) > 0 && (data[0] == '{' || data[0] == '[')
	return &Value{raw: data, structured: structured}
}

// Structured returns the payload as raw JSON when it was stored as a JSON
// container.
func (v *Value) Structured() (json.RawMessage, bool) {
	if !v.structured {
		return nil, false
	}
	return json.RawMessage(v.raw), true
}

// Text returns the payload as text.
func (v *Value) Text() string {
	return string(v.raw)
}

// Decode unmarshals a structured payload into target.
func (v *Value) Decode(target any) error {
	if !v.structured {
		return errors.New("cache value is not structured")
	}
	return json.Unmarshal(v.raw, target)
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OptionalInt distinguishes "unknown" from "actually zero" for upstream
// fields such as capacity and enrollment. It marshals to null when unknown,
// so a missing value can never be mistaken for real data.
type OptionalInt struct {
	Value int
	Known bool
}

// KnownInt wraps a present value.
func KnownInt(v int) OptionalInt {
	return OptionalInt{Value: v, Known: true}
}

// UnknownInt is the explicit "no data" marker.
func UnknownInt() OptionalInt {
	return OptionalInt{}
}

// MarshalJSON encodes unknown values as null.
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Known {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON treats null as unknown.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = OptionalInt{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("optional int: %w", err)
	}
	*o = OptionalInt{Value: v, Known: true}
	return nil
}

func (o OptionalInt) String() string {
	if !o.Known {
		return "unknown"
	}
	return fmt.Sprintf("%d", o.Value)
}

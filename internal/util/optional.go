package util

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a JSON key that was absent, sent as null, or sent with a
// value. Absent keys never reach UnmarshalJSON, so Set stays false.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// HasValue reports whether the key was sent with a non-null value.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

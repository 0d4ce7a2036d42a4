package validation

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a request attribute that remembers whether it was sent, whether it
// was null and whether it decoded into T. Strings are trimmed.
type Field[T any] struct {
	Set     bool
	Null    bool
	Invalid bool
	Value   T
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		return nil
	}
	if err := json.Unmarshal(b, &f.Value); err != nil {
		f.Invalid = true
		return nil
	}
	if s, ok := any(&f.Value).(*string); ok {
		*s = strings.TrimSpace(*s)
	}
	return nil
}

// Present reports whether the field carries a usable value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null && !f.Invalid
}

// Ptr returns nil for a null field and a pointer to the value otherwise.
func (f Field[T]) Ptr() *T {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}

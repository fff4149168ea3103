package parser

import "encoding/json"

// Field is a best-effort extraction result. Found is false when the text did
// not follow the expected convention; the value is then the zero value.
type Field[T any] struct {
	Value T
	Found bool
}

// Some wraps an extracted value
func Some[T any](value T) Field[T] {
	return Field[T]{Value: value, Found: true}
}

// Get returns the value and whether it was found
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Found
}

// MarshalJSON encodes a missing field as null
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Found {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

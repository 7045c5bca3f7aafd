package models

import (
	"bytes"
	"encoding/json"
)

// Field is a server value that is either Present or Absent. JSON null
// and a missing key both decode to Absent.
type Field[T any] struct {
	Value   T
	Present bool
}

// Some returns a present field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Present: true}
}

// Absent returns a field with no value.
func Absent[T any]() Field[T] {
	return Field[T]{}
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Field[T]{Value: v, Present: true}
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// OrDefault returns the value when present, otherwise def.
func (f Field[T]) OrDefault(def T) T {
	if f.Present {
		return f.Value
	}
	return def
}

package models

import "encoding/json"

// Optional wraps a JSON field that may be absent, explicitly null, or
// carry a value. Set is true when the field appeared in the input at
// all; Valid is true only when it carried a non-null value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked by encoding/json when the field is
// present, so reaching it at all marks the field as Set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the wrapped value; an absent or null field
// encodes as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

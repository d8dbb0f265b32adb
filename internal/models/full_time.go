package models

import (
	"bytes"
	"encoding/json"
)

// DefaultFullTime applies when is_full_time is absent.
const DefaultFullTime = true

// FullTimeFlag decodes is_full_time and tells an absent key from an explicit null.
type FullTimeFlag struct {
	present bool
	null    bool
	value   bool
}

func (f *FullTimeFlag) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		return nil
	}

	return json.Unmarshal(data, &f.value)
}

// Resolve returns the flag value, DefaultFullTime when the key was absent,
// and a field violation when the key was null.
func (f FullTimeFlag) Resolve() (bool, *FieldError) {
	switch {
	case !f.present:
		return DefaultFullTime, nil
	case f.null:
		return false, &FieldError{Field: "is_full_time", Message: "must be a boolean, not null"}
	default:
		return f.value, nil
	}
}

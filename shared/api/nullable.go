package api

import (
	"bytes"
	"encoding/json"
)

// NullableString distinguishes an absent JSON member from an explicit null.
// Set is true whenever the member appears in the document, null included.
type NullableString struct {
	Set   bool
	Value *string
}

func NewNullableString(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

func Null() NullableString {
	return NullableString{Set: true}
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// IsZero lets omitzero drop unset members when encoding.
func (n NullableString) IsZero() bool {
	return !n.Set
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

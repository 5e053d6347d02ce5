package dto

import (
	"bytes"
	"encoding/json"
)

// PaginationMeta describes a paginated listing.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NullableFloat distinguishes an absent JSON key from an explicit null.
// Set is false when the key was omitted; Value is nil when the key was null.
type NullableFloat struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON records that the key was present and decodes the value.
func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

// MarshalJSON renders the value, or null when unset.
func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Float builds a set NullableFloat holding v.
func Float(v float64) NullableFloat {
	return NullableFloat{Set: true, Value: &v}
}

// Null builds a set NullableFloat holding null.
func Null() NullableFloat {
	return NullableFloat{Set: true}
}

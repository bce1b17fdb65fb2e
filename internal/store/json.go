package store

import "encoding/json"

// marshalStrings encodes a string slice for storage in a TEXT column.
// A nil slice is stored as an empty JSON array.
func marshalStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// unmarshalStrings decodes a JSON array TEXT column into a string slice.
// Malformed or empty values decode to an empty slice rather than an error;
// a corrupt column should not make a whole row unreadable.
func unmarshalStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	return values
}

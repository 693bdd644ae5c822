package postgres

import (
	"encoding/json"
	"fmt"
)

// marshalJSONB serializes a slice-valued aggregate field for storage in a
// JSONB column. Nil slices are stored as empty JSON arrays so scans never
// produce SQL NULLs for list fields.
func marshalJSONB(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal field for JSONB storage: %w", err)
	}
	if string(data) == "null" {
		return []byte("[]"), nil
	}
	return data, nil
}

// unmarshalJSONB deserializes a JSONB column into the given destination.
// Empty or NULL column values leave the destination at its zero value.
func unmarshalJSONB(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSONB column: %w", err)
	}
	return nil
}

// Package util holds small file helpers shared by the generator and its CLI.
package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadJSON decodes the JSON file at path into v. A missing file is not an
// error; found reports whether anything was read.
func LoadJSON(path string, v any) (found bool, err error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(bz, v); err != nil {
		return false, fmt.Errorf("error unmarshaling %s: %w", path, err)
	}
	return true, nil
}

// SaveJSON writes v to path as indented JSON.
func SaveJSON(path string, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, append(bz, '\n'), 0o644)
}

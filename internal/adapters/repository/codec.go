package repository

import (
	"encoding/json"
	"fmt"
)

func encode(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %w", ErrStore, err)
	}
	return b, nil
}

func decode(b []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

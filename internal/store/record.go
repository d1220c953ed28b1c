package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON reads key and decodes it into v. It returns false, leaving v
// untouched, when the key is absent.
func LoadJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

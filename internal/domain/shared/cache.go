package shared

import (
	"context"
	"encoding/json"
	"time"
)

// Cache stores serialized values with a time to live.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit, nil and false on a miss
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// GetJSON decodes a cached JSON value into dst. A miss returns false and leaves dst untouched.
func GetJSON(ctx context.Context, c Cache, key string, dst any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON encodes value as JSON and stores it
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/dreamhome-service/internal/staffcache"
)

// RedisStaffMirror publishes staff cache entries into a Redis hash keyed by
// staff number, so other processes can read the projection without touching
// postgres.
type RedisStaffMirror struct {
	redis *Redis
	key   string
}

// NewRedisStaffMirror returns nil when redis is disabled.
func NewRedisStaffMirror(r *Redis, key string) *RedisStaffMirror {
	if !r.Enabled() {
		return nil
	}
	return &RedisStaffMirror{redis: r, key: key}
}

// Replace swaps the whole hash in one MULTI/EXEC.
func (m *RedisStaffMirror) Replace(ctx context.Context, entries map[string]staffcache.Entry) error {
	values := make([]any, 0, len(entries)*2)
	for staffNo, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode staff %s: %w", staffNo, err)
		}
		values = append(values, staffNo, string(raw))
	}

	pipe := m.redis.Client.TxPipeline()
	pipe.Del(ctx, m.key)
	if len(values) > 0 {
		pipe.HSet(ctx, m.key, values...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Put writes a single entry.
func (m *RedisStaffMirror) Put(ctx context.Context, staffNo string, entry staffcache.Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode staff %s: %w", staffNo, err)
	}
	return m.redis.Client.HSet(ctx, m.key, staffNo, string(raw)).Err()
}


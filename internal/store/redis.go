package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/redis/go-redis/v9"

	"trip-decoder/internal/document"
	"trip-decoder/internal/logger"
)

// redisBatch is the number of keys per SCAN page and MGET call.
const redisBatch = 100

// RedisSource reads trip documents stored as JSON strings under keys
// matching a pattern.
type RedisSource struct {
	client  redis.Cmdable
	pattern string
	log     *slog.Logger
}

// NewRedisSource reads keys matching pattern from client.
func NewRedisSource(client redis.Cmdable, pattern string, log *slog.Logger) *RedisSource {
	return &RedisSource{client: client, pattern: pattern, log: logger.OrNop(log)}
}

// ConnectRedis connects to addr and verifies the connection.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", addr, err)
	}

	return client, nil
}

// Fetch implements Source. Documents are returned in key order. Values that
// are not JSON objects are logged and skipped.
func (s *RedisSource) Fetch(ctx context.Context) ([]document.Snapshot, error) {
	var keys []string

	iter := s.client.Scan(ctx, 0, s.pattern, redisBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", s.pattern, err)
	}

	slices.Sort(keys)
	keys = slices.Compact(keys)

	snaps := make([]document.Snapshot, 0, len(keys))

	for chunk := range slices.Chunk(keys, redisBatch) {
		values, err := s.client.MGet(ctx, chunk...).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read %d keys: %w", len(chunk), err)
		}

		for i, v := range values {
			doc, err := parseRedisValue(v)
			if err != nil {
				s.log.Warn("skipping redis value", "key", chunk[i], "error", err)
				continue
			}

			if doc == nil {
				continue
			}

			snaps = append(snaps, document.Snapshot{ID: chunk[i], Data: doc})
		}
	}

	s.log.Debug("fetched trip documents", "pattern", s.pattern, "count", len(snaps))

	return snaps, nil
}

// parseRedisValue parses one MGET value. A nil value is a key that
// disappeared between SCAN and MGET.
func parseRedisValue(v any) (document.Document, error) {
	if v == nil {
		return nil, nil
	}

	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected value type %T", v)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("value is not a JSON object: %w", err)
	}

	if doc == nil {
		return nil, errors.New("value is JSON null")
	}

	return doc, nil
}

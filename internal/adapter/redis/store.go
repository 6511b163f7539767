package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

const scanBatch = 100

// Store keeps session entries as plain Redis strings under
// "<namespace>:<profileID>:<key>".
type Store struct {
	client    goredis.UniversalClient
	namespace string
}

// NewStore creates a Store. client may be a single-node or cluster client.
func NewStore(client goredis.UniversalClient, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

func (s *Store) prefix(profileID uuid.UUID) string {
	return s.namespace + ":" + profileID.String() + ":"
}

func (s *Store) Read(ctx context.Context, profileID uuid.UUID, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix(profileID)+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("session entry %s/%s: %w", profileID, key, domain.ErrNotFound)
		}
		return "", fmt.Errorf("redis get %s/%s: %w", profileID, key, err)
	}
	return v, nil
}

func (s *Store) Write(ctx context.Context, profileID uuid.UUID, key, value string) error {
	if err := s.client.Set(ctx, s.prefix(profileID)+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s/%s: %w", profileID, key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	if err := s.client.Del(ctx, s.prefix(profileID)+key).Err(); err != nil {
		return fmt.Errorf("redis del %s/%s: %w", profileID, key, err)
	}
	return nil
}

// Snapshot scans the profile's keyspace and fetches every entry with MGET.
func (s *Store) Snapshot(ctx context.Context, profileID uuid.UUID) (map[string]string, error) {
	prefix := s.prefix(profileID)

	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s: %w", profileID, err)
	}

	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget %s: %w", profileID, err)
	}
	for i, v := range vals {
		// Keys deleted between SCAN and MGET come back as nil.
		str, ok := v.(string)
		if !ok {
			continue
		}
		out[strings.TrimPrefix(keys[i], prefix)] = str
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

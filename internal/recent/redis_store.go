package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ttl keeps a dashboard's recency list around between sessions without
// letting abandoned accounts accumulate keys forever.
const ttl = 30 * 24 * time.Hour

// RedisStore persists per-user recency lists in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed recency store.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: "recent:"}, nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "recent:"}
}

func (s *RedisStore) key(userID int64) string {
	return s.prefix + strconv.FormatInt(userID, 10)
}

// List loads a user's recency list. A missing key is an empty list, not an
// error.
func (s *RedisStore) List(ctx context.Context, userID int64) (List, error) {
	var l List
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return l, nil
	}
	if err != nil {
		return l, fmt.Errorf("load recent forums: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		return List{}, fmt.Errorf("unmarshal recent forums: %w", err)
	}
	return l, nil
}

// Record applies one forum visit to the stored list and returns the updated
// list.
func (s *RedisStore) Record(ctx context.Context, userID, forumID int64, name string) (List, error) {
	l, err := s.List(ctx, userID)
	if err != nil {
		return List{}, err
	}
	l.Record(forumID, name)

	data, err := json.Marshal(l)
	if err != nil {
		return List{}, fmt.Errorf("marshal recent forums: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), data, ttl).Err(); err != nil {
		return List{}, fmt.Errorf("save recent forums: %w", err)
	}
	return l, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Package viewstate stores per-user, per-post "visible children" windows.
// The windows are UI-only state kept beside the comment data, so a thread
// rebuilt from a fresh fetch can have its windows re-applied without the
// data model carrying them.
package viewstate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ttl bounds how long expansion state outlives the browsing session that
// created it.
const ttl = 24 * time.Hour

// RedisStore keeps window maps in Redis hashes keyed by (user, post).
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStoreWithClient creates a store from an existing Redis client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "viewstate:"}
}

func (s *RedisStore) key(userID, postID int64) string {
	return fmt.Sprintf("%s%d:%d", s.prefix, userID, postID)
}

// Windows returns the saved commentID -> visibleCount map for a post. A
// missing key is an empty map.
func (s *RedisStore) Windows(ctx context.Context, userID, postID int64) (map[int64]int, error) {
	fields, err := s.client.HGetAll(ctx, s.key(userID, postID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load view state: %w", err)
	}
	out := make(map[int64]int, len(fields))
	for k, v := range fields {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		out[id] = n
	}
	return out, nil
}

// SetWindow saves one comment's visible-children count and refreshes the
// hash TTL.
func (s *RedisStore) SetWindow(ctx context.Context, userID, postID, commentID int64, visible int) error {
	key := s.key(userID, postID)
	if err := s.client.HSet(ctx, key, strconv.FormatInt(commentID, 10), visible).Err(); err != nil {
		return fmt.Errorf("save view state: %w", err)
	}
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("expire view state: %w", err)
	}
	return nil
}

// ClearWindow drops one comment's saved window, falling back to the default.
func (s *RedisStore) ClearWindow(ctx context.Context, userID, postID, commentID int64) error {
	if err := s.client.HDel(ctx, s.key(userID, postID), strconv.FormatInt(commentID, 10)).Err(); err != nil {
		return fmt.Errorf("clear view state: %w", err)
	}
	return nil
}

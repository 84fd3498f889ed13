package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mbarrett/pickslip/internal/domain"
)

// ResponseCache implements domain.ResponseCache using plain Redis strings
// holding the raw upstream payload bytes.
//
// Key schema:
//
//	response:{source}:{season}:{week}
type ResponseCache struct {
	rdb *redis.Client
}

// NewResponseCache creates a ResponseCache backed by the given Client.
func NewResponseCache(c *Client) *ResponseCache {
	return &ResponseCache{rdb: c.Underlying()}
}

func responseKey(source string, season, week int) string {
	return fmt.Sprintf("response:%s:%d:%d", source, season, week)
}

// Get retrieves a cached payload. It returns domain.ErrNotFound when the key
// does not exist or has expired.
func (rc *ResponseCache) Get(ctx context.Context, source string, season, week int) ([]byte, error) {
	data, err := rc.rdb.Get(ctx, responseKey(source, season, week)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get %s response: %w", source, err)
	}
	return data, nil
}

// Set stores a payload with the given TTL. A non-positive TTL stores the
// payload without expiry.
func (rc *ResponseCache) Set(ctx context.Context, source string, season, week int, payload []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := rc.rdb.Set(ctx, responseKey(source, season, week), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s response: %w", source, err)
	}
	return nil
}

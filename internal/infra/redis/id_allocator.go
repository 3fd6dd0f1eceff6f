package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultIDKey holds the last visitor ID handed out.
const DefaultIDKey = "visitor:next_id"

// IDAllocator allocates visitor IDs with INCR so every instance sharing the
// Redis database draws from one sequence. The first ID on an empty key is 1.
type IDAllocator struct {
	client *redis.Client
	key    string
}

func NewIDAllocator(client *redis.Client, key string) *IDAllocator {
	if key == "" {
		key = DefaultIDKey
	}
	return &IDAllocator{client: client, key: key}
}

func (a *IDAllocator) Next(ctx context.Context) (int64, error) {
	id, err := a.client.Incr(ctx, a.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", a.key, err)
	}
	return id, nil
}

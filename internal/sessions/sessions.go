package sessions

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Duration is how long a refresh token stays valid if untouched.
	Duration = 7 * 24 * time.Hour
	// keyPrefix namespaces refresh tokens in Redis.
	keyPrefix = "refresh:"
)

// Cache maps opaque refresh tokens to user ids with a fixed TTL.
// Every operation is a single-key atomic put/get/delete.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Put stores the token -> user association for Duration, overwriting any
// existing entry for the same token.
func (c *Cache) Put(ctx context.Context, token string, userID int64) error {
	return c.rdb.Set(ctx, keyPrefix+token, strconv.FormatInt(userID, 10), Duration).Err()
}

// Get resolves a refresh token to a user id. A miss or an expired token
// returns ok=false, not an error; errors mean the cache is unreachable.
func (c *Cache) Get(ctx context.Context, token string) (int64, bool, error) {
	val, err := c.rdb.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return userID, true, nil
}

// Delete revokes a refresh token. Deleting a token that does not exist is
// not an error.
func (c *Cache) Delete(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, keyPrefix+token).Err()
}

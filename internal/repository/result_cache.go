package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ResultCache keeps serialized result projections of submitted sessions.
// Submitted sessions never change, so entries are only evicted by TTL.
// A nil Redis client turns every call into a miss.
type ResultCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewResultCache(rdb *redis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{Redis: rdb, TTL: ttl}
}

func resultKey(sessionID uint) string {
	return fmt.Sprintf("assessment:result:%d", sessionID)
}

// Get decodes a cached projection into dst and reports whether it was found.
func (c *ResultCache) Get(ctx context.Context, sessionID uint, dst interface{}) (bool, error) {
	if c == nil || c.Redis == nil {
		return false, nil
	}
	val, err := c.Redis.Get(ctx, resultKey(sessionID)).Bytes()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		// 缓存内容损坏，删除后回源
		c.Redis.Del(ctx, resultKey(sessionID))
		return false, nil
	}
	return true, nil
}

func (c *ResultCache) Set(ctx context.Context, sessionID uint, v interface{}) error {
	if c == nil || c.Redis == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, resultKey(sessionID), data, c.TTL).Err()
}

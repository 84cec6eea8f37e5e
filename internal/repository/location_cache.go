package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jengzang/checkin-backend-go/internal/models"
)

// ErrCacheMiss is returned when a key is absent from the KV store
var ErrCacheMiss = errors.New("cache miss")

// KVStore is the subset of Redis used by LocationCache
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// RedisKVStore is a KVStore backed by go-redis
type RedisKVStore struct {
	client *redis.Client
}

// NewRedisKVStore wraps a redis client
func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// LocationCache publishes each subject's current location as JSON so other
// services can read positions without calling this API
type LocationCache struct {
	kv  KVStore
	ttl time.Duration
}

// NewLocationCache creates a location cache; ttl 0 keeps entries forever
func NewLocationCache(kv KVStore, ttl time.Duration) *LocationCache {
	return &LocationCache{kv: kv, ttl: ttl}
}

func locationKey(id models.SubjectID) string {
	return "checkin:location:" + id.String()
}

// Put stores loc under the subject's key
func (c *LocationCache) Put(ctx context.Context, loc models.CurrentLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	if err := c.kv.Set(ctx, locationKey(loc.UserID), string(raw), c.ttl); err != nil {
		return fmt.Errorf("failed to cache location for user %d: %w", loc.UserID, err)
	}
	return nil
}

// Get reads the cached location of a subject
func (c *LocationCache) Get(ctx context.Context, id models.SubjectID) (*models.CurrentLocation, error) {
	raw, err := c.kv.Get(ctx, locationKey(id))
	if err != nil {
		return nil, err
	}
	var loc models.CurrentLocation
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return nil, fmt.Errorf("failed to decode cached location: %w", err)
	}
	return &loc, nil
}

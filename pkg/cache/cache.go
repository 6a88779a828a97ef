// Package cache provides a Redis-backed cache. All helpers are safe to call
// when no backend is connected: Get misses, Set/Del no-op.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"waroengpos/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// Store is the cache backend. Redis in production, memory in tests.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte, ttl time.Duration) error
	Del(keys ...string) error
}

var (
	mu    sync.RWMutex
	store Store
)

// Connect initialises the Redis client and verifies the connection with a ping.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so Get/Set/Del no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}

	SetStore(&redisStore{rdb: RDB})
	return nil
}

// SetStore swaps the cache backend (memory store in tests).
func SetStore(s Store) {
	mu.Lock()
	store = s
	mu.Unlock()
}

func backend() Store {
	mu.RLock()
	defer mu.RUnlock()
	return store
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	s := backend()
	if s == nil {
		return false
	}

	data, ok := s.Get(key)
	if !ok {
		return false
	}

	return json.Unmarshal(data, dest) == nil
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	s := backend()
	if s == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Set(key, data, ttl)
}

// Del removes one or more keys.
func Del(keys ...string) error {
	s := backend()
	if s == nil {
		return nil
	}
	return s.Del(keys...)
}

// Forget is an alias for Del.
func Forget(key string) error {
	return Del(key)
}

type redisStore struct {
	rdb *redis.Client
}

func (s *redisStore) Get(key string) ([]byte, bool) {
	data, err := s.rdb.Get(Ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *redisStore) Set(key string, data []byte, ttl time.Duration) error {
	return s.rdb.Set(Ctx, key, data, ttl).Err()
}

func (s *redisStore) Del(keys ...string) error {
	return s.rdb.Del(Ctx, keys...).Err()
}

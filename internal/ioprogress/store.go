// Package ioprogress publishes import progress to a key-value store
// shared by the coordinator, its worker subprocesses and pollers.
package ioprogress

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Store is the minimal key-value contract used for progress documents
// and the stop flag. Get returns nil without error for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(
	ctx context.Context,
	cfg config.RedisConfig,
) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, ConnectionError(cfg.Addr, err)
	}
	return client, nil
}

// NewRedisStore wraps a Redis client. Entries expire after ttl,
// zero ttl keeps them forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, ReadError(key, err)
	}
	return res, nil
}

func (r *redisStore) Set(ctx context.Context, key string, val []byte) error {
	if err := r.client.Set(ctx, key, val, r.ttl).Err(); err != nil {
		return WriteError(key, err)
	}
	return nil
}

func (r *redisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return WriteError(fmt.Sprintf("%v", keys), err)
	}
	return nil
}

func (r *redisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	var res []string
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		res = append(res, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, ReadError(pattern, err)
	}
	return res, nil
}

// memStore keeps entries in process memory. It serves single-process
// runs without Redis and tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemStore returns an in-memory Store.
func NewMemStore() Store {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	res := make([]byte, len(val))
	copy(res, val)
	return res, nil
}

func (m *memStore) Set(_ context.Context, key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(val))
	copy(cp, val)
	m.data[key] = cp
	return nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memStore) Keys(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []string
	for k := range m.data {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, ReadError(pattern, err)
		}
		if ok {
			res = append(res, k)
		}
	}
	return res, nil
}

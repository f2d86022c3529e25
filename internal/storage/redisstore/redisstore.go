// Package redisstore implements storage.Storage on Redis string keys.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"todo/internal/storage"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "todo:"

// Store implements storage.Backend with GET/SET/DEL.
type Store struct {
	client *redis.Client
	prefix string
}

// Option configures the store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Store around an existing client.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config holds connection settings for Open.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	var opts []Option
	if cfg.Prefix != "" {
		opts = append(opts, WithPrefix(cfg.Prefix))
	}
	return New(client, opts...), nil
}

// Key returns the Redis key used for key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storage.NewError(storage.OpRead, key, err)
	}
	return value, true, nil
}

// Set implements storage.Storage. Values never expire.
func (s *Store) Set(ctx context.Context, key, value string) error {
	err := s.client.Set(ctx, s.Key(key), value, 0).Err()
	return storage.NewError(storage.OpWrite, key, err)
}

// Remove implements storage.Storage.
func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.client.Del(ctx, s.Key(key)).Err()
	return storage.NewError(storage.OpRemove, key, err)
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Package backend opens the storage.Backend selected by configuration.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/storage/filestore"
	"todo/internal/storage/redisstore"
	"todo/internal/storage/sqlstore"
)

const (
	// ConnectTimeout bounds connecting to a network backend.
	ConnectTimeout = 5 * time.Second

	// connMaxLifetime recycles pooled SQL connections.
	connMaxLifetime = 30 * time.Minute
)

// Open connects the configured backend.
func Open(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return filestore.New(cfg.DataPath())

	case config.BackendRedis:
		st, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
			Prefix:   cfg.Storage.RedisPrefix,
		})
		if err != nil {
			return nil, wrapError(err)
		}
		return st, nil

	case config.BackendPostgres, config.BackendMySQL:
		st, err := sqlstore.Open(ctx, sqlstore.Config{
			Backend: cfg.Storage.Backend,
			DSN:     cfg.Storage.DSN,
			Table:   cfg.Storage.Table,
			// The store is single-writer.
			MaxOpenConns:    2,
			ConnMaxLifetime: connMaxLifetime,
		})
		if err != nil {
			return nil, wrapError(err)
		}
		return st, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// wrapError turns connection errors into user-facing messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") || strings.Contains(errStr, "i/o timeout") {
		return fmt.Errorf("connection timed out: %w", err)
	}
	if strings.Contains(errStr, "connection refused") {
		return fmt.Errorf("connection refused: %w", err)
	}
	return err
}

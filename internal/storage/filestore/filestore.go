// Package filestore implements storage.Storage with one file per key.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"todo/internal/storage"
)

// fileExt is appended to every escaped key.
const fileExt = ".json"

// Store keeps each key in its own file under Dir.
// Writes go to a temp file first and are renamed into place.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory with mode 0700.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

// Get implements storage.Storage.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, storage.NewError(storage.OpRead, key, err)
	}
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storage.NewError(storage.OpRead, key, err)
	}
	return string(data), true, nil
}

// Set implements storage.Storage.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return storage.NewError(storage.OpWrite, key, err)
	}
	return storage.NewError(storage.OpWrite, key, s.writeAtomic(s.path(key), []byte(value)))
}

// Remove implements storage.Storage.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return storage.NewError(storage.OpRemove, key, err)
	}
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return storage.NewError(storage.OpRemove, key, err)
}

// Close implements storage.Backend. There is nothing to release.
func (s *Store) Close() error {
	return nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Package storage defines the key-value contract used to persist the task list.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Storage is an asynchronous string key-value store.
type Storage interface {
	// Get returns the value stored under key.
	// The boolean is false when the key is absent; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend is a Storage that holds resources which must be released.
type Backend interface {
	Storage

	// Close releases connections and file handles.
	Close() error
}

// Op identifies the storage operation that failed.
type Op string

// Storage operations.
const (
	OpRead   Op = "read"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
)

// Sentinel errors for classifying storage failures with errors.Is.
var (
	ErrRead   = errors.New("storage read error")
	ErrWrite  = errors.New("storage write error")
	ErrRemove = errors.New("storage remove error")
)

// Error is returned by every backend when the underlying store fails.
type Error struct {
	Op  Op
	Key string
	Err error
}

// NewError wraps err as a storage failure of op on key.
// Returns nil if err is nil.
func NewError(op Op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Key: key, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's operation.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRead:
		return e.Op == OpRead
	case ErrWrite:
		return e.Op == OpWrite
	case ErrRemove:
		return e.Op == OpRemove
	}
	return false
}

// Package testutil provides testing utilities.
package testutil

import (
	"bytes"
	"context"
	"sync"

	"todo/internal/storage"
)

// FakeStorage is an in-memory storage.Backend for testing.
// It supports error injection and can hold writes until released.
type FakeStorage struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	rmErr   error
	gate    chan struct{}
	sets    []string
	removes int
	closed  bool

	// Writes receives the key of every Set or Remove as it starts.
	Writes chan string
}

// NewFakeStorage creates an empty FakeStorage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		data:   make(map[string]string),
		Writes: make(chan string, 256),
	}
}

// Put seeds a value without counting it as a write.
func (f *FakeStorage) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Value returns the stored value for key.
func (f *FakeStorage) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// FailGet makes every Get return err. Pass nil to stop failing.
func (f *FakeStorage) FailGet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// FailSet makes every Set return err. Pass nil to stop failing.
func (f *FakeStorage) FailSet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

// FailRemove makes every Remove return err. Pass nil to stop failing.
func (f *FakeStorage) FailRemove(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rmErr = err
}

// Hold makes subsequent writes block until Release.
func (f *FakeStorage) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate == nil {
		f.gate = make(chan struct{})
	}
}

// Release unblocks held writes.
func (f *FakeStorage) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

// Sets returns every value passed to a successful Set, in order.
func (f *FakeStorage) Sets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sets...)
}

// Removes returns the number of successful Remove calls.
func (f *FakeStorage) Removes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removes
}

// Closed reports whether Close was called.
func (f *FakeStorage) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *FakeStorage) waitGate(ctx context.Context, key string) error {
	select {
	case f.Writes <- key:
	default:
	}

	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()

	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get implements storage.Storage.
func (f *FakeStorage) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, storage.NewError(storage.OpRead, key, f.getErr)
	}
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements storage.Storage.
func (f *FakeStorage) Set(ctx context.Context, key, value string) error {
	if err := f.waitGate(ctx, key); err != nil {
		return storage.NewError(storage.OpWrite, key, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return storage.NewError(storage.OpWrite, key, f.setErr)
	}
	f.data[key] = value
	f.sets = append(f.sets, value)
	return nil
}

// Remove implements storage.Storage.
func (f *FakeStorage) Remove(ctx context.Context, key string) error {
	if err := f.waitGate(ctx, key); err != nil {
		return storage.NewError(storage.OpRemove, key, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rmErr != nil {
		return storage.NewError(storage.OpRemove, key, f.rmErr)
	}
	delete(f.data, key)
	f.removes++
	return nil
}

// Close implements storage.Backend.
func (f *FakeStorage) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// SafeBuffer is a bytes.Buffer safe for concurrent writers, used to capture
// logs written from background goroutines.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffered contents.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

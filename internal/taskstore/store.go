// Package taskstore owns the in-memory task list and mirrors it to storage.
//
// Every mutation is applied in memory first and then persisted as a full
// snapshot through an ordered writer. Write failures are logged and never
// roll back the in-memory state.
package taskstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo/internal/service"
	"todo/internal/storage"
)

const (
	// StorageKey is the key holding the serialized task list.
	StorageKey = "todo-app-tasks"

	// DefaultWriteTimeout bounds a single storage write.
	DefaultWriteTimeout = 5 * time.Second

	// maxIDAttempts bounds regeneration when a generator returns a taken ID.
	maxIDAttempts = 8
)

// Logger is the logging sink used by the store.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Store implements service.Service.
type Store struct {
	mu        sync.RWMutex
	tasks     []service.Task
	loading   bool
	lastWrite *Pending

	storage      storage.Storage
	logger       Logger
	newID        func() string
	writeTimeout time.Duration
	writer       *writer
	closeOnce    sync.Once
	closeErr     error
}

var _ service.Service = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logging sink.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDGenerator replaces the UUID generator used for new tasks.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithWriteTimeout bounds each storage write.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.writeTimeout = d
	}
}

// New creates a Store over st. IsLoading reports true until Load returns.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		loading:      true,
		storage:      st,
		logger:       log.Default(),
		newID:        uuid.NewString,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = DefaultWriteTimeout
	}
	s.writer = newWriter(st, StorageKey, s.writeTimeout, s.logger)
	return s
}

// Load replaces the in-memory list with the stored one.
// An absent key yields an empty list. A read or decode failure is logged,
// leaves the list empty and is returned as a *storage.Error of kind read.
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.read(ctx)

	s.mu.Lock()
	if err != nil {
		tasks = nil
	}
	s.tasks = tasks
	s.loading = false
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to load tasks", "err", err)
		return err
	}
	s.logger.Debug("loaded tasks", "count", len(tasks))
	return nil
}

func (s *Store) read(ctx context.Context) ([]service.Task, error) {
	value, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		var serr *storage.Error
		if errors.As(err, &serr) {
			return nil, err
		}
		return nil, storage.NewError(storage.OpRead, StorageKey, err)
	}
	if !ok || strings.TrimSpace(value) == "" {
		return nil, nil
	}

	tasks, err := decodeTasks(value)
	if err != nil {
		return nil, storage.NewError(storage.OpRead, StorageKey, err)
	}
	return tasks, nil
}

// decodeTasks parses the stored JSON array. Unknown fields, trailing data,
// empty IDs and duplicate IDs are all rejected.
func decodeTasks(value string) ([]service.Task, error) {
	dec := json.NewDecoder(strings.NewReader(value))
	dec.DisallowUnknownFields()

	var tasks []service.Task
	if err := dec.Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode task list: unexpected data after array")
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("decode task list: task %d has no id", i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("decode task list: duplicate id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return tasks, nil
}

func encodeTasks(tasks []service.Task) (string, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tasks); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Tasks implements service.Service.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// IsLoading implements service.Service.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Add implements service.Service. An empty title triggers no persist.
func (s *Store) Add(title string) (service.Task, bool) {
	title = service.NormalizeTitle(title)
	if title == "" {
		return service.Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := service.Task{ID: s.freshIDLocked(), Title: title}
	s.tasks = append(s.tasks, task)
	s.persistLocked()
	return task, true
}

func (s *Store) freshIDLocked() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
	id := uuid.NewString()
	for s.indexLocked(id) >= 0 {
		id = uuid.NewString()
	}
	return id
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
}

// ToggleComplete implements service.Service. Persists even when nothing matched.
func (s *Store) ToggleComplete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i >= 0 {
		s.tasks[i].Completed = !s.tasks[i].Completed
	}
	s.persistLocked()
	return i >= 0
}

// Delete implements service.Service. Persists even when nothing matched.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}
	s.persistLocked()
	return i >= 0
}

// Edit implements service.Service. Persists even when nothing changed.
func (s *Store) Edit(id, title string) bool {
	title = service.NormalizeTitle(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	changed := i >= 0 && title != ""
	if changed {
		s.tasks[i].Title = title
	}
	s.persistLocked()
	return changed
}

// Persist writes the current list to storage and returns the write's future.
// The result is also logged on failure; callers may ignore it.
func (s *Store) Persist() *Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *Store) persistLocked() *Pending {
	value, err := encodeTasks(s.tasks)
	if err != nil {
		p := newPending()
		err = storage.NewError(storage.OpWrite, StorageKey, err)
		s.logger.Error("failed to save tasks", "err", err)
		p.resolve(err)
		return p
	}
	s.lastWrite = s.writer.enqueue(&write{value: value, count: len(s.tasks), pending: newPending()})
	return s.lastWrite
}

// Clear implements service.Service. The list is emptied immediately; the
// remove is ordered after every write already issued.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.tasks = nil
	p := s.writer.enqueue(&write{remove: true, pending: newPending()})
	s.lastWrite = p
	s.mu.Unlock()

	return p.Wait(ctx)
}

// Flush implements service.Service. Returns the result of the last issued
// write, which settles after every earlier one.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	p := s.lastWrite
	s.mu.RUnlock()

	if p == nil {
		return nil
	}
	return p.Wait(ctx)
}

// Close implements service.Service. It flushes, stops the writer and closes
// the storage when it implements io.Closer.
func (s *Store) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		flushErr := s.Flush(ctx)
		s.writer.close()

		var closeErr error
		if c, ok := s.storage.(io.Closer); ok {
			closeErr = c.Close()
		}
		s.closeErr = errors.Join(flushErr, closeErr)
	})
	return s.closeErr
}

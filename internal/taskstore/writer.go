package taskstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"todo/internal/storage"
)

// ErrClosed is the result of writes issued after Close.
var ErrClosed = errors.New("task store closed")

// Pending is the future result of one issued write.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(err error) {
	p.err = err
	close(p.done)
}

// Err returns the write result, or nil while the write is still in flight.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the write settles or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// write is a full-state operation on the storage key: either a snapshot to
// set or a remove.
type write struct {
	remove  bool
	value   string
	count   int
	pending *Pending
}

// writer applies writes in issue order on a single goroutine.
// Queued writes are coalesced: only the newest one reaches storage and
// every superseded write resolves with its result.
type writer struct {
	st      storage.Storage
	key     string
	timeout time.Duration
	logger  Logger

	mu     sync.Mutex
	queue  []*write
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func newWriter(st storage.Storage, key string, timeout time.Duration, logger Logger) *writer {
	w := &writer{
		st:      st,
		key:     key,
		timeout: timeout,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(wr *write) *Pending {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Error("failed to save tasks", "err", ErrClosed)
		wr.pending.resolve(ErrClosed)
		return wr.pending
	}
	w.queue = append(w.queue, wr)
	w.mu.Unlock()

	w.signal()
	return wr.pending
}

func (w *writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		w.mu.Lock()
		batch := w.queue
		w.queue = nil
		closed := w.closed
		w.mu.Unlock()

		if len(batch) == 0 {
			if closed {
				return
			}
			<-w.wake
			continue
		}
		w.apply(batch)
	}
}

func (w *writer) apply(batch []*write) {
	last := batch[len(batch)-1]

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	var err error
	if last.remove {
		err = w.st.Remove(ctx, w.key)
	} else {
		err = w.st.Set(ctx, w.key, last.value)
	}
	cancel()

	switch {
	case err != nil && last.remove:
		w.logger.Error("failed to clear tasks", "err", err)
	case err != nil:
		w.logger.Error("failed to save tasks", "err", err)
	case last.remove:
		w.logger.Debug("cleared tasks", "key", w.key)
	default:
		w.logger.Debug("saved tasks", "key", w.key, "count", last.count, "coalesced", len(batch)-1)
	}

	for _, wr := range batch {
		wr.pending.resolve(err)
	}
}

// close stops accepting writes and waits until the queue is drained.
func (w *writer) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.signal()
	<-w.done
}

package service

import "context"

// Service defines the task operations available to the presentation layer.
// Commands and the interactive screen never touch storage directly.
type Service interface {
	// Tasks returns a copy of the task list in insertion order.
	Tasks() []Task

	// IsLoading reports whether the initial load is still in progress.
	IsLoading() bool

	// Add creates a task from title. Returns false if the trimmed title is empty.
	Add(title string) (Task, bool)

	// ToggleComplete flips the completed flag of the task with id.
	// Returns false if no task matched.
	ToggleComplete(id string) bool

	// Delete removes the task with id. Returns false if no task matched.
	Delete(id string) bool

	// Edit replaces the title of the task with id.
	// Returns false if the trimmed title is empty or no task matched.
	Edit(id, title string) bool

	// Clear removes every task and the stored list.
	Clear(ctx context.Context) error

	// Flush waits for all issued writes to settle.
	Flush(ctx context.Context) error

	// Close flushes pending writes and releases the storage.
	Close(ctx context.Context) error
}

// Package service defines the task model and the interface the presentation
// layer uses to read and mutate it.
package service

import "strings"

// Task represents a single to-do item.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NormalizeTitle trims surrounding whitespace and replaces invalid UTF-8
// with U+FFFD, so the stored JSON decodes back to the same title.
// An empty result means the submission should be discarded.
func NormalizeTitle(title string) string {
	return strings.ToValidUTF8(strings.TrimSpace(title), "\uFFFD")
}

// Partition splits tasks into incomplete and completed groups,
// keeping insertion order inside each group.
func Partition(tasks []Task) (incomplete, completed []Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, completed
}

// DisplayOrder returns incomplete tasks followed by completed tasks.
// Task numbers shown to the user are 1-based positions in this order.
func DisplayOrder(tasks []Task) []Task {
	incomplete, completed := Partition(tasks)
	return append(incomplete, completed...)
}

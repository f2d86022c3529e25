// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

const (
	// TasksHeader labels the incomplete section.
	TasksHeader = "Tasks"

	// CompletedHeader labels the completed section.
	CompletedHeader = "Completed"

	// EmptyTitle is the empty-state headline.
	EmptyTitle = "No tasks yet"

	// EmptyHint is the empty-state subtitle.
	EmptyHint = "Add a task with: todo add <title>"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  [ ] {TITLE}\n", with "[x]" for completed tasks.
// With showID the task ID follows the title in parentheses.
func FormatTask(w io.Writer, num int, task service.Task, showID bool) {
	title := normalizeTitle(task.Title)
	if showID {
		fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, Checkbox(task.Completed), title, task.ID)
		return
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), title)
}

// Checkbox renders the completion marker.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// FormatSectionHeader formats a section header with its task count.
func FormatSectionHeader(w io.Writer, title string, count int) {
	fmt.Fprintf(w, "%s (%d)\n", title, count)
}

// FormatTaskList writes the incomplete section followed by the completed
// section. Numbers follow service.DisplayOrder. Returns false and writes
// nothing when tasks is empty.
func FormatTaskList(w io.Writer, tasks []service.Task, showIDs bool) bool {
	if len(tasks) == 0 {
		return false
	}
	incomplete, completed := service.Partition(tasks)

	FormatSectionHeader(w, TasksHeader, len(incomplete))
	num := 1
	for _, task := range incomplete {
		FormatTask(w, num, task, showIDs)
		num++
	}

	if len(completed) > 0 {
		FormatSectionHeader(w, CompletedHeader, len(completed))
		for _, task := range completed {
			FormatTask(w, num, task, showIDs)
			num++
		}
	}
	return true
}

// FormatEmptyState writes the empty-list message.
func FormatEmptyState(w io.Writer) {
	fmt.Fprintln(w, EmptyTitle)
	fmt.Fprintln(w, EmptyHint)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

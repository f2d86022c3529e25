package output_test

import (
	"bytes"
	"testing"

	"todo/internal/output"
	"todo/internal/service"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name   string
		num    int
		task   service.Task
		showID bool
		want   string
	}{
		{"incomplete", 1, service.Task{ID: "a", Title: "Buy milk"}, false, "   1  [ ] Buy milk\n"},
		{"completed", 12, service.Task{ID: "a", Title: "Done", Completed: true}, false, "  12  [x] Done\n"},
		{"with id", 3, service.Task{ID: "abc", Title: "x"}, true, "   3  [ ] x  (abc)\n"},
		{"newlines", 1, service.Task{Title: "line1\nline2\r\n"}, false, "   1  [ ] line1 line2  \n"},
		{"blank", 1, service.Task{Title: "  "}, false, "   1  [ ] (untitled)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.FormatTask(&buf, tt.num, tt.task, tt.showID)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatTaskList_Empty(t *testing.T) {
	var buf bytes.Buffer
	if output.FormatTaskList(&buf, nil, false) {
		t.Error("expected false for empty list")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestFormatTaskList_Sections(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", Title: "Call mom", Completed: true},
		{ID: "2", Title: "Buy milk"},
		{ID: "3", Title: "Walk dog"},
	}

	var buf bytes.Buffer
	if !output.FormatTaskList(&buf, tasks, false) {
		t.Fatal("expected true")
	}

	want := "Tasks (2)\n   1  [ ] Buy milk\n   2  [ ] Walk dog\nCompleted (1)\n   3  [x] Call mom\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTaskList_OnlyCompleted(t *testing.T) {
	tasks := []service.Task{{ID: "1", Title: "Done", Completed: true}}

	var buf bytes.Buffer
	output.FormatTaskList(&buf, tasks, false)

	want := "Tasks (0)\nCompleted (1)\n   1  [x] Done\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatEmptyState(t *testing.T) {
	var buf bytes.Buffer
	output.FormatEmptyState(&buf)
	want := "No tasks yet\nAdd a task with: todo add <title>\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

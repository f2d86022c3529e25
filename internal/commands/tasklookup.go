package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/service"
)

// Lookup errors.
var (
	ErrTaskOutOfRange = errors.New("task number out of range")
	ErrTaskNotFound   = errors.New("task not found")
)

// FindTask resolves ref against the current list. Numbers index
// service.DisplayOrder, the order list prints.
func FindTask(svc service.Service, ref TaskRef) (service.Task, error) {
	tasks := svc.Tasks()

	if ref.IsNumber() {
		ordered := service.DisplayOrder(tasks)
		if ref.Num < 1 || ref.Num > len(ordered) {
			return service.Task{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, ref.Num)
		}
		return ordered[ref.Num-1], nil
	}

	for _, t := range tasks {
		if t.ID == ref.ID {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref.ID)
}

// resolveTaskArg parses and resolves the task reference in args, reporting
// failures on errOut. ok is false when code should be returned.
func resolveTaskArg(svc service.Service, args []string, errOut io.Writer) (task service.Task, rest []string, code int, ok bool) {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError, false
	}

	task, err = FindTask(svc, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError, false
	}
	return task, rest, exitcode.Success, true
}

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based display position; 0 when ID is set
	ID  string // exact task ID; empty when Num is set
}

// IsNumber reports whether the reference is a display position.
func (r TaskRef) IsNumber() bool {
	return r.ID == ""
}

func (r TaskRef) String() string {
	if r.IsNumber() {
		return strconv.Itoa(r.Num)
	}
	return r.ID
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the first arg and returns the
// remaining args.
//
// Parsing rules:
// 1. No args, or a blank first arg → error: task reference required
// 2. First arg is all digits → display position (as printed by list)
// 3. Otherwise → exact task ID (as printed by list --ids)
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := strings.TrimSpace(args[0])
	rest := args[1:]
	if first == "" {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{Num: num}, rest, nil
	}

	return TaskRef{ID: first}, rest, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

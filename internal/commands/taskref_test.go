package commands

import (
	"errors"
	"testing"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.IsNumber() {
		t.Error("expected a number reference")
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining args, got %v", rest)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, _, err := ParseTaskRef([]string{"3f2a-uuid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.IsNumber() {
		t.Error("expected an ID reference")
	}
	if ref.ID != "3f2a-uuid" {
		t.Errorf("expected ID 3f2a-uuid, got %q", ref.ID)
	}
	if ref.String() != "3f2a-uuid" {
		t.Errorf("unexpected String(): %q", ref.String())
	}
}

func TestParseTaskRef_ReturnsRemainingArgs(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"2", "new", "title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 2 {
		t.Errorf("expected Num 2, got %d", ref.Num)
	}
	if len(rest) != 2 || rest[0] != "new" || rest[1] != "title" {
		t.Errorf("unexpected remaining args: %v", rest)
	}
}

func TestParseTaskRef_TrimsWhitespace(t *testing.T) {
	ref, _, err := ParseTaskRef([]string{" 7 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 7 {
		t.Errorf("expected Num 7, got %d", ref.Num)
	}
}

func TestParseTaskRef_Required(t *testing.T) {
	for _, args := range [][]string{nil, {}, {""}, {"   "}} {
		_, _, err := ParseTaskRef(args)
		if !errors.Is(err, ErrTaskRefRequired) {
			t.Errorf("args %q: expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func TestParseTaskRef_NegativeIsID(t *testing.T) {
	// Not all digits, so it is looked up as an ID.
	ref, _, err := ParseTaskRef([]string{"-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.IsNumber() {
		t.Error("expected an ID reference")
	}
}

func TestParseTaskRef_Overflow(t *testing.T) {
	_, _, err := ParseTaskRef([]string{"99999999999999999999999"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "invalid task reference: 99999999999999999999999" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"123", true},
		{"", false},
		{"12a", false},
		{"a12", false},
		{"١٢", false}, // Arabic-Indic digits
		{"1.5", false},
	}
	for _, tt := range tests {
		if got := isAllDigits(tt.in); got != tt.want {
			t.Errorf("isAllDigits(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

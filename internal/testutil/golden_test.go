package testutil

import "testing"

func TestFirstDiff(t *testing.T) {
	tests := []struct {
		name      string
		want, got string
		line      int
		wl, gl    string
	}{
		{"changed line", "a\nb\nc\n", "a\nx\nc\n", 2, "b", "x"},
		{"missing line", "a\nb\n", "a\n", 2, "b", ""},
		{"extra line", "a\n", "a\nb\n", 2, "", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, wl, gl := firstDiff([]byte(tt.want), []byte(tt.got))
			if line != tt.line || wl != tt.wl || gl != tt.gl {
				t.Errorf("firstDiff = (%d, %q, %q), want (%d, %q, %q)", line, wl, gl, tt.line, tt.wl, tt.gl)
			}
		})
	}
}

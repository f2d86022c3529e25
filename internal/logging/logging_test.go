package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/logging"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want log.Level
	}{
		{"debug flag wins", config.Config{Debug: true, Quiet: true, Log: config.LogConfig{Level: "error"}}, log.DebugLevel},
		{"quiet flag", config.Config{Quiet: true, Log: config.LogConfig{Level: "info"}}, log.ErrorLevel},
		{"configured", config.Config{Log: config.LogConfig{Level: " INFO "}}, log.InfoLevel},
		{"invalid falls back to warn", config.Config{Log: config.LogConfig{Level: "loud"}}, log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logging.Level(&tt.cfg); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, &config.Config{Log: config.LogConfig{Level: "warn"}})

	logger.Debug("hidden")
	logger.Error("failed to save tasks", "err", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "failed to save tasks") || !strings.Contains(out, "todo") {
		t.Errorf("expected prefixed error line, got %q", out)
	}
}

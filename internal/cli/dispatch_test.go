package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/taskstore"
	"todo/internal/testutil"
)

// isolate points config lookup at a temp dir and clears TODO_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		"TODO_STORAGE_BACKEND", "TODO_DATA_DIR", "TODO_REDIS_ADDR",
		"TODO_REDIS_PASSWORD", "TODO_REDIS_DB", "TODO_SQL_DSN", "TODO_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return filepath.Join(xdg, config.AppName)
}

// fakeFactory opens the given FakeStorage through cli.StorageFactory.
func fakeFactory(st *testutil.FakeStorage) cli.StoreFactory {
	return cli.StorageFactory(func(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
		return st, nil
	})
}

func run(t *testing.T, factory cli.StoreFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, fakeFactory(testutil.NewFakeStorage()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, fakeFactory(testutil.NewFakeStorage()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 1.0.0\n" {
		t.Errorf("expected 'todo 1.0.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "version", "--config")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsRunsList(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, fakeFactory(testutil.NewFakeStorage()))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "No tasks yet\n") {
		t.Errorf("expected empty state, got %q", stdout)
	}
}

func TestDispatcher_ListFromStorage(t *testing.T) {
	isolate(t)
	st := testutil.NewFakeStorage()
	st.Put(taskstore.StorageKey, `[{"id":"a","title":"Buy milk","completed":false},{"id":"b","title":"Read","completed":true}]`)

	stdout, _, code := run(t, fakeFactory(st), "ls", "--ids")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "Tasks (1)\n   1  [ ] Buy milk  (a)\nCompleted (1)\n   2  [x] Read  (b)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_AddPersistsAndCloses(t *testing.T) {
	isolate(t)
	st := testutil.NewFakeStorage()

	stdout, stderr, code := run(t, fakeFactory(st), "add", "--quiet", "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected no stdout with --quiet, got %q", stdout)
	}
	value, ok := st.Value(taskstore.StorageKey)
	if !ok || !strings.Contains(value, `"title":"Buy milk"`) {
		t.Errorf("expected task persisted before exit, got %q", value)
	}
	if !st.Closed() {
		t.Error("expected storage closed after the command")
	}
}

func TestDispatcher_LoadFailureStartsEmpty(t *testing.T) {
	isolate(t)
	st := testutil.NewFakeStorage()
	st.FailGet(errors.New("unreadable"))

	stdout, stderr, code := run(t, fakeFactory(st), "list")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "No tasks yet\n") {
		t.Errorf("expected empty state, got %q", stdout)
	}
	if !strings.Contains(stderr, "failed to load tasks") {
		t.Errorf("expected load failure logged, got %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return nil, errors.New("connection refused")
	}

	_, stderr, code := run(t, factory, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	expected := "error: storage error: connection refused\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoFactory(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "list")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if !strings.HasPrefix(stderr, "error: storage error: ") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_ConfigError(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("[storage]\nbackend = \"floppy\"\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, stderr, code := run(t, nil, "version", "--config", dir)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	expected := "error: config: unknown storage backend: floppy\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_ConfigDirFlag(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, _, code := run(t, nil, "settings", "--config", dir, "--dark-mode", "on")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if _, err := os.Stat(filepath.Join(dir, config.ConfigFile)); err != nil {
		t.Errorf("expected config written to --config dir: %v", err)
	}
}

func TestDispatcher_DebugLogs(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "version", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "dispatch") || !strings.Contains(stderr, "command=version") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestStorageFactory_OpenError(t *testing.T) {
	isolate(t)
	factory := cli.StorageFactory(func(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
		return nil, errors.New("no route to host")
	})

	_, stderr, code := run(t, factory, "add", "x")

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: no route to host\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

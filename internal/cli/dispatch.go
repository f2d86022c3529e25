// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/taskstore"
)

// StoreFactory creates the Service a command runs against.
// Used to inject the storage backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error)

// StorageFactory returns a StoreFactory that opens a backend with open and
// loads a taskstore.Store over it.
func StorageFactory(open func(ctx context.Context, cfg *config.Config) (storage.Backend, error)) StoreFactory {
	return func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		st, err := open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := taskstore.New(st,
			taskstore.WithLogger(logger),
			taskstore.WithWriteTimeout(cfg.WriteTimeout()),
		)
		// A failed load is logged by the store and leaves the list empty.
		_ = store.Load(ctx)
		return store, nil
	}
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	// Flags require a command
	if strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}
	return d.dispatch(ctx, args[0], args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A positional arg starting with - should have been parsed as a flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := logging.New(errOut, cfg)
	logger.Debug("dispatch", "command", cmd.Name(), "config", cfg.Dir, "backend", cfg.Storage.Backend)

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	if d.factory == nil {
		fmt.Fprintln(errOut, "error: storage error: no storage configured")
		return exitcode.StorageError
	}
	svc, err := d.factory(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %s\n", err)
		return exitcode.StorageError
	}

	code := cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)

	// Pending writes finish even when ctx was cancelled by a signal.
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*cfg.WriteTimeout())
	defer cancel()
	if err := svc.Close(closeCtx); err != nil {
		logger.Error("failed to close store", "err", err)
	}
	return code
}

// flagErrorMessage rewrites flag package errors into CLI messages.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	// Missing flag value
	if strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		if len(parts) > 1 {
			return "flag needs an argument: " + strings.TrimSpace(parts[len(parts)-1])
		}
	}

	// Unknown flag
	if flagName, ok := strings.CutPrefix(errStr, "flag provided but not defined: "); ok {
		return "unknown flag: " + flagName
	}

	return errStr
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the interactive task list" }
func (c *UICmd) Usage() string     { return "todo ui" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	f, ok := out.(*os.File)
	if !ok || !IsTerminal(f) {
		fmt.Fprintln(errOut, "error: ui requires a terminal")
		return exitcode.UserError
	}

	if err := ui.Run(ctx, svc, ui.WithDarkMode(cfg.Appearance.DarkMode), ui.WithIO(os.Stdin, f)); err != nil {
		fmt.Fprintf(errOut, "error: ui: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

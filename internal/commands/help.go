package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	// Registry to describe. Nil means DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	fmt.Fprint(out, HelpText(reg))
	return exitcode.Success
}

// HelpText renders usage lines for every command in reg.
func HelpText(reg *Registry) string {
	cmds := reg.All()

	width := 0
	for _, cmd := range cmds {
		width = max(width, len(cmd.Usage()))
	}

	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString(fmt.Sprintf("  %-*s  %s\n", width, "todo", "List tasks"))
	for _, cmd := range cmds {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		b.WriteString(fmt.Sprintf("  %-*s  %s\n", width, cmd.Usage(), synopsis))
	}
	b.WriteString(commonFlagsText)
	return b.String()
}

const commonFlagsText = `
Task references:
  <ref> is a task number from "todo list" or a task ID from "todo list --ids".

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`

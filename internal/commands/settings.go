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
	Register(&SettingsCmd{})
}

// SettingsCmd implements the settings command.
type SettingsCmd struct {
	darkMode string
}

// SetDarkMode sets the --dark-mode flag (for testing).
func (c *SettingsCmd) SetDarkMode(v string) {
	c.darkMode = v
}

func (c *SettingsCmd) Name() string      { return "settings" }
func (c *SettingsCmd) Aliases() []string { return nil }
func (c *SettingsCmd) Synopsis() string  { return "Show or change settings" }
func (c *SettingsCmd) Usage() string     { return "todo settings [--dark-mode on|off]" }
func (c *SettingsCmd) NeedsStore() bool  { return false }

func (c *SettingsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.darkMode, "dark-mode", "", "")
}

func (c *SettingsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if c.darkMode == "" {
		writeSettings(out, cfg)
		return exitcode.Success
	}

	on, err := parseSwitch(c.darkMode)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid value for --dark-mode: %s (use on or off)\n", c.darkMode)
		return exitcode.UserError
	}

	// Environment overrides must not end up in the file.
	fileCfg, err := config.LoadFile(cfg.Dir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	fileCfg.Appearance.DarkMode = on
	if err := fileCfg.Save(); err != nil {
		fmt.Fprintf(errOut, "error: save config: %v\n", err)
		return exitcode.ConfigError
	}
	cfg.Appearance.DarkMode = on

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch value: %s", v)
}

func writeSettings(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Appearance")
	fmt.Fprintf(w, "  Dark mode: %s\n", onOff(cfg.Appearance.DarkMode))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Data")
	fmt.Fprintf(w, "  Storage: %s\n", describeStorage(cfg))
	fmt.Fprintln(w, "  Delete all tasks with: todo clear --force")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "About")
	fmt.Fprintln(w, "  Todo App")
	fmt.Fprintf(w, "  Version %s\n", Version)
}

// describeStorage names the backend and where it points. The SQL DSN may
// carry credentials and is never printed.
func describeStorage(cfg *config.Config) string {
	s := cfg.Storage
	switch s.Backend {
	case config.BackendRedis:
		return fmt.Sprintf("redis (%s, db %d, prefix %q)", s.RedisAddr, s.RedisDB, s.RedisPrefix)
	case config.BackendPostgres, config.BackendMySQL:
		return fmt.Sprintf("%s (table %s)", s.Backend, s.Table)
	default:
		return fmt.Sprintf("file (%s)", cfg.DataPath())
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

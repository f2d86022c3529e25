package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/service"
)

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	darkMode bool
	in       io.Reader
	out      io.Writer
}

// WithDarkMode selects the dark palette.
func WithDarkMode(enabled bool) Option {
	return func(c *runConfig) {
		c.darkMode = enabled
	}
}

// WithIO sets the terminal the program reads from and draws to.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *runConfig) {
		c.in = in
		c.out = out
	}
}

// Run shows the task list screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, opts ...Option) error {
	c := &runConfig{}
	for _, opt := range opts {
		opt(c)
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.in != nil {
		progOpts = append(progOpts, tea.WithInput(c.in))
	}
	if c.out != nil {
		progOpts = append(progOpts, tea.WithOutput(c.out))
	}

	program := tea.NewProgram(New(svc, c.darkMode), progOpts...)
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted; the caller still flushes pending writes.
		return nil
	}
	return err
}

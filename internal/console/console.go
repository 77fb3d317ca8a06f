// Package console implements the line-oriented command loop that drives an
// address space engine.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/joshuapare/addrspace/internal/logger"
	"github.com/joshuapare/addrspace/internal/printer"
	"github.com/joshuapare/addrspace/space"
)

// Options controls console behavior.
type Options struct {
	// Prompt is printed before each command. Empty disables the prompt.
	Prompt string

	// StopOnError makes Run return the first failing command's error.
	// Interactive sessions leave it unset and keep reading.
	StopOnError bool

	// Printer configures how show and stats output is rendered.
	Printer printer.Options
}

// Console reads commands, applies them to an engine and reports results.
// It is the only goroutine that touches the engine.
type Console struct {
	eng     *space.Engine
	in      io.Reader
	out     io.Writer
	opts    Options
	printer *printer.Printer

	executed int
	failures int
}

// New creates a console over eng reading from in and writing to out.
func New(eng *space.Engine, in io.Reader, out io.Writer, opts Options) *Console {
	return &Console{
		eng:     eng,
		in:      in,
		out:     out,
		opts:    opts,
		printer: printer.New(out, opts.Printer),
	}
}

// Executed returns how many command lines have been processed, including
// ones rejected before reaching the engine. Blank lines, comments and exit
// are not counted.
func (c *Console) Executed() int { return c.executed }

// Failures returns how many commands have failed.
func (c *Console) Failures() int { return c.failures }

// Run processes input until it is exhausted, an exit command is read, or ctx
// is cancelled.
func (c *Console) Run(ctx context.Context) error {
	// Releases the reader goroutine when Run returns early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		if c.opts.Prompt != "" {
			fmt.Fprint(c.out, c.opts.Prompt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			quit, err := c.Exec(line)
			if err != nil {
				c.report(err)
				if c.opts.StopOnError {
					return err
				}
			}
			if quit {
				return nil
			}
		}
	}
}

// Exec runs a single command line. quit is set when the line asks the
// console to stop. Blank lines and lines starting with '#' are ignored.
func (c *Console) Exec(line string) (quit bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false, nil
	}

	args, err := shellwords.Parse(trimmed)
	if err != nil {
		return false, c.reject(trimmed, "", fmt.Errorf("parse %q: %w", trimmed, err))
	}
	if len(args) == 0 {
		return false, nil
	}

	name := strings.ToLower(args[0])
	logger.Debug("command", "name", name, "args", args[1:])

	if name == "exit" || name == "quit" {
		return true, nil
	}

	cmd, ok := lookup(name)
	if !ok {
		return false, c.reject(trimmed, "",
			fmt.Errorf("%w %q. Type 'help' for a list of available commands", ErrUnknownCommand, args[0]))
	}
	if n := len(args) - 1; n != cmd.nargs {
		return false, c.reject(trimmed, cmd.usage,
			fmt.Errorf("expected %d argument(s), got %d", cmd.nargs, n))
	}

	c.executed++
	if err := cmd.run(c, cmd, args[1:]); err != nil {
		c.failures++
		logger.Info("command failed", "name", name, "args", args[1:], "error", err)
		return false, err
	}
	return false, nil
}

// reject records a line that never reached the engine as an executed, failed
// command.
func (c *Console) reject(line, usage string, err error) error {
	c.executed++
	c.failures++
	logger.Warn("command rejected", "line", line, "error", err)
	return &UsageError{Usage: usage, Err: err}
}

// report writes a failed command's message.
func (c *Console) report(err error) {
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

// printf writes a result line.
func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

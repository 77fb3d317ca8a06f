package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/addrspace/internal/config"
	"github.com/joshuapare/addrspace/internal/console"
	"github.com/joshuapare/addrspace/internal/logger"
	"github.com/joshuapare/addrspace/internal/printer"
	"github.com/joshuapare/addrspace/internal/term"
	"github.com/joshuapare/addrspace/space"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	size       int
	noColor    bool
	jsonOut    bool
	grouping   bool
	debug      bool
	logDir     string
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "addrspace",
		Short: "Simulate first-fit allocation of a fixed address space",
		Long: `addrspace manages a single fixed-size address space on behalf of
multiple processes. Memory is handed out first-fit from a sorted free list
and returned extents are merged with their free neighbours.

Without a subcommand it starts an interactive console. Type 'help' at the
prompt for the list of commands.

Example:
  addrspace
  addrspace --size 4096 --no-color
  addrspace run session.txt`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, gf)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&gf.configPath, "config", "c", "", "TOML configuration file")
	pf.IntVarP(&gf.size, "size", "s", space.DefaultTotalSize, "Address space size")
	pf.BoolVar(&gf.noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&gf.jsonOut, "json", false, "Print show and stats output as JSON")
	pf.BoolVar(&gf.grouping, "grouping", false, "Group digits of addresses and sizes")
	pf.BoolVarP(&gf.debug, "debug", "d", false, "Write a debug log file")
	pf.StringVar(&gf.logDir, "log-dir", "", "Directory for log files (default ~/.addrspace/logs)")

	cmd.AddCommand(newRunCmd(gf), newVersionCmd())
	return cmd
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context) int {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig merges the config file, if any, with flags the user set.
func loadConfig(cmd *cobra.Command, gf *globalFlags) (config.Config, error) {
	cfg := config.Default()
	if gf.configPath != "" {
		var err error
		if cfg, err = config.Load(gf.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.TotalSize = gf.size
	}
	if flags.Changed("no-color") && gf.noColor {
		cfg.Color = config.ColorNever
	}
	if flags.Changed("grouping") {
		cfg.Grouping = gf.grouping
	}
	if flags.Changed("debug") && gf.debug {
		cfg.Log.Enabled = true
		cfg.Log.Level = "debug"
	}
	if flags.Changed("log-dir") {
		cfg.Log.Dir = gf.logDir
	}

	return cfg, cfg.Validate()
}

// session is everything a console needs, built from configuration.
type session struct {
	cfg    config.Config
	engine *space.Engine
	log    io.Closer
}

func openSession(cmd *cobra.Command, gf *globalFlags) (*session, error) {
	cfg, err := loadConfig(cmd, gf)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	closer, err := logger.Init(logger.Options{
		Enabled: cfg.Log.Enabled,
		LogDir:  cfg.Log.Dir,
		Level:   level,
	})
	if err != nil {
		// Logging is best-effort; the console still works without it.
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to init logging: %v\n", err)
	}

	eng, err := space.New(cfg.TotalSize)
	if err != nil {
		closer.Close()
		return nil, err
	}

	logger.Info("session started", "total_size", cfg.TotalSize, "config", gf.configPath)
	return &session{cfg: cfg, engine: eng, log: closer}, nil
}

func (s *session) Close() error { return s.log.Close() }

// printerOptions maps configuration onto the renderer for out.
func (s *session) printerOptions(out io.Writer, jsonOut bool) printer.Options {
	opts := printer.DefaultOptions()
	opts.Grouping = s.cfg.Grouping
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	switch s.cfg.Color {
	case config.ColorAlways:
		opts.Color = printer.ColorAlways
	case config.ColorNever:
		opts.Color = printer.ColorNever
	default:
		if isTerminal(out) {
			opts.Color = printer.ColorAuto
		} else {
			opts.Color = printer.ColorNever
		}
	}
	return opts
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(f)
}

func runConsole(cmd *cobra.Command, gf *globalFlags) error {
	s, err := openSession(cmd, gf)
	if err != nil {
		return err
	}
	defer s.Close()

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	opts := console.Options{Printer: s.printerOptions(out, gf.jsonOut)}
	if isTerminal(in) {
		opts.Prompt = s.cfg.Prompt
	}

	c := console.New(s.engine, in, out, opts)
	err = c.Run(cmd.Context())
	logger.Info("session ended", "commands", c.Executed(), "failures", c.Failures())
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out)
		return nil
	}
	return err
}

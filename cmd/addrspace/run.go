package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/addrspace/internal/console"
	"github.com/joshuapare/addrspace/internal/logger"
)

func newRunCmd(gf *globalFlags) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "run <script>...",
		Short: "Execute console commands from files",
		Long: `The run command executes console commands from one or more script
files against a single address space, in order. Use "-" to read from
standard input. Blank lines and lines starting with '#' are ignored.

By default the first failing command stops execution. With --keep-going
every command runs and the exit status reports whether any failed.

Example:
  addrspace run session.txt
  addrspace run --keep-going setup.txt workload.txt
  echo "create 1" | addrspace run -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(cmd, gf, args, keepGoing)
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue after a command fails")
	return cmd
}

func runScripts(cmd *cobra.Command, gf *globalFlags, paths []string, keepGoing bool) error {
	s, err := openSession(cmd, gf)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	opts := console.Options{
		StopOnError: !keepGoing,
		Printer:     s.printerOptions(out, gf.jsonOut),
	}

	failures := 0
	for _, path := range paths {
		in, closeIn, err := openScript(cmd, path)
		if err != nil {
			return err
		}

		c := console.New(s.engine, in, out, opts)
		err = c.Run(cmd.Context())
		closeIn()
		failures += c.Failures()
		if err != nil {
			logger.Error("script stopped", "path", path, "commands", c.Executed(), "error", err)
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d command(s) failed", failures)
	}
	return nil
}

func openScript(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, func() { f.Close() }, nil
}

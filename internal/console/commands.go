package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/addrspace/space/verify"
)

// command is one console keyword.
type command struct {
	name  string
	usage string
	help  string
	nargs int
	run   func(c *Console, cmd command, args []string) error
}

// commands is in help order. It is filled in init because the help handler
// refers back to it.
var commands []command

func init() {
	commands = []command{
		{
			name:  "create",
			usage: "create <process_id>",
			help:  "Creates a new process with the given ID",
			nargs: 1,
			run:   runCreate,
		},
		{
			name:  "terminate",
			usage: "terminate <process_id>",
			help:  "Terminates the process with the given ID and frees all its memory",
			nargs: 1,
			run:   runTerminate,
		},
		{
			name:  "allocate",
			usage: "allocate <process_id> <size>",
			help:  "Allocates memory of the given size for the specified process",
			nargs: 2,
			run:   runAllocate,
		},
		{
			name:  "free",
			usage: "free <process_id> <address>",
			help:  "Frees the memory block starting at the specified address for the given process",
			nargs: 2,
			run:   runFree,
		},
		{
			name:  "show",
			usage: "show memory|free|processes",
			help:  "Displays the memory map, the free list or the process table",
			nargs: 1,
			run:   runShow,
		},
		{
			name:  "stats",
			usage: "stats",
			help:  "Displays allocation totals",
			run:   runStats,
		},
		{
			name:  "check",
			usage: "check",
			help:  "Verifies that free and allocated memory exactly cover the address space",
			run:   runCheck,
		},
		{
			name:  "help",
			usage: "help",
			help:  "Shows this help message",
			run:   runHelp,
		},
		{
			name:  "exit",
			usage: "exit",
			help:  "Exits the program",
		},
	}
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name && cmd.run != nil {
			return cmd, true
		}
	}
	return command{}, false
}

// ints parses every argument as an integer. The count was checked on
// dispatch.
func (cmd command) ints(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, &UsageError{
				Usage: cmd.usage,
				Err:   fmt.Errorf("invalid %s %q", names[i], a),
			}
		}
		out[i] = n
	}
	return out, nil
}

func runCreate(c *Console, cmd command, args []string) error {
	v, err := cmd.ints(args, "process id")
	if err != nil {
		return err
	}
	pid := v[0]
	if err := c.eng.CreateProcess(pid); err != nil {
		return fmt.Errorf("create: %w", err)
	}
	c.printf("Process %d created.\n", pid)
	return nil
}

func runTerminate(c *Console, cmd command, args []string) error {
	v, err := cmd.ints(args, "process id")
	if err != nil {
		return err
	}
	pid := v[0]
	freed, err := c.eng.Terminate(pid)
	if err != nil {
		return fmt.Errorf("terminate: %w", err)
	}
	c.printf("Process %d terminated, %d bytes freed.\n", pid, freed)
	return nil
}

func runAllocate(c *Console, cmd command, args []string) error {
	v, err := cmd.ints(args, "process id", "size")
	if err != nil {
		return err
	}
	pid, size := v[0], v[1]
	addr, err := c.eng.Allocate(pid, size)
	if err != nil {
		return fmt.Errorf("allocation failed for process %d: %w", pid, err)
	}
	c.printf("Allocated %d bytes to process %d at address %d.\n", size, pid, addr)
	return nil
}

func runFree(c *Console, cmd command, args []string) error {
	v, err := cmd.ints(args, "process id", "address")
	if err != nil {
		return err
	}
	pid, addr := v[0], v[1]
	if err := c.eng.Free(pid, addr); err != nil {
		return fmt.Errorf("free: %w", err)
	}
	c.printf("Freed memory at address %d for process %d.\n", addr, pid)
	return nil
}

func runShow(c *Console, cmd command, args []string) error {
	switch strings.ToLower(args[0]) {
	case "memory":
		return c.printer.PrintMemoryMap(c.eng.MemoryMap())
	case "free":
		return c.printer.PrintFreeList(c.eng.FreeExtents())
	case "processes":
		return c.printer.PrintProcesses(c.eng.Processes())
	default:
		return &UsageError{Usage: cmd.usage, Err: fmt.Errorf("unknown view %q", args[0])}
	}
}

func runStats(c *Console, _ command, _ []string) error {
	return c.printer.PrintStats(c.eng.Stats())
}

func runCheck(c *Console, _ command, _ []string) error {
	if err := verify.AllInvariants(c.eng); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	c.printf("OK: %d free extent(s), %d process(es), invariants hold.\n",
		len(c.eng.FreeExtents()), len(c.eng.Processes()))
	return nil
}

func runHelp(c *Console, _ command, _ []string) error {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "%s - %s\n", cmd.usage, cmd.help)
	}
	c.printf("%s", b.String())
	return nil
}

package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		stdin          string
		wantErr        bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:  "allocate and show memory",
			stdin: "create 1\nallocate 1 100\nshow memory\n",
			wantContain: []string{
				"Process 1 created.",
				"Allocated 100 bytes to process 1 at address 0.",
				"|           100 |         65535 | Free            |",
			},
			wantNotContain: []string{"enter your command", "\x1b["},
		},
		{
			name:        "size flag",
			args:        []string{"--size", "1000"},
			stdin:       "create 1\nallocate 1 1000\nallocate 1 1\n",
			wantContain: []string{"at address 0.", "Error: allocation failed for process 1"},
		},
		{
			name:        "grouping",
			args:        []string{"--grouping"},
			stdin:       "show free\n",
			wantContain: []string{"65,535", "65,536"},
		},
		{
			name:        "engine errors do not fail the session",
			stdin:       "free 4 0\nhelp\n",
			wantContain: []string{"Error: free: space: process not found: 4", "Available commands:"},
		},
		{
			name:    "invalid size",
			args:    []string{"--size", "0"},
			wantErr: true,
		},
		{
			name:    "positional args rejected",
			args:    []string{"extra"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCmd(t, tt.stdin, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("execute error = %v, wantErr %v\nOutput: %s", err, tt.wantErr, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestConsoleCommand_JSON(t *testing.T) {
	output, err := executeCmd(t, "create 3\nallocate 3 10\n", "--json", "run", "-")
	require.NoError(t, err)
	require.Contains(t, output, "Allocated 10 bytes")

	output, err = executeCmd(t, "create 3\nallocate 3 10\nshow processes\n", "--json")
	require.NoError(t, err)

	start := strings.Index(output, "[")
	require.GreaterOrEqual(t, start, 0, "no JSON in output: %s", output)

	var procs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output[start:]), &procs))
	require.Len(t, procs, 1)
	require.EqualValues(t, 3, procs[0]["id"])
	require.EqualValues(t, 10, procs[0]["bytes"])
}

func TestConsoleCommand_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "addrspace.toml", "total_size = 512\ncolor = \"never\"\n")

	output, err := executeCmd(t, "stats\n", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, output, "Total size:   512")

	// Flags win over the file.
	output, err = executeCmd(t, "stats\n", "--config", cfg, "--size", "2048")
	require.NoError(t, err)
	require.Contains(t, output, "Total size:   2048")

	bad := writeFile(t, "bad.toml", "total_size = \"lots\"\n")
	_, err = executeCmd(t, "", "--config", bad)
	require.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	good := writeFile(t, "good.txt", `# set up two processes
create 1
create 2
allocate 1 100
allocate 2 50
free 1 0
check
show free
`)
	bad := writeFile(t, "bad.txt", "create 1\nfree 1 99\ncreate 2\n")

	t.Run("success", func(t *testing.T) {
		output, err := executeCmd(t, "", "run", good)
		require.NoError(t, err, output)
		assertContains(t, output, []string{
			"Freed memory at address 0 for process 1.",
			"OK: 2 free extent(s), 1 process(es), invariants hold.",
			"|             0 |            99 |           100 |",
		})
	})

	t.Run("stops at first failure", func(t *testing.T) {
		output, err := executeCmd(t, "", "run", bad)
		require.Error(t, err)
		require.Contains(t, err.Error(), "bad.txt")
		assertNotContains(t, output, []string{"Process 2 created."})
	})

	t.Run("keep going", func(t *testing.T) {
		output, err := executeCmd(t, "", "run", "--keep-going", bad)
		require.Error(t, err)
		require.Contains(t, err.Error(), "1 command(s) failed")
		assertContains(t, output, []string{"Process 2 created."})
	})

	t.Run("scripts share one address space", func(t *testing.T) {
		first := writeFile(t, "first.txt", "create 1\nallocate 1 10\n")
		second := writeFile(t, "second.txt", "allocate 1 10\n")
		output, err := executeCmd(t, "", "run", first, second)
		require.NoError(t, err)
		require.Contains(t, output, "Allocated 10 bytes to process 1 at address 10.")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeCmd(t, "", "run", "does-not-exist.txt")
		require.Error(t, err)
		require.Contains(t, err.Error(), "open script")
	})

	t.Run("requires an argument", func(t *testing.T) {
		_, err := executeCmd(t, "", "run")
		require.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCmd(t, "", "version")
	require.NoError(t, err)
	assertContains(t, output, []string{"addrspace dev", "commit: none", "built: unknown"})
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"topoorder/internal/dependency"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newCheckCmd(global *globalOptions) *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the import graph has no cycles",
		Long: `Scans the root and verifies that the files can be ordered. Nothing is
written.

Exits with 0 when the graph is acyclic. When it contains a cycle, one
concrete cycle is printed and the exit code is 2, which makes the command
suitable for CI and pre-commit hooks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, global, opts)
		},
	}
	addScanFlags(cmd, opts)
	return cmd
}

func runCheck(cmd *cobra.Command, global *globalOptions, opts *scanOptions) error {
	application, err := newApplication(cmd, global, opts.overrides(cmd), false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := application.Analyze(commandContext(cmd))
	if err != nil {
		var cycleErr *dependency.CycleError
		if errors.As(err, &cycleErr) {
			fmt.Fprintf(out, "%s %s\n", colorize(out, text.FgRed, "Cycle:"), formatCycle(cycleErr.Cycle))
		}
		return err
	}

	fmt.Fprintf(out, "%s %d files, no dependency cycles\n", colorize(out, text.FgGreen, "OK:"), len(result.Files))
	if missing := result.Graph.Undiscovered(); len(missing) > 0 {
		fmt.Fprintf(out, "%d imported files are missing under %s:\n", len(missing), application.Settings().Root)
		for _, id := range missing {
			fmt.Fprintf(out, "  - %s\n", id)
		}
	}
	return nil
}

func formatCycle(cycle []dependency.NodeID) string {
	parts := make([]string, len(cycle))
	for i, id := range cycle {
		parts[i] = string(id)
	}
	return strings.Join(parts, " -> ")
}

// colorize styles s only when w is a terminal.
func colorize(w io.Writer, c text.Color, s string) string {
	if !isTerminal(w) {
		return s
	}
	return c.Sprint(s)
}

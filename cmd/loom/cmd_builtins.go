package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/loom/internal/builtin"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the built-in task set",
	Args:  cobra.NoArgs,
	RunE:  runBuiltins,
}

// runBuiltins needs no project; the built-in set ships with the binary.
func runBuiltins(cmd *cobra.Command, _ []string) error {
	reg := builtin.Default()
	out := cmd.OutOrStdout()
	for _, name := range reg.Names() {
		task, _ := reg.Task(name)
		fmt.Fprintf(out, "%s\t(entry %s, %d option key(s))\n", task.Name, task.Entry, len(task.Options))
	}
	return nil
}

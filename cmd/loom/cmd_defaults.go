package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/loom/internal/selection"
)

var defaultsFlags struct {
	output string
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults <task>",
	Short: "Emit the default selection snapshot for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runDefaults,
}

func init() {
	defaultsCmd.Flags().StringVarP(&defaultsFlags.output, "output", "o", "", "Write the snapshot to a file instead of stdout")
}

func runDefaults(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	task, cat, ok := env.task(args[0])
	if !ok {
		return fmt.Errorf("task %s is not declared by the project or the built-in set", args[0])
	}
	state := selection.NewState(task.Name, cat, task.Options...)
	data, err := state.Encode()
	if err != nil {
		return err
	}
	if defaultsFlags.output != "" {
		return os.WriteFile(defaultsFlags.output, data, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

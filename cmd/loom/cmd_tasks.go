package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tasksFlags struct {
	builtins bool
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the tasks the loaded project declares",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().BoolVar(&tasksFlags.builtins, "builtins", false, "Include built-in tasks in the listing")
}

func runTasks(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if env.def != nil {
		for _, task := range env.def.Tasks {
			fmt.Fprintf(out, "%s\t(entry %s)\n", task.Name, task.Entry)
		}
	}
	if tasksFlags.builtins {
		for _, name := range env.builtins.Names() {
			task, _ := env.builtins.Task(name)
			fmt.Fprintf(out, "%s\t(entry %s, built-in)\n", task.Name, task.Entry)
		}
	}
	if unknown := env.def.UnknownOptionRefs(); len(unknown) > 0 {
		fmt.Fprintf(out, "\nwarning: %d referenced option key(s) are not defined: %v\n", len(unknown), unknown)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/loom/internal/invoke"
	"github.com/kingrea/loom/internal/logging"
	"github.com/kingrea/loom/internal/selection"
)

var submitFlags struct {
	controller string
	resource   string
}

var submitCmd = &cobra.Command{
	Use:   "submit <task>...",
	Short: "Build an invocation batch and dry-run it against a recorder",
	Long: "Submit compiles each named task with its defaults, resolves its engine\n" +
		"entry, and submits the batch to an in-memory recorder. No engine is\n" +
		"contacted; the output shows exactly what a real submitter would receive.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitFlags.controller, "controller", "", "Controller scope to compile with (default from config)")
	submitCmd.Flags().StringVar(&submitFlags.resource, "resource", "", "Resource scope to compile with (default from config)")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	logger, err := logging.New(env.cfg.LogDir)
	if err != nil {
		return err
	}
	defer logger.Close()

	controllerName := submitFlags.controller
	if controllerName == "" {
		controllerName = env.cfg.Controller
	}
	resourceName := submitFlags.resource
	if resourceName == "" {
		resourceName = env.cfg.Resource
	}

	states := make([]*selection.State, 0, len(args))
	for _, name := range args {
		task, cat, ok := env.task(name)
		if !ok {
			return fmt.Errorf("task %s is not declared by the project or the built-in set", name)
		}
		states = append(states, selection.NewState(task.Name, cat, task.Options...))
	}

	builder := invoke.NewBuilder(env.def, env.builtins, logger)
	batch := builder.Build(states, controllerName, resourceName)

	recorder := &invoke.Recorder{}
	ids, err := invoke.SubmitAll(cmd.Context(), recorder, batch)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, inv := range recorder.Invocations() {
		fmt.Fprintf(out, "%s\t%s\t(entry %s)\n", ids[i], inv.Task, inv.Entry)
		fmt.Fprintf(out, "\t%s\n", inv.Override)
	}
	if skipped := len(states) - len(batch); skipped > 0 {
		fmt.Fprintf(out, "\n%d task(s) compiled to nothing and were skipped\n", skipped)
	}
	return nil
}

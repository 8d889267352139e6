package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kingrea/loom/internal/builtin"
	"github.com/kingrea/loom/internal/logging"
	"github.com/kingrea/loom/internal/override"
	"github.com/kingrea/loom/internal/selection"
)

var compileFlags struct {
	snapshot   string
	controller string
	resource   string
	output     string
	check      bool
	all        bool
	jobs       int
}

var compileCmd = &cobra.Command{
	Use:   "compile [task]",
	Short: "Compile a task's selection into its override document",
	Long: "Compile resolves a task's option values — a saved snapshot, or the\n" +
		"defaults — against the loaded project and prints the resulting JSON\n" +
		"override document. With --all every project task is compiled with its\n" +
		"defaults.",
	RunE: runCompile,
}

func init() {
	f := compileCmd.Flags()
	f.StringVar(&compileFlags.snapshot, "snapshot", "", "Selection snapshot file to compile instead of the defaults")
	f.StringVar(&compileFlags.controller, "controller", "", "Controller scope to compile with (default from config)")
	f.StringVar(&compileFlags.resource, "resource", "", "Resource scope to compile with (default from config)")
	f.StringVarP(&compileFlags.output, "output", "o", "", "Write the document to a file instead of stdout")
	f.BoolVar(&compileFlags.check, "check", false, "Validate built-in action parameters after compiling")
	f.BoolVar(&compileFlags.all, "all", false, "Compile every project task with its defaults")
	f.IntVar(&compileFlags.jobs, "jobs", 4, "Concurrent compiles for --all")
}

func runCompile(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	logger, err := logging.New(env.cfg.LogDir)
	if err != nil {
		return err
	}
	defer logger.Close()

	controllerName := compileFlags.controller
	if controllerName == "" {
		controllerName = env.cfg.Controller
	}
	resourceName := compileFlags.resource
	if resourceName == "" {
		resourceName = env.cfg.Resource
	}
	compiler := override.New(env.def,
		override.WithBuiltins(env.builtins),
		override.WithLogger(logger),
	)

	if compileFlags.all {
		if len(args) != 0 {
			return fmt.Errorf("--all takes no task argument")
		}
		return compileAll(cmd, env, compiler, controllerName, resourceName)
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one task name (or --all)")
	}
	return compileOne(cmd, env, compiler, args[0], controllerName, resourceName)
}

func compileOne(cmd *cobra.Command, env *environment, compiler *override.Compiler, taskName, controllerName, resourceName string) error {
	task, cat, ok := env.task(taskName)
	if !ok {
		return fmt.Errorf("task %s is not declared by the project or the built-in set", taskName)
	}

	var state *selection.State
	if compileFlags.snapshot != "" {
		loaded, err := selection.Load(compileFlags.snapshot, cat)
		if err != nil {
			return err
		}
		if loaded.Task() != task.Name {
			return fmt.Errorf("snapshot %s belongs to task %s, not %s", compileFlags.snapshot, loaded.Task(), task.Name)
		}
		state = loaded
	} else {
		state = selection.NewState(task.Name, cat, task.Options...)
	}
	if findings := state.Validate(); len(findings) > 0 {
		lines := make([]string, len(findings))
		for i, finding := range findings {
			lines[i] = finding.String()
		}
		return fmt.Errorf("selection does not validate:\n  %s", strings.Join(lines, "\n  "))
	}

	document := compiler.Compile(task.Name, state.Snapshot(), controllerName, resourceName)
	if compileFlags.check {
		if !builtin.IsName(task.Name) {
			return fmt.Errorf("--check applies to built-in tasks only")
		}
		if err := builtin.CheckDocument(task.Entry, document); err != nil {
			return err
		}
	}
	if compileFlags.output != "" {
		return os.WriteFile(compileFlags.output, []byte(document+"\n"), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), document)
	return nil
}

// compileAll compiles every project task with default values. Compiles are
// independent pure transforms, so they fan out; output stays in task
// declaration order.
func compileAll(cmd *cobra.Command, env *environment, compiler *override.Compiler, controllerName, resourceName string) error {
	if env.def == nil {
		return fmt.Errorf("no interface description at %s", env.cfg.Interface)
	}
	tasks := env.def.Tasks
	documents := make([]string, len(tasks))
	jobs := compileFlags.jobs
	if jobs < 1 {
		jobs = 1
	}
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			state := selection.NewState(task.Name, env.def.Options, task.Options...)
			documents[i] = compiler.Compile(task.Name, state.Snapshot(), controllerName, resourceName)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, task := range tasks {
		fmt.Fprintf(out, "%s\t%s\n", task.Name, documents[i])
	}
	return nil
}

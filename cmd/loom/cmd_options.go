package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/loom/internal/catalog"
)

var optionsCmd = &cobra.Command{
	Use:   "options <task>",
	Short: "Render a task's option tree with cases, defaults and child unlocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptions,
}

func runOptions(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	task, cat, ok := env.task(args[0])
	if !ok {
		return fmt.Errorf("task %s is not declared by the project or the built-in set", args[0])
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (entry %s)\n", task.Name, task.Entry)
	seen := map[string]bool{}
	for _, key := range task.Options {
		printOption(out, cat, key, 1, seen)
	}
	return nil
}

// printOption renders one option and recurses into case children. Keys
// already printed on this walk are noted, not expanded again, so cyclic
// graphs render finitely.
func printOption(out io.Writer, cat catalog.Catalog, key string, depth int, seen map[string]bool) {
	indent := strings.Repeat("  ", depth)
	def, ok := cat.Definition(key)
	if !ok {
		fmt.Fprintf(out, "%s%s (undefined)\n", indent, key)
		return
	}
	if seen[key] {
		fmt.Fprintf(out, "%s%s (see above)\n", indent, key)
		return
	}
	seen[key] = true

	fmt.Fprintf(out, "%s%s [%s]\n", indent, key, def.Kind())
	switch def.Kind() {
	case catalog.KindInput:
		for _, field := range def.Input {
			line := fmt.Sprintf("%s  %s: %s", indent, field.Name, fieldType(field))
			if field.Default != "" {
				line += fmt.Sprintf(" (default %q)", field.Default)
			}
			if field.Verify != "" {
				line += fmt.Sprintf(" (verify %s)", field.Verify)
			}
			fmt.Fprintln(out, line)
		}
	default:
		defaultName := def.DefaultCaseName()
		for _, cs := range def.Cases {
			marker := ""
			if cs.Name == defaultName {
				marker = " *"
			}
			fmt.Fprintf(out, "%s  - %s%s\n", indent, cs.Name, marker)
			for _, child := range cs.Options {
				printOption(out, cat, child, depth+2, seen)
			}
		}
	}
}

func fieldType(field catalog.InputField) catalog.PipelineType {
	if field.PipelineType == "" {
		return catalog.PipelineString
	}
	return field.PipelineType
}

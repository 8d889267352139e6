// loom compiles declarative task/option selections into the pipeline
// override documents an automation engine consumes.
//
// Usage:
//
//	loom tasks [--builtins]
//	loom options <task>
//	loom defaults <task> [-o <snapshot>]
//	loom compile <task> [--snapshot <path>] [--controller <name>] [--resource <name>] [--check] [-o <path>]
//	loom compile --all
//	loom submit <task>... [--controller <name>] [--resource <name>]
//	loom builtins
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

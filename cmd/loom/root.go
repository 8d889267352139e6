package main

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/kingrea/loom/internal/builtin"
	"github.com/kingrea/loom/internal/catalog"
	"github.com/kingrea/loom/internal/config"
	"github.com/kingrea/loom/internal/project"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config string
}

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Compile task option selections into pipeline override documents",
	Long: "Loom loads a project's interface description, resolves the option tree\n" +
		"each task exposes, and compiles the selected values into the override\n" +
		"document the automation engine applies at execution time.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.config, "config", config.DefaultFileName, "Path to the loom configuration file")
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(builtinsCmd)
	rootCmd.Version = version
}

// environment is what every command needs: the configuration, the loaded
// project, and the built-in registry.
type environment struct {
	cfg      config.Config
	def      *project.Definition
	builtins *builtin.Registry
}

// loadEnvironment loads the configuration and the interface description. A
// missing interface file leaves the project nil; built-in tasks still work,
// project task lookups report not found.
func loadEnvironment() (*environment, error) {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return nil, err
	}
	def, err := project.LoadFile(cfg.Interface)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return &environment{cfg: cfg, def: def, builtins: builtin.Default()}, nil
}

// task resolves a name against the project task list or, for reserved
// names, the built-in registry, together with the catalog its options live
// in.
func (env *environment) task(name string) (catalog.Task, catalog.Catalog, bool) {
	if builtin.IsName(name) {
		task, ok := env.builtins.Task(name)
		return task, env.builtins.Catalog(), ok
	}
	task, ok := env.def.Task(name)
	return task, env.def.Options, ok
}

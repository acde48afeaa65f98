// Package commands implements the adaptgen command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/adaptgen/am"
	"github.com/teranos/adaptgen/codegen"
	"github.com/teranos/adaptgen/codegen/python"
	"github.com/teranos/adaptgen/codegen/stub"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
)

// NewRootCmd builds the adaptgen command tree. Every call returns fresh
// commands with fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adaptgen",
		Short: "Generate Python API adapters from annotated package descriptions",
		Long: `adaptgen - Generate Python API adapters from annotated package descriptions.

An annotated package lists the public API of a Python library together with
annotations that describe how the API should look instead: renamed or removed
declarations, constant or optional parameters, boundaries, enums, parameter
groups and more. adaptgen validates the annotations, rewrites the API and
renders two files per module: an adapter module that forwards every call to
the original library, and a stub describing the adapted interface.

Available commands:
  generate - Validate, transform and write adapter and stub files
  validate - List every annotation error
  check    - Compare generated files with an existing output tree
  convert  - Convert an annotated package between JSON, YAML and TOML
  am       - Manage adaptgen configuration
  version  - Show version information

Examples:
  adaptgen generate api.json                # Write to ./generated
  adaptgen generate api.yaml -o out --watch # Regenerate on every save
  adaptgen validate api.json --json         # Annotation errors as JSON
  adaptgen check api.json --against out     # Exit 1 when out is stale`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().Bool("json", false, "Output results and logs as JSON")

	root.AddCommand(
		newGenerateCmd(),
		newValidateCmd(),
		newCheckCmd(),
		newConvertCmd(),
		newAmCmd(),
		newVersionCmd(),
	)
	return root
}

// flagBindings maps command flags to configuration keys. A flag overrides
// the key only when it is set on the command line.
var flagBindings = map[string]string{
	"output":  "output.dir",
	"archive": "output.archive",
}

// bindsConfig is the command annotation that opts a command into
// flagBindings. Other commands may reuse the flag names for other purposes.
const bindsConfig = "binds-config"

// setup binds flags to configuration, loads it and initializes the logger.
func setup(cmd *cobra.Command) error {
	v := am.GetViper()
	for flag, key := range flagBindings {
		if cmd.Annotations[bindsConfig] == "" {
			break
		}
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "failed to bind --%s", flag)
			}
		}
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	verbosity := cfg.Log.Verbosity
	if cmd.Flags().Changed("verbose") {
		verbosity, _ = cmd.Flags().GetCount("verbose")
	}
	jsonLogs := cfg.Log.JSON
	if cmd.Flags().Changed("json") {
		jsonLogs, _ = cmd.Flags().GetBool("json")
	}
	if err := logger.Initialize(jsonLogs, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// loadConfig returns the loaded configuration, rejecting invalid values.
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "invalid configuration"),
			"run 'adaptgen am show --sources' to see where each value comes from")
	}
	return cfg, nil
}

// generators builds the adapter and stub generators for cfg.
func generators(cfg *am.Config) []codegen.Generator {
	return []codegen.Generator{
		&python.Generator{
			Dir:       cfg.Output.AdapterDir,
			Extension: cfg.Output.AdapterExtension,
		},
		&stub.Generator{
			Dir:           cfg.Output.StubDir,
			Extension:     cfg.Output.StubExtension,
			PackagePrefix: cfg.Stub.PackagePrefix,
		},
	}
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/adaptgen/am"
	"github.com/teranos/adaptgen/display"
	"github.com/teranos/adaptgen/errors"
)

func newAmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "am",
		Short: "Manage adaptgen configuration",
		Long: `Display and manage adaptgen configuration.

Configuration sources (later overrides earlier):
  1. Built-in defaults
  2. User config (~/.adaptgen/adaptgen.toml)
  3. Project config (nearest adaptgen.toml, searching up directories)
  4. Environment variables (ADAPTGEN_* prefix)
  5. Command line flags

Examples:
  adaptgen am show                 # Effective configuration as TOML
  adaptgen am show --format json   # ... as JSON
  adaptgen am show --sources       # Where every value comes from
  adaptgen am get stub.package_prefix
  adaptgen am init                 # Write ./adaptgen.toml with defaults`,
	}
	cmd.AddCommand(newAmShowCmd(), newAmGetCmd(), newAmValidateCmd(), newAmInitCmd())
	return cmd
}

func newAmShowCmd() *cobra.Command {
	var format string
	var sources bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sources {
				return showSources(cmd)
			}
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			data, err := am.Marshal(cfg, format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format != "json" {
				fmt.Fprintln(out, "# adaptgen configuration")
			}
			fmt.Fprint(out, string(data))
			if format == "json" {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")
	cmd.Flags().BoolVar(&sources, "sources", false, "Show the source of every setting")
	return cmd
}

func showSources(cmd *cobra.Command) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd, intro)
	}

	rows := pterm.TableData{{"KEY", "VALUE", "SOURCE"}}
	for _, s := range intro.Settings {
		source := string(s.Source)
		if s.SourcePath != "" && s.Source != am.SourceDefault {
			source += " (" + s.SourcePath + ")"
		}
		rows = append(rows, []string{s.Key, fmt.Sprint(s.Value), source})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render settings")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func newAmGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a configuration value using dot notation (e.g., output.dir, watch.debounce_ms)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := am.Load(); err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			v := am.GetViper()
			if !v.IsSet(args[0]) {
				return errors.WithHint(errors.Newf("configuration key %q not found", args[0]),
					"run 'adaptgen am show --sources' to list every key")
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.Get(args[0]))
			return nil
		},
	}
}

func newAmValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓")+" Configuration is valid")
			return nil
		},
	}
}

func newAmInitCmd() *cobra.Command {
	var path string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = am.ConfigFileName
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(errors.Newf("%s already exists", path),
					"pass --force to overwrite it; the previous file is kept as a backup")
			}
			if err := am.Save(am.Default(), path); err != nil {
				return err
			}
			abs, _ := filepath.Abs(path)
			fmt.Fprintln(cmd.OutOrStdout(), pterm.Green("✓")+" Wrote "+abs)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "File to write (default: ./adaptgen.toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

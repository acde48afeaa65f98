package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/adaptgen/adapt"
	"github.com/teranos/adaptgen/apidata"
	"github.com/teranos/adaptgen/codegen"
	"github.com/teranos/adaptgen/display"
	"github.com/teranos/adaptgen/errors"
)

func newCheckCmd() *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "check <input>",
		Short: "Compare generated files with an existing output tree",
		Long: `Generate in memory and compare the result with the files under --against
(default: output.dir). Reports changed, missing and stale files.

Exits with status 1 when the tree is out of date, which makes the command
usable as a CI step after committing generated adapters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir := against
			if dir == "" {
				dir = cfg.Output.Dir
			}

			pkg, err := apidata.LoadFile(args[0])
			if err != nil {
				return err
			}
			gens := generators(cfg)
			result, err := adapt.Run(cmd.Context(), pkg, adapt.Options{
				Generators:     gens,
				FailOnProblems: cfg.Pipeline.FailOnProblems,
			})
			if err != nil {
				return err
			}

			check, err := codegen.Check(result.Files(), dir, gens...)
			if err != nil {
				return err
			}
			if display.ShouldOutputJSON(cmd) {
				if err := display.OutputJSON(cmd, check); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), display.FormatCheck(check, dir))
			}

			if !check.UpToDate {
				return errors.WithHintf(errors.Newf("%s is out of date", dir),
					"run 'adaptgen generate %s -o %s' to refresh it", args[0], dir)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "Existing output tree to compare with (default: output.dir)")
	return cmd
}

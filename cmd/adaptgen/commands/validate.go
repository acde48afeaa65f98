package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/adaptgen/adapt"
	"github.com/teranos/adaptgen/apidata"
	"github.com/teranos/adaptgen/display"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/validation"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "List every annotation error",
		Long: `Check where annotations are placed and which annotations are combined,
without transforming anything. Every error is reported, not just the first.

Exits with status 1 when any error is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := apidata.LoadFile(args[0])
			if err != nil {
				return err
			}
			errs, err := adapt.Validate(pkg)
			if err != nil {
				return err
			}

			if display.ShouldOutputJSON(cmd) {
				if err := display.OutputJSON(cmd, validation.Records(errs)); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), display.FormatValidationErrors(errs))
			}

			if len(errs) > 0 {
				return errors.Mark(errors.Newf("%d annotation error(s) in %s", len(errs), args[0]), errors.ErrValidation)
			}
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/adaptgen/am"
	"github.com/teranos/adaptgen/apidata"
	"github.com/teranos/adaptgen/errors"
)

func newConvertCmd() *cobra.Command {
	var to, output string
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert an annotated package between JSON, YAML and TOML",
		Long: `Re-encode an annotated package in another format. The output is written
to stdout unless -o is given.

Examples:
  adaptgen convert api.json --to yaml
  adaptgen convert api.yaml --to toml -o api.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := apidata.Format(to)
			if output != "" && !cmd.Flags().Changed("to") {
				f, err := apidata.FormatFromPath(output)
				if err != nil {
					return err
				}
				format = f
			}

			pkg, err := apidata.LoadFile(args[0])
			if err != nil {
				return err
			}
			data, err := apidata.Encode(pkg, format)
			if err != nil {
				return errors.WithHint(err, "use --to json, yaml or toml")
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(output, data, am.DefaultFilePermissions); err != nil {
				return errors.Wrapf(err, "failed to write %s", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", string(apidata.FormatJSON), "Output format: json, yaml, toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (format taken from its extension unless --to is set)")
	return cmd
}

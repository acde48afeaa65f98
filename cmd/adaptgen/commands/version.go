package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/adaptgen/display"
	"github.com/teranos/adaptgen/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show adaptgen version information",
		Long:  `Display version, build time, commit hash, and platform information for the adaptgen binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(cmd, info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
}

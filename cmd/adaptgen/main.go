package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/teranos/adaptgen/cmd/adaptgen/commands"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
)

func main() {
	err := commands.NewRootCmd().Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, pterm.Red("Error: ")+err.Error())
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, pterm.Gray("Hint: "+hint))
		}
		os.Exit(1)
	}
}

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/adaptgen/adapt"
	"github.com/teranos/adaptgen/am"
	"github.com/teranos/adaptgen/apidata"
	"github.com/teranos/adaptgen/codegen"
	"github.com/teranos/adaptgen/display"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/transform"
	"github.com/teranos/adaptgen/validation"
	"github.com/teranos/adaptgen/watch"
)

type generateOptions struct {
	watch bool
	clean bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <input>",
		Short: "Generate adapter and stub files",
		Long: `Validate the annotations of an annotated package, transform its API and
write one adapter module and one stub per module.

The input is a .json, .yaml, .yml or .toml file. Files go to output.dir
(default: generated); with --archive a zip of the same files is written
next to it.

Generation is refused while any annotation error exists. A module that
fails to render is reported and skipped; every other module is written.

Examples:
  adaptgen generate api.json
  adaptgen generate api.json -o build/adapter --archive
  adaptgen generate api.yaml --watch`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{bindsConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringP("output", "o", am.DefaultOutputDir, "Output directory")
	cmd.Flags().Bool("archive", false, "Also write a zip archive next to the output directory")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate whenever the input or adaptgen.toml changes")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "Remove previously generated files before writing")
	return cmd
}

func runGenerate(cmd *cobra.Command, input string, opts *generateOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !opts.watch {
		return generateOnce(cmd.Context(), cmd, input, cfg, opts)
	}

	// The first run reports errors but does not end the session; the user
	// is expected to fix the input and save again.
	if err := generateOnce(cmd.Context(), cmd, input, cfg, opts); err != nil {
		printError(cmd, err)
	}
	return watchAndGenerate(cmd, input, cfg, opts)
}

func watchAndGenerate(cmd *cobra.Command, input string, cfg *am.Config, opts *generateOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	files := []string{input}
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to determine working directory")
	}
	projectConfig := am.FindProjectConfig(cwd)
	if projectConfig != "" {
		files = append(files, projectConfig)
	}

	w, err := watch.New(files, func(changed []string) {
		current := cfg
		if projectConfig != "" && containsPath(changed, projectConfig) {
			reloaded, err := reloadConfig(cmd)
			if err != nil {
				printError(cmd, err)
				return
			}
			cfg, current = reloaded, reloaded
		}
		if err := generateOnce(ctx, cmd, input, current, opts); err != nil {
			printError(cmd, err)
		}
	},
		watch.WithDebounce(cfg.GetDebounce()),
		watch.WithIgnore(am.IsBackupFile),
	)
	if err != nil {
		return err
	}

	if !display.ShouldOutputJSON(cmd) {
		pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", filepath.Base(input))
	}
	return w.Run(ctx)
}

// reloadConfig re-reads configuration files after a change, keeping the
// flags of the running command.
func reloadConfig(cmd *cobra.Command) (*am.Config, error) {
	am.Reset()
	if err := setup(cmd); err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Infow("Config reloaded", "output", cfg.Output.Dir)
	return cfg, nil
}

func containsPath(paths []string, target string) bool {
	abs, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	for _, p := range paths {
		if p == abs {
			return true
		}
	}
	return false
}

func generateOnce(ctx context.Context, cmd *cobra.Command, input string, cfg *am.Config, opts *generateOptions) error {
	pkg, err := apidata.LoadFile(input)
	if err != nil {
		return err
	}

	result, runErr := adapt.Run(ctx, pkg, adapt.Options{
		Generators:     generators(cfg),
		FailOnProblems: cfg.Pipeline.FailOnProblems,
	})
	if len(result.ValidationErrors) > 0 {
		if display.ShouldOutputJSON(cmd) {
			if err := display.OutputJSON(cmd, validation.Records(result.ValidationErrors)); err != nil {
				return err
			}
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), display.FormatValidationErrors(result.ValidationErrors))
		}
		return runErr
	}
	if result.Output == nil {
		return runErr
	}

	if opts.clean {
		if err := clean(cfg); err != nil {
			return err
		}
	}
	if err := codegen.WriteDir(cfg.Output.Dir, result.Output.Files); err != nil {
		return err
	}
	summary := display.GenerationSummary{
		RunID:    result.RunID,
		Output:   cfg.Output.Dir,
		Counts:   result.Counts,
		Files:    result.Output.Files,
		Failed:   display.FailureRecords(result.Output.Failed),
		Problems: display.ProblemRecords(result.Problems),
	}
	if cfg.Output.Archive {
		if err := codegen.WriteZip(cfg.GetArchivePath(), result.Output.Files); err != nil {
			return err
		}
		summary.Archive = cfg.GetArchivePath()
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd, summary); err != nil {
			return err
		}
	} else {
		printGeneration(cmd, result, cfg)
	}

	if runErr != nil {
		return runErr
	}
	if n := len(result.Output.Failed); n > 0 {
		return errors.Mark(errors.Newf("%d module(s) could not be generated", n), errors.ErrGeneration)
	}
	return nil
}

func printGeneration(cmd *cobra.Command, result *adapt.Result, cfg *am.Config) {
	out := cmd.OutOrStdout()
	v := logger.Verbosity
	if logger.ShouldOutput(v, logger.OutputConfig) {
		fmt.Fprintln(out, pterm.Gray(cfg.String()))
		fmt.Fprintln(out, pterm.Gray("verbosity: "+logger.LevelName(v)))
	}
	if logger.ShouldOutput(v, logger.OutputPasses) {
		fmt.Fprint(out, display.FormatPasses(transform.PassNames()))
	}
	if logger.ShouldOutput(v, logger.OutputResults) {
		fmt.Fprint(out, display.FormatGeneration(result.Output, cfg.Output.Dir))
	}
	for _, f := range result.Output.Files {
		if logger.ShouldOutput(v, logger.OutputFiles) {
			fmt.Fprintln(out, "  "+filepath.Join(cfg.Output.Dir, filepath.FromSlash(f.Path)))
		}
		if logger.ShouldOutput(v, logger.OutputFileContents) {
			fmt.Fprintln(out, pterm.Gray(f.Content))
		}
	}
	if logger.ShouldOutput(v, logger.OutputSummary) {
		fmt.Fprint(out, display.FormatRunSummary(result))
	}
	if logger.ShouldOutput(v, logger.OutputTiming) {
		fmt.Fprintln(out, pterm.Gray("finished in "+result.Duration.Round(time.Millisecond).String()))
	}
	if logger.ShouldOutput(v, logger.OutputErrors) {
		fmt.Fprint(out, display.FormatProblems(result.Problems))
	}
}

// clean removes the adapter and stub directories below the output root.
func clean(cfg *am.Config) error {
	for _, dir := range []string{cfg.Output.AdapterDir, cfg.Output.StubDir} {
		target := filepath.Join(cfg.Output.Dir, dir)
		if err := os.RemoveAll(target); err != nil {
			return errors.Wrapf(err, "failed to clean %s", target)
		}
	}
	return nil
}

// printError reports an error without ending a watch session.
func printError(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), pterm.Red("Error: ")+err.Error())
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), pterm.Gray("Hint: "+hint))
	}
}

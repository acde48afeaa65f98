package logger

// Output controls what categories of information the CLI prints at each
// verbosity level. Unlike log levels, categories select WHAT is shown.
//
//	0 (default) - validation errors, pipeline problems, output location
//	1 (-v)      - + every written file, run summary
//	2 (-vv)     - + pass list, timing, effective config
//	4 (-vvvv)   - + generated file contents

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Generated output location
	OutputErrors                        // Validation errors and pipeline problems

	// Level 1 (-v) - Informational
	OutputFiles   // One line per written file
	OutputSummary // Run ID and declaration counts

	// Level 2 (-vv) - Detailed
	OutputPasses // Pass names in execution order
	OutputTiming // Run timing
	OutputConfig // Effective configuration and verbosity

	// Level 4 (-vvvv) - Full dump
	OutputFileContents // Generated file bodies
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:      VerbosityUser,
	OutputErrors:       VerbosityUser,
	OutputFiles:        VerbosityInfo,
	OutputSummary:      VerbosityInfo,
	OutputPasses:       VerbosityDebug,
	OutputTiming:       VerbosityDebug,
	OutputConfig:       VerbosityDebug,
	OutputFileContents: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

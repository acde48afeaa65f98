// Package display formats command results for terminals and for JSON
// consumers.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/adaptgen/adapt"
	"github.com/teranos/adaptgen/codegen"
	"github.com/teranos/adaptgen/transform"
	"github.com/teranos/adaptgen/validation"
)

// ProblemRecord is the serializable form of a skipped declaration.
type ProblemRecord struct {
	Target  string `json:"target"`
	Pass    string `json:"pass"`
	Message string `json:"message"`
}

// FailureRecord is the serializable form of a module left out of the output.
type FailureRecord struct {
	Module  string `json:"module"`
	Message string `json:"message"`
}

// GenerationSummary is the JSON output of generate.
type GenerationSummary struct {
	RunID    string          `json:"run_id"`
	Output   string          `json:"output"`
	Archive  string          `json:"archive,omitempty"`
	Counts   adapt.Counts    `json:"counts"`
	Files    []codegen.File  `json:"files"`
	Failed   []FailureRecord `json:"failed,omitempty"`
	Problems []ProblemRecord `json:"problems,omitempty"`
}

// ProblemRecords converts pipeline problems for JSON output.
func ProblemRecords(problems []transform.Problem) []ProblemRecord {
	out := make([]ProblemRecord, 0, len(problems))
	for _, p := range problems {
		out = append(out, ProblemRecord{Target: p.QualifiedName, Pass: p.Pass, Message: p.Err.Error()})
	}
	return out
}

// FailureRecords converts module failures for JSON output.
func FailureRecords(failed []codegen.ModuleFailure) []FailureRecord {
	out := make([]FailureRecord, 0, len(failed))
	for _, f := range failed {
		out = append(out, FailureRecord{Module: f.Module, Message: f.Err.Error()})
	}
	return out
}

// FormatValidationErrors lists every annotation error, one per line.
func FormatValidationErrors(errs []validation.Error) string {
	if len(errs) == 0 {
		return pterm.Green("No annotation errors") + "\n"
	}
	var sb strings.Builder
	sb.WriteString(pterm.Red(fmt.Sprintf("%d annotation error(s)", len(errs))) + "\n")
	for _, e := range errs {
		sb.WriteString("  " + pterm.Red("✗") + " " + e.Message() + "\n")
	}
	return sb.String()
}

// FormatProblems lists declarations the pipeline skipped.
func FormatProblems(problems []transform.Problem) string {
	if len(problems) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(pterm.Yellow(fmt.Sprintf("%d declaration(s) left untransformed", len(problems))) + "\n")
	for _, p := range problems {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", pterm.Yellow("!"), p.QualifiedName, pterm.Gray("("+p.Pass+")")))
		sb.WriteString("    " + p.Err.Error() + "\n")
	}
	return sb.String()
}

// FormatGeneration summarizes a generation run written to dir.
func FormatGeneration(out *codegen.Output, dir string) string {
	var sb strings.Builder
	modules := out.Modules()
	sb.WriteString(fmt.Sprintf("%s %d file(s) for %d module(s) in %s\n",
		pterm.Green("✓"), len(out.Files), len(modules), pterm.LightCyan(dir)))
	for _, f := range out.Failed {
		sb.WriteString(fmt.Sprintf("  %s %s: %v\n", pterm.Red("✗"), f.Module, f.Err))
	}
	return sb.String()
}

// FormatRunSummary reports the run ID and what the transformed tree holds.
func FormatRunSummary(result *adapt.Result) string {
	c := result.Counts
	return fmt.Sprintf("%s %d module(s), %d class(es), %d function(s), %d enum(s)\n",
		pterm.Gray("run "+result.RunID+":"), c.Modules, c.Classes, c.Functions, c.Enums)
}

// FormatPasses lists the pipeline passes in execution order.
func FormatPasses(names []string) string {
	return pterm.Gray("passes:") + " " + strings.Join(names, " → ") + "\n"
}

// FormatCheck reports the difference between generated files and a tree.
func FormatCheck(result *codegen.CheckResult, dir string) string {
	if result.UpToDate {
		return pterm.Green("✓") + " " + dir + " is up to date\n"
	}

	var sb strings.Builder
	sb.WriteString(pterm.Red("✗") + " " + dir + " is out of date\n")

	languages := make([]string, 0, len(result.Differences))
	for lang := range result.Differences {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	for _, lang := range languages {
		for _, path := range result.Differences[lang] {
			sb.WriteString(fmt.Sprintf("  %s %s %s\n", pterm.Yellow("M"), path, pterm.Gray("("+lang+")")))
		}
	}
	for _, path := range result.Missing {
		sb.WriteString(fmt.Sprintf("  %s %s\n", pterm.Green("A"), path))
	}
	for _, path := range result.Stale {
		sb.WriteString(fmt.Sprintf("  %s %s\n", pterm.Red("D"), path))
	}
	return sb.String()
}

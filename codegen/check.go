package codegen

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/adaptgen/errors"
)

// CheckResult holds the result of an up-to-date check
type CheckResult struct {
	UpToDate    bool                `json:"up_to_date"`
	Differences map[string][]string `json:"differences,omitempty"` // language -> files with differences
	Missing     []string            `json:"missing,omitempty"`     // generated files absent from the existing tree
	Stale       []string            `json:"stale,omitempty"`       // existing files no module generates anymore
}

// Check compares freshly generated files with the tree under existingDir.
//
// Only the generators' own directories are inspected for stale files, so
// other content next to the generated tree is ignored.
func Check(files []File, existingDir string, generators ...Generator) (*CheckResult, error) {
	if len(generators) == 0 {
		generators = Default()
	}
	result := &CheckResult{Differences: make(map[string][]string)}
	expected := make(map[string]bool, len(files))

	for _, f := range files {
		expected[f.Path] = true
		existing, err := os.ReadFile(filepath.Join(existingDir, filepath.FromSlash(f.Path)))
		if os.IsNotExist(err) {
			result.Missing = append(result.Missing, f.Path)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", f.Path)
		}
		if !bytes.Equal(existing, []byte(f.Content)) {
			result.Differences[f.Language] = append(result.Differences[f.Language], f.Path)
		}
	}

	for _, g := range generators {
		stale, err := staleFiles(existingDir, g, expected)
		if err != nil {
			return nil, err
		}
		result.Stale = append(result.Stale, stale...)
	}

	for _, diffs := range result.Differences {
		sort.Strings(diffs)
	}
	sort.Strings(result.Missing)
	sort.Strings(result.Stale)
	result.UpToDate = len(result.Differences) == 0 && len(result.Missing) == 0 && len(result.Stale) == 0
	return result, nil
}

// staleFiles lists files with the generator's extension below its output
// directory that are not expected.
func staleFiles(existingDir string, g Generator, expected map[string]bool) ([]string, error) {
	root := filepath.Join(existingDir, filepath.FromSlash(g.OutputDir()))
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var stale []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if filepath.Ext(path) != "."+g.FileExtension() {
			return nil
		}
		rel, err := filepath.Rel(existingDir, path)
		if err != nil {
			return err
		}
		if rel = filepath.ToSlash(rel); !expected[rel] {
			stale = append(stale, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", root)
	}
	return stale, nil
}

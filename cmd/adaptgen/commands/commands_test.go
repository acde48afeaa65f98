package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/adaptgen/am"
	"github.com/teranos/adaptgen/apidata"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/validation"
	"github.com/teranos/adaptgen/version"
)

const annotated = `{
  "name": "lib",
  "version": "1.2.0",
  "modules": [{
    "name": "lib.core",
    "functions": [{
      "name": "fit",
      "qualifiedName": "lib.core.fit",
      "annotations": [{"type": "Rename", "newName": "train"}],
      "parameters": [
        {"name": "x", "assignedBy": "POSITION_OR_NAME"},
        {"name": "alpha", "assignedBy": "NAME_ONLY", "defaultValue": "0.5"}
      ]
    }]
  }]
}`

const invalid = `{
  "name": "lib",
  "modules": [{
    "name": "lib.core",
    "classes": [{
      "name": "Model",
      "annotations": [{"type": "Boundary", "lowerLimitType": "LESS_THAN", "upperLimitType": "UNRESTRICTED"}]
    }],
    "functions": [{
      "name": "fit",
      "annotations": [{"type": "Remove"}, {"type": "Rename", "newName": "train"}]
    }]
  }]
}`

const wantAdapter = "from __future__ import annotations\n" +
	"import lib.core\n\n" +
	"def train(x, *, alpha=0.5):\n" +
	"    return lib.core.fit(x, alpha=alpha)\n"

// workspace isolates configuration lookups and returns a temp working
// directory holding api.json.
func workspace(t *testing.T) string {
	t.Helper()
	am.Reset()
	t.Cleanup(am.Reset)

	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "api.json"), annotated)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// execute runs one adaptgen invocation with a fresh command tree and
// configuration, returning stdout without colors.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	am.Reset()

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return pterm.RemoveColorFromString(out.String()), err
}

func TestGenerate(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, "generate", "api.json", "-o", "out")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 2 file(s) for 1 module(s) in out")

	assert.Equal(t, wantAdapter, readFile(t, filepath.Join(dir, "out", "adapter", "lib", "core.py")))
	assert.Equal(t, "package simpleml.lib.core\n\nfun train(x: Any?, alpha: Any? or 0.5)\n",
		readFile(t, filepath.Join(dir, "out", "stub", "lib", "core", "core.sdsstub")))
	assert.NoFileExists(t, filepath.Join(dir, "out.zip"))
}

func TestGenerateVerbosity(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "default",
			want:    []string{"✓ 2 file(s) for 1 module(s) in out"},
			notWant: []string{"run ", "passes:", "finished in", "verbosity:"},
		},
		{
			name:    "info",
			args:    []string{"-v"},
			want:    []string{"out/adapter/lib/core.py", "1 module(s), 0 class(es), 1 function(s), 0 enum(s)"},
			notWant: []string{"passes:", "finished in"},
		},
		{
			name: "debug",
			args: []string{"-vv"},
			want: []string{"verbosity: Debug (-vv)", "passes: ", "finished in "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace(t)
			t.Cleanup(func() { logger.Verbosity = 0 })

			out, err := execute(t, append([]string{"generate", "api.json", "-o", "out"}, tt.args...)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestGenerateArchive(t *testing.T) {
	dir := workspace(t)

	_, err := execute(t, "generate", "api.json", "-o", "out", "--archive")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out.zip"))
}

func TestGenerateUsesProjectConfig(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, am.ConfigFileName), `
[output]
dir = "build"
adapter_dir = "py"

[stub]
package_prefix = "acme"
`)

	_, err := execute(t, "generate", "api.json")
	require.NoError(t, err)
	assert.Equal(t, wantAdapter, readFile(t, filepath.Join(dir, "build", "py", "lib", "core.py")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "build", "stub", "lib", "core", "core.sdsstub")),
		"package acme.lib.core")

	// A flag on the command line beats the project file
	_, err = execute(t, "generate", "api.json", "-o", "flag")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "flag", "py", "lib", "core.py"))
}

func TestGenerateClean(t *testing.T) {
	dir := workspace(t)
	leftover := filepath.Join(dir, "out", "adapter", "lib", "removed.py")
	writeFile(t, leftover, "")

	_, err := execute(t, "generate", "api.json", "-o", "out")
	require.NoError(t, err)
	assert.FileExists(t, leftover)

	_, err = execute(t, "generate", "api.json", "-o", "out", "--clean")
	require.NoError(t, err)
	assert.NoFileExists(t, leftover)
	assert.FileExists(t, filepath.Join(dir, "out", "adapter", "lib", "core.py"))
}

func TestGenerateJSONSummary(t *testing.T) {
	workspace(t)

	out, err := execute(t, "generate", "api.json", "-o", "out", "--json")
	require.NoError(t, err)

	var summary struct {
		RunID string `json:"run_id"`
		Files []struct {
			Path string `json:"path"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Files, 2)
	assert.Equal(t, "adapter/lib/core.py", summary.Files[0].Path)
}

func TestGenerateRefusesInvalidAnnotations(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "bad.json"), invalid)

	_, err := execute(t, "generate", "bad.json", "-o", "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestGenerateUnsupportedInput(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "api.xml"), "<package/>")

	_, err := execute(t, "generate", "api.xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, am.ConfigFileName), "[output]\nadapter_dir = \"same\"\nstub_dir = \"same\"\n")

	_, err := execute(t, "generate", "api.json")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "am show --sources")
}

func TestValidate(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "bad.json"), invalid)

	out, err := execute(t, "validate", "api.json")
	require.NoError(t, err)
	assert.Equal(t, "No annotation errors\n", out)

	out, err = execute(t, "validate", "bad.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, out, "2 annotation error(s)")

	out, err = execute(t, "validate", "bad.json", "--json")
	require.Error(t, err)
	var records []validation.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "lib.core.Model", records[0].Target)
	assert.Equal(t, "lib.core.fit", records[1].Target)
}

func TestCheck(t *testing.T) {
	dir := workspace(t)

	_, err := execute(t, "check", "api.json", "--against", "out")
	require.Error(t, err, "nothing generated yet")

	_, err = execute(t, "generate", "api.json", "-o", "out")
	require.NoError(t, err)

	out, err := execute(t, "check", "api.json", "--against", "out")
	require.NoError(t, err)
	assert.Equal(t, "✓ out is up to date\n", out)

	writeFile(t, filepath.Join(dir, "out", "adapter", "lib", "core.py"), "edited\n")
	out, err = execute(t, "check", "api.json", "--against", "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out is out of date")
	assert.Contains(t, out, "M adapter/lib/core.py (python)")
}

func TestConvert(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, "convert", "api.json", "--to", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: lib")

	_, err = execute(t, "convert", "api.json", "-o", "api.toml")
	require.NoError(t, err)
	pkg, err := apidata.LoadFile(filepath.Join(dir, "api.toml"))
	require.NoError(t, err)
	assert.Equal(t, "lib", pkg.Name)
	require.Len(t, pkg.Modules, 1)
	assert.Equal(t, "lib.core", pkg.Modules[0].Name)

	_, err = execute(t, "convert", "api.json", "--to", "xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}

func TestAm(t *testing.T) {
	dir := workspace(t)

	_, err := execute(t, "am", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, am.ConfigFileName))

	_, err = execute(t, "am", "init")
	require.Error(t, err, "refuses to overwrite")
	_, err = execute(t, "am", "init", "--force")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, am.ConfigFileName+".back1"))

	out, err := execute(t, "am", "show", "--format", "json")
	require.NoError(t, err)
	var cfg am.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, *am.Default(), cfg)

	out, err = execute(t, "am", "get", "stub.package_prefix")
	require.NoError(t, err)
	assert.Equal(t, "simpleml\n", out)

	_, err = execute(t, "am", "get", "no.such.key")
	require.Error(t, err)

	out, err = execute(t, "am", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestAmShowSources(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, am.ConfigFileName), "[stub]\npackage_prefix = \"acme\"\n")
	t.Setenv("ADAPTGEN_WATCH_DEBOUNCE_MS", "100")

	out, err := execute(t, "am", "show", "--sources", "--json")
	require.NoError(t, err)

	var intro am.ConfigIntrospection
	require.NoError(t, json.Unmarshal([]byte(out), &intro))
	sources := make(map[string]am.ConfigSource)
	for _, s := range intro.Settings {
		sources[s.Key] = s.Source
	}
	assert.Equal(t, am.SourceProject, sources["stub.package_prefix"])
	assert.Equal(t, am.SourceEnvironment, sources["watch.debounce_ms"])
	assert.Equal(t, am.SourceDefault, sources["output.dir"])
}

func TestVersion(t *testing.T) {
	workspace(t)

	out, err := execute(t, "version", "--json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Get(), info)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "adaptgen ")
	assert.Contains(t, out, "Platform: ")
}

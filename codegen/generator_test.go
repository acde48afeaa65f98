package codegen

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/adaptgen/codegen/python"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/model"
)

func testPackage() *model.Package {
	pkg := model.NewPackage("lib")

	core := model.NewModule("lib.core")
	f := model.NewFunction("fit")
	f.Original = &model.OriginalDeclaration{QualifiedName: "lib.core.fit"}
	f.CallToOriginalAPI.Set(model.NewCall("lib.core.fit"))
	core.Functions.Add(f)
	pkg.Modules.Add(core)

	util := model.NewModule("lib.util")
	util.Functions.Add(model.NewFunction("helper"))
	pkg.Modules.Add(util)
	return pkg
}

// brokenModule renders fine everywhere except in the named module.
type brokenModule struct {
	*python.Generator
	module string
}

func (b brokenModule) GenerateFile(m *model.Module) string {
	if m.Name == b.module {
		panic("boom")
	}
	return b.Generator.GenerateFile(m)
}

func TestGenerate(t *testing.T) {
	out := Generate(context.Background(), testPackage())

	require.Len(t, out.Files, 4)
	assert.Empty(t, out.Failed)
	assert.Equal(t, []string{"lib.core", "lib.util"}, out.Modules())

	paths := make([]string, 0, len(out.Files))
	for _, f := range out.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		"adapter/lib/core.py",
		"stub/lib/core/core.sdsstub",
		"adapter/lib/util.py",
		"stub/lib/util/util.sdsstub",
	}, paths)

	assert.Equal(t, "from __future__ import annotations\nimport lib.core\n\ndef fit():\n    return lib.core.fit()\n", out.Files[0].Content)
	assert.Equal(t, "package simpleml.lib.core\n\nfun fit()\n", out.Files[1].Content)
}

func TestGenerateIsolatesFailingModules(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	broken := brokenModule{Generator: python.NewGenerator(), module: "lib.core"}
	out := Generate(context.Background(), testPackage(), broken)

	require.Len(t, out.Failed, 1)
	assert.Equal(t, "lib.core", out.Failed[0].Module)
	assert.True(t, errors.Is(out.Failed[0].Err, errors.ErrGeneration))
	assert.Contains(t, out.Failed[0].Err.Error(), "boom")

	require.Len(t, out.Files, 1)
	assert.Equal(t, "lib.util", out.Files[0].Module)

	failures := logs.FilterMessage("Module generation failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, "lib.core", failures[0].ContextMap()[logger.FieldModule])
}

func TestGenerateDropsWholeModuleOnFailure(t *testing.T) {
	broken := brokenModule{Generator: python.NewGenerator(), module: "lib.util"}
	out := Generate(context.Background(), testPackage(), python.NewGenerator(), broken)

	for _, f := range out.Files {
		assert.NotEqual(t, "lib.util", f.Module, "a failed module must not be partially emitted")
	}
	assert.Len(t, out.Files, 2)
}

func TestWriteDirAndCheck(t *testing.T) {
	dir := t.TempDir()
	out := Generate(context.Background(), testPackage())
	require.NoError(t, WriteDir(dir, out.Files))

	content, err := os.ReadFile(filepath.Join(dir, "stub", "lib", "util", "util.sdsstub"))
	require.NoError(t, err)
	assert.Equal(t, "package simpleml.lib.util\n\nfun helper()\n", string(content))

	result, err := Check(out.Files, dir)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)

	// Drift: one file edited, one removed, one left over from an old run.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adapter", "lib", "core.py"), []byte("edited\n"), 0644))
	require.NoError(t, os.Remove(filepath.Join(dir, "adapter", "lib", "util.py")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adapter", "lib", "old.py"), []byte("\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adapter", "README.md"), []byte("notes\n"), 0644))

	result, err = Check(out.Files, dir)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, map[string][]string{"python": {"adapter/lib/core.py"}}, result.Differences)
	assert.Equal(t, []string{"adapter/lib/util.py"}, result.Missing)
	assert.Equal(t, []string{"adapter/lib/old.py"}, result.Stale)
}

func TestCheckAgainstMissingTree(t *testing.T) {
	out := Generate(context.Background(), testPackage())
	result, err := Check(out.Files, filepath.Join(t.TempDir(), "nothing"))
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Len(t, result.Missing, 4)
	assert.Empty(t, result.Stale)
}

func TestWriteZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "generated.zip")
	out := Generate(context.Background(), testPackage())
	require.NoError(t, WriteZip(path, out.Files))

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	contents := make(map[string]string)
	for _, f := range r.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		contents[f.Name] = string(data)
	}
	assert.Equal(t, []string{
		"adapter/lib/core.py",
		"adapter/lib/util.py",
		"stub/lib/core/core.sdsstub",
		"stub/lib/util/util.sdsstub",
	}, names)
	assert.Equal(t, out.Files[0].Content, contents["adapter/lib/core.py"])
}

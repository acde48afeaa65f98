package adapt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/adaptgen/apidata"
	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
)

const annotated = `{
  "distribution": "lib",
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
    }, {
      "name": "legacy",
      "qualifiedName": "lib.core.legacy",
      "annotations": [{"type": "Remove"}]
    }]
  }]
}`

func decode(t *testing.T, doc string) *apidata.Package {
	t.Helper()
	pkg, err := apidata.Decode([]byte(doc), apidata.FormatJSON)
	require.NoError(t, err)
	return pkg
}

func TestRun(t *testing.T) {
	result, err := Run(context.Background(), decode(t, annotated), Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.ValidationErrors)
	assert.Empty(t, result.Problems)

	files := result.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "adapter/lib/core.py", files[0].Path)
	assert.Equal(t, "from __future__ import annotations\n"+
		"import lib.core\n\n"+
		"def train(x, *, alpha=0.5):\n"+
		"    return lib.core.fit(x, alpha=alpha)\n", files[0].Content)
	assert.Equal(t, Counts{Modules: 1, Functions: 1}, result.Counts, "the removed function is not counted")
	assert.Positive(t, result.Duration)
	assert.Equal(t, "stub/lib/core/core.sdsstub", files[1].Path)
	assert.Equal(t, "package simpleml.lib.core\n\n"+
		"fun train(x: Any?, alpha: Any? or 0.5)\n", files[1].Content)
}

func TestRunTagsLogsWithRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	result, err := Run(context.Background(), decode(t, annotated), Options{})
	require.NoError(t, err)

	started := logs.FilterMessage("Starting generation").All()
	require.Len(t, started, 1)
	assert.Equal(t, result.RunID, started[0].ContextMap()[logger.FieldRunID])

	passes := logs.FilterMessage("Pass finished").All()
	require.NotEmpty(t, passes)
	for _, entry := range passes {
		assert.Equal(t, result.RunID, entry.ContextMap()[logger.FieldRunID])
	}
}

func TestRunRefusesInvalidAnnotations(t *testing.T) {
	doc := `{
  "name": "lib",
  "modules": [{
    "name": "lib.core",
    "classes": [{
      "name": "Model",
      "qualifiedName": "lib.core.Model",
      "annotations": [{"type": "Boundary", "lowerLimitType": "LESS_THAN", "upperLimitType": "UNRESTRICTED"}]
    }],
    "functions": [{
      "name": "fit",
      "annotations": [{"type": "Remove"}, {"type": "Rename", "newName": "train"}]
    }]
  }]
}`
	result, err := Run(context.Background(), decode(t, doc), Options{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, errors.FlattenHints(err), "adaptgen validate")
	assert.Nil(t, result.Output)
	assert.Nil(t, result.Files())
	assert.Zero(t, result.Counts)

	require.Len(t, result.ValidationErrors, 2)
	assert.Equal(t, "lib.core.Model", result.ValidationErrors[0].QualifiedName())
	assert.Equal(t, "lib.core.fit", result.ValidationErrors[1].QualifiedName())
}

const conflictingEnums = `{
  "name": "lib",
  "modules": [{
    "name": "lib.core",
    "functions": [{
      "name": "a",
      "parameters": [{"name": "mode", "assignedBy": "POSITION_OR_NAME",
        "annotations": [{"type": "Enum", "enumName": "Mode", "pairs": [{"stringValue": "fast", "instanceName": "FAST"}]}]}]
    }, {
      "name": "b",
      "parameters": [{"name": "mode", "assignedBy": "POSITION_OR_NAME",
        "annotations": [{"type": "Enum", "enumName": "Mode", "pairs": [{"stringValue": "slow", "instanceName": "SLOW"}]}]}]
    }]
  }]
}`

func TestRunStructuralProblems(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"problems are reported", Options{}, false},
		{"problems fail the run", Options{FailOnProblems: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(context.Background(), decode(t, conflictingEnums), tt.opts)

			require.Len(t, result.Problems, 1)
			assert.Equal(t, "lib.core.b.mode", result.Problems[0].QualifiedName)
			assert.NotEmpty(t, result.Files(), "other declarations are still generated")

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrStructuralInvariant))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunRejectsUnnamedPackage(t *testing.T) {
	result, err := Run(context.Background(), &apidata.Package{}, Options{})
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Nil(t, result.Output)
}

func TestValidate(t *testing.T) {
	errs, err := Validate(decode(t, annotated))
	require.NoError(t, err)
	assert.Empty(t, errs)

	_, err = Validate(&apidata.Package{})
	assert.Error(t, err)
}

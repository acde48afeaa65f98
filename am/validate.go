package am

import (
	"strings"

	"github.com/teranos/adaptgen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	dirs := []struct{ key, value string }{
		{"output.dir", c.Output.Dir},
		{"output.adapter_dir", c.Output.AdapterDir},
		{"output.stub_dir", c.Output.StubDir},
	}
	for _, d := range dirs {
		if strings.TrimSpace(d.value) == "" {
			return errors.Newf("%s cannot be empty", d.key)
		}
	}
	if c.Output.AdapterDir == c.Output.StubDir {
		return errors.WithHint(
			errors.Newf("output.adapter_dir and output.stub_dir must differ, both are %q", c.Output.AdapterDir),
			"up-to-date checks tell the targets apart by directory")
	}

	exts := []struct{ key, value string }{
		{"output.adapter_extension", c.Output.AdapterExtension},
		{"output.stub_extension", c.Output.StubExtension},
	}
	for _, e := range exts {
		if e.value == "" {
			return errors.Newf("%s cannot be empty", e.key)
		}
		if strings.Contains(e.value, ".") {
			return errors.WithHintf(
				errors.Newf("%s must not contain a dot, got %q", e.key, e.value),
				"use %q", strings.TrimLeft(e.value, "."))
		}
	}

	// Verbosity: same scale as the -v count, negative is invalid
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if c.Watch.DebounceMS <= 0 {
		return errors.Newf("watch.debounce_ms must be > 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}

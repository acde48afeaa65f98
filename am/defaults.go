package am

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultOutputDir        = "generated"
	DefaultAdapterDir       = "adapter"
	DefaultStubDir          = "stub"
	DefaultAdapterExtension = "py"
	DefaultStubExtension    = "sdsstub"
	DefaultPackagePrefix    = "simpleml"
	DefaultDebounceMS       = 500
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Output defaults
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.archive", false)
	v.SetDefault("output.adapter_dir", DefaultAdapterDir)
	v.SetDefault("output.stub_dir", DefaultStubDir)
	v.SetDefault("output.adapter_extension", DefaultAdapterExtension)
	v.SetDefault("output.stub_extension", DefaultStubExtension)

	// Stub defaults
	v.SetDefault("stub.package_prefix", DefaultPackagePrefix)

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	// Pipeline defaults
	v.SetDefault("pipeline.fail_on_problems", false)

	// Watch defaults
	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}

// Default returns the configuration that SetDefaults describes.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:              DefaultOutputDir,
			AdapterDir:       DefaultAdapterDir,
			StubDir:          DefaultStubDir,
			AdapterExtension: DefaultAdapterExtension,
			StubExtension:    DefaultStubExtension,
		},
		Stub:  StubConfig{PackagePrefix: DefaultPackagePrefix},
		Watch: WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}

// GetDebounce returns the watch debounce period
func (c *Config) GetDebounce() time.Duration {
	if c.Watch.DebounceMS <= 0 {
		return DefaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// GetArchivePath returns the zip written next to the output directory
func (c *Config) GetArchivePath() string {
	return c.Output.Dir + ".zip"
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Output: %s, Stub: {PackagePrefix: %s}, Pipeline: {FailOnProblems: %t}}",
		c.Output.Dir, c.Stub.PackagePrefix, c.Pipeline.FailOnProblems)
}

// Package am holds adaptgen's configuration.
//
// Values are merged from built-in defaults, the user file
// ~/.adaptgen/adaptgen.toml, the nearest adaptgen.toml found by walking up
// from the working directory, and ADAPTGEN_* environment variables, in that
// order of increasing precedence. Command-line flags override all of them.
package am

// Config represents the adaptgen configuration
type Config struct {
	Output   OutputConfig   `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Stub     StubConfig     `mapstructure:"stub" toml:"stub" json:"stub" yaml:"stub"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
	Pipeline PipelineConfig `mapstructure:"pipeline" toml:"pipeline" json:"pipeline" yaml:"pipeline"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
}

// OutputConfig configures where generated files go
type OutputConfig struct {
	Dir              string `mapstructure:"dir" toml:"dir" json:"dir" yaml:"dir"`                                                         // Output root (default: generated)
	Archive          bool   `mapstructure:"archive" toml:"archive" json:"archive" yaml:"archive"`                                         // Also write <dir>.zip
	AdapterDir       string `mapstructure:"adapter_dir" toml:"adapter_dir" json:"adapter_dir" yaml:"adapter_dir"`                         // Adapter subdirectory (default: adapter)
	StubDir          string `mapstructure:"stub_dir" toml:"stub_dir" json:"stub_dir" yaml:"stub_dir"`                                     // Stub subdirectory (default: stub)
	AdapterExtension string `mapstructure:"adapter_extension" toml:"adapter_extension" json:"adapter_extension" yaml:"adapter_extension"` // Without the dot (default: py)
	StubExtension    string `mapstructure:"stub_extension" toml:"stub_extension" json:"stub_extension" yaml:"stub_extension"`             // Without the dot (default: sdsstub)
}

// StubConfig configures the stub renderer
type StubConfig struct {
	PackagePrefix string `mapstructure:"package_prefix" toml:"package_prefix" json:"package_prefix" yaml:"package_prefix"` // Prepended to every stub package name
}

// LogConfig configures logging when no flag overrides it
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"` // Same scale as the -v flag count
}

// PipelineConfig configures the transformation pipeline
type PipelineConfig struct {
	FailOnProblems bool `mapstructure:"fail_on_problems" toml:"fail_on_problems" json:"fail_on_problems" yaml:"fail_on_problems"` // Exit non-zero when declarations were skipped
}

// WatchConfig configures generate --watch
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"` // Quiet period before regenerating
}

// File names and permissions
const (
	ConfigFileName = "adaptgen.toml"
	UserConfigDir  = ".adaptgen"

	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
)

// EnvPrefix prefixes every environment variable adaptgen reads.
const EnvPrefix = "ADAPTGEN"

var globalConfig *Config
var viperInstance *viper.Viper

// ConfigSources records, for every key set by a config file, which file set
// it. It is filled while loading.
var ConfigSources = make(map[string]SourceInfo)

// Load reads the adaptgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access.
// Commands bind their flags to it.
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing and reloads)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = make(map[string]SourceInfo)
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults first
	SetDefaults(v)

	// Manually merge configs in precedence order: user -> project -> env vars
	mergeConfigFiles(v, configPaths())

	viperInstance = v
	return v
}

// FindProjectConfig searches for adaptgen.toml by walking up the directory
// tree from dir. Returns the path to the first file found, or empty string.
func FindProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			return ""
		}
		dir = parent
	}
}

// UserConfigPath returns ~/.adaptgen/adaptgen.toml, or empty string when the
// home directory is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, ConfigFileName)
}

type configPath struct {
	path   string
	source ConfigSource
}

// configPaths lists config files in increasing precedence.
func configPaths() []configPath {
	var paths []configPath
	if user := UserConfigPath(); user != "" {
		paths = append(paths, configPath{user, SourceUser})
	}
	if cwd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(cwd); project != "" {
			paths = append(paths, configPath{project, SourceProject})
		}
	}
	return paths
}

// mergeConfigFiles manually merges configuration files in the given order.
// Later files override earlier ones key by key.
func mergeConfigFiles(v *viper.Viper, paths []configPath) {
	for _, cp := range paths {
		if _, err := os.Stat(cp.path); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(cp.path)
		tempViper.SetConfigType("toml")

		if err := tempViper.ReadInConfig(); err != nil {
			logger.Warnw("Skipping unreadable config file",
				logger.FieldFile, cp.path,
				logger.FieldError, err)
			continue
		}

		// MergeConfigMap keeps file values below environment variables
		// and deep-merges sections, so a later file overrides key by key.
		settings := tempViper.AllSettings()
		markSettingsFromSource(settings, "", cp.source, cp.path, ConfigSources)
		if err := v.MergeConfigMap(settings); err != nil {
			logger.Warnw("Skipping config file that could not be merged",
				logger.FieldFile, cp.path,
				logger.FieldError, err)
			continue
		}
		logger.Debugw("Merged config file",
			logger.FieldFile, cp.path,
			"source", string(cp.source))
	}
}

// markSettingsFromSource records source for every leaf key of settings.
func markSettingsFromSource(settings map[string]interface{}, prefix string, source ConfigSource, path string, sourceMap map[string]SourceInfo) {
	for key, value := range settings {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			markSettingsFromSource(nested, fullKey, source, path, sourceMap)
			continue
		}
		sourceMap[fullKey] = SourceInfo{Source: source, Path: path}
	}
}

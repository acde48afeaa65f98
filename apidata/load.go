package apidata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/adaptgen/errors"
)

// Format is an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrUnsupportedFormat, "input %s", path),
		"use a .json, .yaml, .yml or .toml file")
}

// LoadFile reads and decodes an annotated package.
func LoadFile(path string) (*Package, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	pkg, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return pkg, nil
}

// Decode parses data in the given format.
//
// YAML and TOML documents are first decoded into generic maps and then
// re-encoded as JSON, so every format shares one set of field names and the
// annotation discriminator logic.
func Decode(data []byte, format Format) (*Package, error) {
	var err error
	switch format {
	case FormatJSON:
	case FormatYAML:
		data, err = yamlToJSON(data)
	case FormatTOML:
		data, err = tomlToJSON(data)
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "format %q", format)
	}
	if err != nil {
		return nil, err
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrap(err, "failed to decode annotated package")
	}
	return &pkg, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert YAML document")
	}
	return out, nil
}

func tomlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse TOML")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert TOML document")
	}
	return out, nil
}

// Encode renders pkg in the given format. YAML output goes through the same
// generic-map conversion as decoding.
func Encode(pkg *Package, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode annotated package")
	}
	switch format {
	case FormatJSON:
		return append(data, '\n'), nil
	case FormatYAML:
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to convert to YAML")
		}
		return yaml.Marshal(doc)
	case FormatTOML:
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to convert to TOML")
		}
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(doc); err != nil {
			return nil, errors.Wrap(err, "failed to encode TOML")
		}
		return []byte(sb.String()), nil
	}
	return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "format %q", format)
}

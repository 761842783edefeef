package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest names the inputs and outputs for one build run. Relative
// paths resolve against the manifest file's directory, so a dataset
// directory can be checked out and built from anywhere.
type Manifest struct {
	// Partners is the path to the partner CSV.
	Partners string `yaml:"partners"`

	// Boundary is the path to the boundary GeoJSON.
	Boundary string `yaml:"boundary"`

	// Config optionally names a CUE map configuration file.
	Config string `yaml:"config,omitempty"`

	// Output is the directory for the bundle and exports.
	// Defaults to the manifest's directory.
	Output string `yaml:"output,omitempty"`

	// Bundle is the map bundle filename within Output.
	// Defaults to "map_bundle.json".
	Bundle string `yaml:"bundle,omitempty"`
}

// DefaultBundleName is the bundle filename when the manifest doesn't
// name one.
const DefaultBundleName = "map_bundle.json"

// LoadManifest reads and validates a dataset manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	// Strict field validation catches typos like "partner:" vs "partners:".
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if m.Partners == "" {
		return nil, fmt.Errorf("invalid manifest: partners is required")
	}
	if m.Boundary == "" {
		return nil, fmt.Errorf("invalid manifest: boundary is required")
	}

	base := filepath.Dir(path)
	m.Partners = resolve(base, m.Partners)
	m.Boundary = resolve(base, m.Boundary)
	if m.Config != "" {
		m.Config = resolve(base, m.Config)
	}
	if m.Output == "" {
		m.Output = base
	} else {
		m.Output = resolve(base, m.Output)
	}
	if m.Bundle == "" {
		m.Bundle = DefaultBundleName
	}

	return &m, nil
}

// BundlePath returns the full path of the map bundle artifact.
func (m *Manifest) BundlePath() string {
	return filepath.Join(m.Output, m.Bundle)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

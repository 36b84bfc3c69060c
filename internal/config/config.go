// Package config reads the optional YAML file holding default options for
// go-cmdletdoc. Values given on the command line take precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = ".cmdletdoc.yaml"

type Config struct {
	Strict               bool     `yaml:"strict"`
	ExcludeParameterSets []string `yaml:"exclude_parameter_sets"`
	Output               string   `yaml:"output"`
	DocComments          string   `yaml:"doc_comments"`
	Source               string   `yaml:"source"`
	Verbose              bool     `yaml:"verbose"`

	// dir is the directory of the file the config was read from.
	dir string
}

// Load reads the config file at path. When path is empty it reads
// DefaultFile if present and returns an empty Config otherwise.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes a config document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Path resolves a path from the config relative to the config file.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

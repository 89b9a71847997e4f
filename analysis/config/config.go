// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides the tool configuration and the leveled loggers
// the analysis reports through.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Node emission orders accepted by Options.NodeOrder.
const (
	// OrderLexical emits nodes and edges sorted by variable identifier.
	// This is the default: exports are reproducible across runs.
	OrderLexical = "lexical"

	// OrderInsertion emits nodes in the order their identifiers first
	// appeared in the constraint sequence.
	OrderInsertion = "insertion"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config is the analyzer configuration. If some field is not defined in the
// config file, it will be empty/zero in the struct and defaulted in Load.
type Config struct {
	Options `yaml:",inline"`

	sourceFile string
}

// Options are the yaml-settable knobs of the analyzer.
type Options struct {
	// LogLevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// SilenceWarn suppresses warnings
	SilenceWarn bool `yaml:"silence-warn"`

	// ReportStats enables the post-solve statistics report (node and edge
	// counts, graph checks, strongly connected components)
	ReportStats bool `yaml:"report-stats"`

	// ReportCycles enables the elementary-cycle report over the solved
	// inclusion graph
	ReportCycles bool `yaml:"report-cycles"`

	// NodeOrder fixes the node emission order of the graph export, one of
	// "lexical" (default) or "insertion"
	NodeOrder string `yaml:"node-order"`
}

// NewDefault returns the default config: info-level logging, lexical node
// order, no extra reports.
func NewDefault() *Config {
	return &Config{
		sourceFile: "",
		Options: Options{
			LogLevel:     int(InfoLevel),
			SilenceWarn:  false,
			ReportStats:  false,
			ReportCycles: false,
			NodeOrder:    OrderLexical,
		},
	}
}

// Load reads a configuration from a yaml file and applies defaults for the
// fields the file leaves unset.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}

	cfg.sourceFile = filename

	// If LogLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}

	if cfg.NodeOrder == "" {
		cfg.NodeOrder = OrderLexical
	}
	if cfg.NodeOrder != OrderLexical && cfg.NodeOrder != OrderInsertion {
		return nil, fmt.Errorf("invalid node-order %q: must be %q or %q",
			cfg.NodeOrder, OrderLexical, OrderInsertion)
	}

	return cfg, nil
}

// SourceFile returns the path of the file the config was loaded from, or the
// empty string for a default config.
func (c Config) SourceFile() string {
	return c.sourceFile
}

// Verbose returns true if the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}

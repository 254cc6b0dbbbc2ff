/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides the host-level configuration: which printer
// instances exist and where each instance's printer configuration
// file lives. This is tooling configuration, distinct from the
// printer configuration dialect parsed by the cfg package.
package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the gantry host configuration.
type Config struct {
	// Instances names the printer instances this host manages.
	Instances []InstanceSpec `yaml:"instances" json:"instances"`
}

// InstanceSpec declares one printer instance. It can be specified as
// a plain string path or as an object with a name and uuid.
type InstanceSpec struct {
	// Name identifies the instance. Defaults to the config file's
	// base name when empty.
	Name string `yaml:"name" json:"name"`

	// Path is the instance's printer configuration file; it may
	// contain glob patterns.
	Path string `yaml:"path" json:"path"`

	// UUID optionally pins a stable identity for the instance.
	UUID string `yaml:"uuid" json:"uuid"`
}

// UnmarshalYAML handles both string and object forms for InstanceSpec.
func (i *InstanceSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		i.Path = node.Value
		return nil
	}

	type rawInstanceSpec InstanceSpec
	return node.Decode((*rawInstanceSpec)(i))
}

// UnmarshalJSON handles both string and object forms for InstanceSpec.
func (i *InstanceSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Path = s
		return nil
	}

	type rawInstanceSpec InstanceSpec
	return json.Unmarshal(data, (*rawInstanceSpec)(i))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}

// instanceName derives an instance name from a config file path:
// the base name without its extension.
func instanceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for loading the printer
// configurations of every instance a host manages.
package load

import (
	"fmt"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/config"
	"github.com/gantry3d/gantry/fs"
)

// Instance is one printer instance with its parsed configuration.
type Instance struct {
	// Name identifies the instance within the host.
	Name string

	// UUID is the stable identity from the host config, if any.
	UUID string

	// Path is the configuration file the Document was parsed from.
	Path string

	// Doc is the parsed printer configuration.
	Doc *cfg.Document
}

// Options configures instance loading.
type Options struct {
	// Root is the directory host config paths resolve against.
	// Defaults to ".".
	Root string

	// FS is the filesystem to use. Defaults to the OS filesystem.
	FS fs.FileSystem
}

// Instances loads and parses the printer configuration of every
// instance declared by the host config. Each parse is independent;
// the first failure aborts the load, matching the parser's
// all-or-nothing contract.
func Instances(hostCfg *config.Config, opts Options) ([]*Instance, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}
	root := opts.Root
	if root == "" {
		root = "."
	}

	specs, err := hostCfg.ExpandInstances(filesystem, root)
	if err != nil {
		return nil, fmt.Errorf("expanding instances: %w", err)
	}

	var instances []*Instance
	for _, spec := range specs {
		inst, err := One(spec.Path, filesystem)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", spec.Name, err)
		}
		inst.Name = spec.Name
		inst.UUID = spec.UUID
		instances = append(instances, inst)
	}

	return instances, nil
}

// One loads and parses a single printer configuration file.
func One(path string, filesystem fs.FileSystem) (*Instance, error) {
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := cfg.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Instance{Path: path, Doc: doc}, nil
}

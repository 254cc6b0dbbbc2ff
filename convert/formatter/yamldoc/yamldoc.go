/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package yamldoc formats documents as YAML.
package yamldoc

import (
	"gopkg.in/yaml.v3"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/convert/formatter"
)

// Formatter renders documents as a YAML sequence of sections.
type Formatter struct{}

func (Formatter) Format(doc *cfg.Document, _ formatter.Options) ([]byte, error) {
	return yaml.Marshal(formatter.Export(doc))
}

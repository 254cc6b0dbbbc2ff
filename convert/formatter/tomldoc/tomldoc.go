/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tomldoc formats documents as TOML.
package tomldoc

import (
	"bytes"

	"github.com/BurntSushi/toml"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/convert/formatter"
)

// Formatter renders documents as a TOML array of tables.
type Formatter struct{}

// tomlDoc wraps the section list because TOML requires a table at the
// top level.
type tomlDoc struct {
	Sections []formatter.SectionDoc `toml:"sections"`
}

func (Formatter) Format(doc *cfg.Document, _ formatter.Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlDoc{Sections: formatter.Export(doc)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

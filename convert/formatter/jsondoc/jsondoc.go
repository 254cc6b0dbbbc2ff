/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package jsondoc formats documents as JSON.
package jsondoc

import (
	"encoding/json"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/convert/formatter"
)

// Formatter renders documents as a JSON array of sections.
type Formatter struct{}

func (Formatter) Format(doc *cfg.Document, opts formatter.Options) ([]byte, error) {
	export := formatter.Export(doc)
	if opts.Compact {
		return json.Marshal(export)
	}
	out, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

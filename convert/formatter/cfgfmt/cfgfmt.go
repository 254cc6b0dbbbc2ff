/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cfgfmt formats documents back into canonical printer config
// syntax.
package cfgfmt

import (
	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/convert/formatter"
)

// Formatter renders documents as normalized config text: one blank
// line between sections, "key: value" pairs, comments dropped.
type Formatter struct{}

func (Formatter) Format(doc *cfg.Document, _ formatter.Options) ([]byte, error) {
	return cfg.Write(doc), nil
}

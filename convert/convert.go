/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert exports parsed printer config documents to other
// formats.
package convert

import (
	"fmt"
	"strings"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/convert/formatter"
	"github.com/gantry3d/gantry/convert/formatter/cfgfmt"
	"github.com/gantry3d/gantry/convert/formatter/jsondoc"
	"github.com/gantry3d/gantry/convert/formatter/tomldoc"
	"github.com/gantry3d/gantry/convert/formatter/yamldoc"
)

// Format identifies an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCfg  Format = "cfg"
)

var formatters = map[Format]formatter.Formatter{
	FormatJSON: jsondoc.Formatter{},
	FormatYAML: yamldoc.Formatter{},
	FormatTOML: tomldoc.Formatter{},
	FormatCfg:  cfgfmt.Formatter{},
}

// ValidFormats returns the supported format names, for help text.
func ValidFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTOML), string(FormatCfg)}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if _, ok := formatters[f]; !ok {
		return "", fmt.Errorf("unknown format %q (valid: %s)", name, strings.Join(ValidFormats(), ", "))
	}
	return f, nil
}

// Convert renders doc in the given format.
func Convert(doc *cfg.Document, format Format, opts formatter.Options) ([]byte, error) {
	f, ok := formatters[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return f.Format(doc, opts)
}

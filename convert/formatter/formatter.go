/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package formatter provides the interface and common utilities for
// document formatters.
package formatter

import (
	"github.com/gantry3d/gantry/cfg"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format renders the document in the target format.
	Format(doc *cfg.Document, opts Options) ([]byte, error)
}

// Options configures formatter behavior.
type Options struct {
	// Compact disables indentation for formats that support it.
	Compact bool
}

// SectionDoc is the export shape of one section. Sections keep their
// declaration order in the enclosing slice; keys inside Values are
// lookup-oriented and unordered.
type SectionDoc struct {
	Section  string         `json:"section" yaml:"section" toml:"section"`
	Instance string         `json:"instance,omitempty" yaml:"instance,omitempty" toml:"instance,omitempty"`
	Values   map[string]any `json:"values" yaml:"values" toml:"values"`
}

// Export converts a document into the neutral export shape shared by
// the structured formatters.
func Export(doc *cfg.Document) []SectionDoc {
	var out []SectionDoc
	for sec := range doc.Sections() {
		sd := SectionDoc{
			Section:  sec.Type,
			Instance: sec.Instance,
			Values:   make(map[string]any, len(sec.Pairs())),
		}
		for _, kv := range sec.Pairs() {
			sd.Values[kv.Key] = Payload(kv.Value)
		}
		out = append(out, sd)
	}
	return out
}

// Payload converts a Value into plain data: float64, []float64,
// [][]float64 for ratio pairs, string, or []string.
func Payload(v cfg.Value) any {
	switch v.Kind() {
	case cfg.KindNumber:
		n, _ := v.AsNumber()
		return n
	case cfg.KindNumberArray:
		ns, _ := v.AsNumberArray()
		return ns
	case cfg.KindRatio:
		rs, _ := v.AsRatio()
		pairs := make([][]float64, len(rs))
		for i, r := range rs {
			pairs[i] = []float64{r.Num, r.Den}
		}
		return pairs
	case cfg.KindStringArray:
		ss, _ := v.AsStringArray()
		return ss
	default:
		s, _ := v.AsString()
		return s
	}
}

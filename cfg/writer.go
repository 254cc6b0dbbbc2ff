/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cfg

import (
	"strings"
)

// Write renders the document back to the dialect's surface syntax.
// Sections and keys keep their declaration order, so parsing the
// output yields an equivalent document. Strings containing newlines
// are emitted as indented continuation blocks.
func Write(doc *Document) []byte {
	var b strings.Builder
	first := true
	for sec := range doc.Sections() {
		if !first {
			b.WriteByte('\n')
		}
		first = false
		writeSection(&b, sec)
	}
	return []byte(b.String())
}

func writeSection(b *strings.Builder, sec *Section) {
	b.WriteByte('[')
	b.WriteString(sec.Name())
	b.WriteString("]\n")
	for _, kv := range sec.Pairs() {
		b.WriteString(kv.Key)
		b.WriteByte(':')
		writeValue(b, kv.Value)
		b.WriteByte('\n')
	}
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Kind() {
	case KindString:
		if s, _ := v.AsString(); strings.Contains(s, "\n") {
			for _, line := range strings.Split(s, "\n") {
				b.WriteString("\n    ")
				b.WriteString(line)
			}
			return
		}
	case KindNumberArray:
		// A lone number written inline would reparse as a plain
		// number; a continuation block keeps it an array.
		if ns, _ := v.AsNumberArray(); len(ns) == 1 {
			b.WriteString("\n    ")
			b.WriteString(formatNumber(ns[0]))
			return
		}
	}
	b.WriteByte(' ')
	b.WriteString(v.String())
}

/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator lints parsed printer configurations. Findings are
// advisory: the parser's last-wins policy for duplicates stands, but
// duplicates in a hand-edited config usually mean a merge went wrong,
// so the CLI surfaces them before they reach hardware.
package validator

import (
	"fmt"
	"strings"

	"github.com/gantry3d/gantry/cfg"
)

// Issue is one lint finding.
type Issue struct {
	// FilePath is the file the document came from, when known.
	FilePath string

	// Section names the section the finding is about.
	Section string

	// Pos locates the finding in the source text.
	Pos cfg.Pos

	// Message describes what's wrong.
	Message string

	// Suggestion provides an actionable fix.
	Suggestion string
}

// String renders the issue for terminal output.
func (i Issue) String() string {
	var sb strings.Builder
	if i.FilePath != "" {
		sb.WriteString(i.FilePath)
		sb.WriteString(":")
	}
	fmt.Fprintf(&sb, "%s: [%s]: %s", i.Pos, i.Section, i.Message)
	if i.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(i.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// Validate lints doc and returns all findings. An empty result means
// a clean document.
func Validate(doc *cfg.Document) []Issue {
	return ValidateWithPath(doc, "")
}

// ValidateWithPath lints doc and includes filePath in findings.
func ValidateWithPath(doc *cfg.Document, filePath string) []Issue {
	var issues []Issue

	seen := make(map[string]cfg.Pos)
	for sec := range doc.Sections() {
		name := sec.Name()
		if firstAt, dup := seen[name]; dup {
			issues = append(issues, Issue{
				FilePath:   filePath,
				Section:    name,
				Pos:        sec.Span.Start,
				Message:    fmt.Sprintf("duplicate section, first declared at %s", firstAt),
				Suggestion: "later declaration wins; merge or remove one",
			})
		} else {
			seen[name] = sec.Span.Start
		}

		if len(sec.Pairs()) == 0 {
			issues = append(issues, Issue{
				FilePath:   filePath,
				Section:    name,
				Pos:        sec.Span.Start,
				Message:    "section has no settings",
				Suggestion: "remove the section or fill it in",
			})
		}

		for _, key := range sec.DuplicateKeys() {
			issues = append(issues, Issue{
				FilePath:   filePath,
				Section:    name,
				Pos:        keyPos(sec, key),
				Message:    fmt.Sprintf("key %q assigned more than once", key),
				Suggestion: "last assignment wins; remove the others",
			})
		}
	}

	return issues
}

// keyPos locates key's pair. Duplicated pairs carry the span of their
// last assignment, which is the line the finding should point at.
func keyPos(sec *cfg.Section, key string) cfg.Pos {
	for _, kv := range sec.Pairs() {
		if kv.Key == key {
			return kv.Span.Start
		}
	}
	return sec.Span.Start
}

/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cfg

import (
	"errors"
	"fmt"
)

// Sentinel errors for document queries.
var (
	// ErrNotFound indicates no section matched the requested type and
	// instance name.
	ErrNotFound = errors.New("section not found")

	// ErrMissingKey indicates the requested key is absent from the section.
	ErrMissingKey = errors.New("missing key")

	// ErrTypeMismatch indicates a key holds a different value variant
	// than the one requested.
	ErrTypeMismatch = errors.New("type mismatch")
)

func mismatch(want, got Kind) error {
	return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, got)
}

// Pos is a location in the source text. Offset is a byte offset from
// the start of the input; Line and Col are 1-based, with Col counted
// in bytes.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// String renders the position as "line:col".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is a half-open [Start, End) range in the source text, attached
// to sections and key-value pairs for diagnostics.
type Span struct {
	Start Pos
	End   Pos
}

// SyntaxError reports the first position at which no grammar
// alternative matched. Parsing halts at the first syntax error; no
// partial document is ever returned.
type SyntaxError struct {
	// Pos is the position of the offending byte.
	Pos Pos

	// Expected describes the construct the grammar required.
	Expected string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: expected %s", e.Pos, e.Expected)
}

func syntaxErr(p Pos, expected string) *SyntaxError {
	return &SyntaxError{Pos: p, Expected: expected}
}

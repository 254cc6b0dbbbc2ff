/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cfg

import (
	"strconv"
	"strings"
)

// Parse parses a complete configuration text into a Document. It
// operates on the whole input in one pass and performs no I/O. On the
// first grammar violation it returns a *SyntaxError and no document.
func Parse(text string) (*Document, error) {
	s := &scanner{src: text, line: 1, col: 1}

	var sections []*Section
	for {
		s.skipBlankRun()
		if s.eof() {
			break
		}
		sec, err := s.parseSection()
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}

	return newDocument(sections), nil
}

// scanner walks the input byte by byte, tracking line and column for
// diagnostics. Value alternatives save and restore marks to get the
// ordered-choice, first-match-wins semantics of the grammar.
type scanner struct {
	src  string
	pos  int
	line int
	col  int
}

type mark struct {
	pos  int
	line int
	col  int
}

func (s *scanner) mark() mark {
	return mark{s.pos, s.line, s.col}
}

func (s *scanner) restore(m mark) {
	s.pos, s.line, s.col = m.pos, m.line, m.col
}

func (s *scanner) at() Pos {
	return Pos{Offset: s.pos, Line: s.line, Col: s.col}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) advance() byte {
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

// skipInline skips insignificant whitespace: space, tab and carriage
// return. Newline is significant and is never skipped here.
func (s *scanner) skipInline() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.advance()
		default:
			return
		}
	}
}

// skipToLineEnd consumes everything up to, but not including, the
// next newline.
func (s *scanner) skipToLineEnd() {
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}
}

// skipBlankRun consumes any run of blank lines and '#' comment lines.
// It stops at the start of the first line carrying content, before
// that line's leading whitespace.
func (s *scanner) skipBlankRun() {
	for {
		m := s.mark()
		s.skipInline()
		if s.eof() {
			return
		}
		switch s.peek() {
		case '\n':
			s.advance()
		case '#':
			s.skipToLineEnd()
			if !s.eof() {
				s.advance()
			}
		default:
			s.restore(m)
			return
		}
	}
}

// skipTrailingComment consumes an optional inline comment: optional
// whitespace then ';' or '#' and the rest of the line. The newline is
// left in place.
func (s *scanner) skipTrailingComment() {
	m := s.mark()
	s.skipInline()
	if s.peek() == ';' || s.peek() == '#' {
		s.skipToLineEnd()
		return
	}
	s.restore(m)
}

// atLineEnd reports whether the scanner sits on a newline or at end
// of input, after any trailing whitespace.
func (s *scanner) atLineEnd() bool {
	m := s.mark()
	s.skipInline()
	if s.eof() || s.peek() == '\n' {
		return true
	}
	s.restore(m)
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// ident matches an identifier: letter or underscore, then letters,
// digits and underscores.
func (s *scanner) ident() (string, bool) {
	if s.eof() || !isIdentStart(s.peek()) {
		return "", false
	}
	start := s.pos
	for !s.eof() && isIdentCont(s.peek()) {
		s.advance()
	}
	return s.src[start:s.pos], true
}

// lexNumber matches a numeric literal: optional '-', an integer part
// of '0' or a non-zero digit followed by digits, an optional '.' with
// optional fractional digits, and an optional exponent. A bare
// trailing '.' is legal and denotes a zero fractional part.
func (s *scanner) lexNumber() (float64, bool) {
	m := s.mark()
	start := s.pos

	if s.peek() == '-' {
		s.advance()
	}
	switch {
	case s.peek() == '0':
		s.advance()
	case s.peek() >= '1' && s.peek() <= '9':
		for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			s.advance()
		}
	default:
		s.restore(m)
		return 0, false
	}
	if s.peek() == '.' {
		s.advance()
		for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		e := s.mark()
		s.advance()
		if s.peek() == '+' || s.peek() == '-' {
			s.advance()
		}
		if s.peek() >= '0' && s.peek() <= '9' {
			for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
				s.advance()
			}
		} else {
			// 'e' not followed by digits is not an exponent.
			s.restore(e)
		}
	}

	text := s.src[start:s.pos]
	n, err := strconv.ParseFloat(strings.TrimSuffix(text, "."), 64)
	if err != nil {
		s.restore(m)
		return 0, false
	}
	return n, true
}

// parseSection parses one section header and its key-value lines.
// The scanner must sit on the '[' of the header.
func (s *scanner) parseSection() (*Section, error) {
	start := s.at()
	if s.peek() != '[' {
		return nil, syntaxErr(s.at(), "section header '['")
	}
	s.advance()
	s.skipInline()

	typ, ok := s.ident()
	if !ok {
		return nil, syntaxErr(s.at(), "section type name")
	}

	var instance string
	s.skipInline()
	if !s.eof() && isIdentStart(s.peek()) {
		instance, _ = s.ident()
		s.skipInline()
	}

	if s.peek() != ']' {
		return nil, syntaxErr(s.at(), "']'")
	}
	s.advance()
	s.skipTrailingComment()
	if !s.atLineEnd() {
		return nil, syntaxErr(s.at(), "end of line after section header")
	}
	if !s.eof() {
		s.advance()
	}

	sec := &Section{
		Type:     typ,
		Instance: instance,
		index:    make(map[string]int),
	}

	end := s.at()
	for {
		m := s.mark()
		s.skipBlankRun()
		if s.eof() || s.peek() == '[' {
			s.restore(m)
			break
		}
		if s.peek() == ' ' || s.peek() == '\t' {
			return nil, syntaxErr(s.at(), "key (continuation lines must follow a value)")
		}

		kv, err := s.parseKeyValue()
		if err != nil {
			return nil, err
		}
		if i, dup := sec.index[kv.Key]; dup {
			// Last assignment wins; the pair keeps its first position.
			sec.pairs[i].Value = kv.Value
			sec.pairs[i].Span = kv.Span
			sec.noteDuplicate(kv.Key)
		} else {
			sec.index[kv.Key] = len(sec.pairs)
			sec.pairs = append(sec.pairs, kv)
		}
		end = s.at()

		if !s.eof() {
			s.advance() // the terminating newline
		}
	}

	sec.Span = Span{Start: start, End: end}
	return sec, nil
}

// parseKeyValue parses "key : VALUE" up to, but not including, the
// terminating newline.
func (s *scanner) parseKeyValue() (KeyValue, error) {
	start := s.at()
	key, ok := s.ident()
	if !ok {
		return KeyValue{}, syntaxErr(s.at(), "key")
	}
	s.skipInline()
	if s.peek() != ':' && s.peek() != '=' {
		return KeyValue{}, syntaxErr(s.at(), "':' or '='")
	}
	s.advance()
	s.skipInline()

	v := s.parseValue()
	return KeyValue{
		Key:   key,
		Value: v,
		Span:  Span{Start: start, End: s.at()},
	}, nil
}

// parseValue resolves a value by trying the grammar's alternatives in
// fixed priority order; the first one that matches wins and later
// alternatives are never consulted. The scanner is left on the
// terminating newline (or at end of input).
func (s *scanner) parseValue() Value {
	if v, ok := s.tryMultilineNumberArray(); ok {
		return v
	}
	if v, ok := s.tryMultilineString(); ok {
		return v
	}
	if v, ok := s.tryRatio(); ok {
		return v
	}
	if v, ok := s.tryNumberArray(); ok {
		return v
	}
	if v, ok := s.tryNumber(); ok {
		return v
	}
	if v, ok := s.tryStringArray(); ok {
		return v
	}
	return s.singleLineString()
}

// continuationStart consumes a continuation block prelude: the
// newline ending the previous line, any comment or blank lines, and
// the mandatory leading whitespace of the continuation line. It
// reports false when the next content line is not indented.
func (s *scanner) continuationStart() bool {
	if s.peek() != '\n' {
		return false
	}
	s.advance()
	s.skipBlankRun()
	if s.eof() || (s.peek() != ' ' && s.peek() != '\t') {
		return false
	}
	s.skipInline()
	return s.peek() != '\n' && !s.eof()
}

// moreContinuations reports whether another indented continuation
// line follows, without consuming anything.
func (s *scanner) moreContinuations() bool {
	m := s.mark()
	ok := s.continuationStart()
	s.restore(m)
	return ok
}

// tryMultilineNumberArray matches alternative 1: an empty same-line
// value followed by one or more indented lines of comma-separated
// numbers, flattened in document order.
func (s *scanner) tryMultilineNumberArray() (Value, bool) {
	m := s.mark()
	s.skipTrailingComment()

	var nums []float64
	blocks := 0
	for {
		b := s.mark()
		if !s.continuationStart() {
			s.restore(b)
			break
		}
		line, ok := s.numberList()
		if !ok {
			s.restore(b)
			break
		}
		nums = append(nums, line...)
		blocks++
	}
	if blocks == 0 {
		s.restore(m)
		return Value{}, false
	}
	// A further indented line that failed to parse as numbers means
	// this value is not a number array after all; let the multiline
	// string alternative take the whole block.
	if s.moreContinuations() {
		s.restore(m)
		return Value{}, false
	}
	return NumberArray(nums...), true
}

// numberList matches one or more comma-separated numbers, a trailing
// comment, and the end of the line.
func (s *scanner) numberList() ([]float64, bool) {
	n, ok := s.lexNumber()
	if !ok {
		return nil, false
	}
	nums := []float64{n}
	for {
		m := s.mark()
		s.skipInline()
		if s.peek() != ',' {
			s.restore(m)
			break
		}
		s.advance()
		s.skipInline()
		n, ok := s.lexNumber()
		if !ok {
			return nil, false
		}
		nums = append(nums, n)
	}
	s.skipTrailingComment()
	if !s.atLineEnd() {
		return nil, false
	}
	return nums, true
}

// tryMultilineString matches alternative 2: an empty same-line value
// followed by one or more indented lines of free text, joined with
// newlines.
func (s *scanner) tryMultilineString() (Value, bool) {
	m := s.mark()
	s.skipTrailingComment()

	var lines []string
	for {
		b := s.mark()
		if !s.continuationStart() {
			s.restore(b)
			break
		}
		lines = append(lines, s.lineText())
	}
	if len(lines) == 0 {
		s.restore(m)
		return Value{}, false
	}
	return String(strings.Join(lines, "\n")), true
}

// lineText captures the rest of the line up to a comment marker or
// the newline, right-trimmed, and consumes any trailing comment.
func (s *scanner) lineText() string {
	start := s.pos
	for !s.eof() {
		c := s.peek()
		if c == '\n' || c == ';' || c == '#' {
			break
		}
		s.advance()
	}
	text := strings.TrimRight(s.src[start:s.pos], " \t\r")
	if s.peek() == ';' || s.peek() == '#' {
		s.skipToLineEnd()
	}
	return text
}

// tryRatio matches alternative 3: one or more "a:b" groups separated
// by commas on one line.
func (s *scanner) tryRatio() (Value, bool) {
	m := s.mark()

	var rs Ratios
	for {
		num, ok := s.lexNumber()
		if !ok {
			s.restore(m)
			return Value{}, false
		}
		s.skipInline()
		if s.peek() != ':' {
			s.restore(m)
			return Value{}, false
		}
		s.advance()
		s.skipInline()
		den, ok := s.lexNumber()
		if !ok {
			s.restore(m)
			return Value{}, false
		}
		rs = append(rs, Ratio{Num: num, Den: den})

		g := s.mark()
		s.skipInline()
		if s.peek() != ',' {
			s.restore(g)
			break
		}
		s.advance()
		s.skipInline()
	}
	s.skipTrailingComment()
	if !s.atLineEnd() {
		s.restore(m)
		return Value{}, false
	}
	return RatioValue(rs...), true
}

// tryNumberArray matches alternative 4: two or more comma-separated
// numbers on one line.
func (s *scanner) tryNumberArray() (Value, bool) {
	m := s.mark()
	nums, ok := s.numberList()
	if !ok || len(nums) < 2 {
		s.restore(m)
		return Value{}, false
	}
	return NumberArray(nums...), true
}

// tryNumber matches alternative 5: a single numeric literal.
func (s *scanner) tryNumber() (Value, bool) {
	m := s.mark()
	n, ok := s.lexNumber()
	if !ok {
		return Value{}, false
	}
	s.skipTrailingComment()
	if !s.atLineEnd() {
		s.restore(m)
		return Value{}, false
	}
	return Number(n), true
}

// tryStringArray matches alternative 6: two or more comma-separated
// free-form strings on one line.
func (s *scanner) tryStringArray() (Value, bool) {
	m := s.mark()

	var elems []string
	for {
		start := s.pos
		for !s.eof() {
			c := s.peek()
			if c == '\n' || c == ';' || c == '#' || c == ',' {
				break
			}
			s.advance()
		}
		elems = append(elems, strings.TrimSpace(s.src[start:s.pos]))
		if s.peek() != ',' {
			break
		}
		s.advance()
	}
	if len(elems) < 2 {
		s.restore(m)
		return Value{}, false
	}
	if s.peek() == ';' || s.peek() == '#' {
		s.skipToLineEnd()
	}
	return StringArray(elems...), true
}

// singleLineString matches alternative 7: the remainder of the line.
// It always succeeds, possibly with empty text.
func (s *scanner) singleLineString() Value {
	return String(s.lineText())
}

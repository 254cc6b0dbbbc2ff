/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cfg

import (
	"fmt"
	"iter"
)

// KeyValue is a single key assignment inside a section.
type KeyValue struct {
	Key   string
	Value Value

	// Span covers the key through the end of the value.
	Span Span
}

// Section is one named configuration block, e.g. [stepper_x] or
// [tmc2209 stepper_x]. Sections are built during parsing and never
// mutated afterward.
type Section struct {
	// Type is the section type name, e.g. "stepper_x".
	Type string

	// Instance is the optional secondary identifier distinguishing
	// multiple sections of the same type, e.g. the "stepper_x" in
	// [tmc2209 stepper_x]. Empty when the header has one identifier.
	Instance string

	// Span covers the header through the last key-value line.
	Span Span

	pairs []KeyValue
	index map[string]int
	dups  []string
}

// DuplicateKeys returns the keys that were assigned more than once in
// this section, in first-duplicate order. The stored values follow
// the last-wins policy; this is diagnostic information for linting.
func (s *Section) DuplicateKeys() []string {
	return s.dups
}

func (s *Section) noteDuplicate(key string) {
	for _, k := range s.dups {
		if k == key {
			return
		}
	}
	s.dups = append(s.dups, key)
}

// Name returns "type" or "type instance" as written in the header.
func (s *Section) Name() string {
	if s.Instance == "" {
		return s.Type
	}
	return s.Type + " " + s.Instance
}

// Pairs returns the section's key-value pairs in declaration order.
// The returned slice must not be modified.
func (s *Section) Pairs() []KeyValue {
	return s.pairs
}

// Value returns the value stored under key, or ErrMissingKey.
func (s *Section) Value(key string) (Value, error) {
	i, ok := s.index[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q in [%s]", ErrMissingKey, key, s.Name())
	}
	return s.pairs[i].Value, nil
}

// Number returns the key's value as a number.
func (s *Section) Number(key string) (float64, error) {
	v, err := s.Value(key)
	if err != nil {
		return 0, err
	}
	n, err := v.AsNumber()
	if err != nil {
		return 0, fmt.Errorf("%q in [%s]: %w", key, s.Name(), err)
	}
	return n, nil
}

// NumberArray returns the key's value as a number sequence.
func (s *Section) NumberArray(key string) ([]float64, error) {
	v, err := s.Value(key)
	if err != nil {
		return nil, err
	}
	ns, err := v.AsNumberArray()
	if err != nil {
		return nil, fmt.Errorf("%q in [%s]: %w", key, s.Name(), err)
	}
	return ns, nil
}

// Ratio returns the key's value as a gear train.
func (s *Section) Ratio(key string) (Ratios, error) {
	v, err := s.Value(key)
	if err != nil {
		return nil, err
	}
	rs, err := v.AsRatio()
	if err != nil {
		return nil, fmt.Errorf("%q in [%s]: %w", key, s.Name(), err)
	}
	return rs, nil
}

// Text returns the key's value as free-form text.
func (s *Section) Text(key string) (string, error) {
	v, err := s.Value(key)
	if err != nil {
		return "", err
	}
	t, err := v.AsString()
	if err != nil {
		return "", fmt.Errorf("%q in [%s]: %w", key, s.Name(), err)
	}
	return t, nil
}

// TextArray returns the key's value as a string sequence.
func (s *Section) TextArray(key string) ([]string, error) {
	v, err := s.Value(key)
	if err != nil {
		return nil, err
	}
	ts, err := v.AsStringArray()
	if err != nil {
		return nil, fmt.Errorf("%q in [%s]: %w", key, s.Name(), err)
	}
	return ts, nil
}

// Document is the parse result: an ordered, immutable sequence of
// sections. A Document is safe to share across goroutines once built.
type Document struct {
	sections []*Section
	index    map[string]int
}

// NewDocument builds a document from an existing section list, for
// callers that assemble or filter sections outside the parser.
func NewDocument(sections []*Section) *Document {
	return newDocument(sections)
}

func newDocument(sections []*Section) *Document {
	d := &Document{
		sections: sections,
		index:    make(map[string]int, len(sections)),
	}
	// Last occurrence wins for lookup; iteration keeps every
	// occurrence in declaration order.
	for i, s := range sections {
		d.index[s.Name()] = i
	}
	return d
}

// Len returns the number of sections, counting duplicates.
func (d *Document) Len() int {
	return len(d.sections)
}

// Sections iterates the sections in declaration order. The sequence
// is restartable.
func (d *Document) Sections() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		for _, s := range d.sections {
			if !yield(s) {
				return
			}
		}
	}
}

// Section returns the section with the given type name and instance
// name ("" for headers with a single identifier), or ErrNotFound.
// When duplicates exist the last declaration wins.
func (d *Document) Section(typ, instance string) (*Section, error) {
	name := typ
	if instance != "" {
		name = typ + " " + instance
	}
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrNotFound, name)
	}
	return d.sections[i], nil
}

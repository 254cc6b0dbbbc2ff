/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cfg parses printer configuration files.
//
// The dialect is the INI-like format used by printer firmware hosts:
// bracketed section headers with an optional instance name, key:value
// lines, '#' and ';' comments, and indented continuation blocks for
// multi-line values. Parsing produces an immutable Document that
// downstream device constructors (stepper, heater, MCU) query through
// typed accessors. The parser itself never touches the filesystem and
// never interprets pin modifier prefixes such as '!' or '^'; pin
// specifiers are stored verbatim as opaque strings.
package cfg

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of a Value is active.
type Kind int

const (
	// KindNumber is a single 64-bit floating point number.
	KindNumber Kind = iota

	// KindNumberArray is an ordered sequence of numbers.
	KindNumberArray

	// KindRatio is an ordered sequence of numerator:denominator pairs.
	KindRatio

	// KindString is free-form text.
	KindString

	// KindStringArray is an ordered sequence of free-form strings.
	KindStringArray
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindNumberArray:
		return "number array"
	case KindRatio:
		return "ratio"
	case KindString:
		return "string"
	case KindStringArray:
		return "string array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Ratio is a single numerator:denominator pair.
type Ratio struct {
	Num float64
	Den float64
}

// Ratios is an ordered gear train, e.g. "80:16, 2:1".
type Ratios []Ratio

// Factor collapses the train into a single multiplier by multiplying
// every Num/Den in order. An empty train has factor 1.
func (rs Ratios) Factor() float64 {
	f := 1.0
	for _, r := range rs {
		f *= r.Num / r.Den
	}
	return f
}

// Value is a tagged union over the closed set of value shapes the
// grammar can produce. The active variant is fixed at construction.
type Value struct {
	kind    Kind
	num     float64
	nums    []float64
	ratios  Ratios
	str     string
	strs    []string
}

// Number constructs a Value holding a single number.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// NumberArray constructs a Value holding an ordered number sequence.
func NumberArray(ns ...float64) Value { return Value{kind: KindNumberArray, nums: ns} }

// RatioValue constructs a Value holding a gear train.
func RatioValue(rs ...Ratio) Value { return Value{kind: KindRatio, ratios: rs} }

// String constructs a Value holding free-form text.
func String(s string) Value { return Value{kind: KindString, str: s} }

// StringArray constructs a Value holding an ordered string sequence.
func StringArray(ss ...string) Value { return Value{kind: KindStringArray, strs: ss} }

// Kind reports which variant is active.
func (v Value) Kind() Kind { return v.kind }

// AsNumber returns the number payload, or ErrTypeMismatch.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, mismatch(KindNumber, v.kind)
	}
	return v.num, nil
}

// AsNumberArray returns the number sequence payload, or ErrTypeMismatch.
// The returned slice must not be modified.
func (v Value) AsNumberArray() ([]float64, error) {
	if v.kind != KindNumberArray {
		return nil, mismatch(KindNumberArray, v.kind)
	}
	return v.nums, nil
}

// AsRatio returns the gear train payload, or ErrTypeMismatch.
func (v Value) AsRatio() (Ratios, error) {
	if v.kind != KindRatio {
		return nil, mismatch(KindRatio, v.kind)
	}
	return v.ratios, nil
}

// AsString returns the text payload, or ErrTypeMismatch.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", mismatch(KindString, v.kind)
	}
	return v.str, nil
}

// AsStringArray returns the string sequence payload, or ErrTypeMismatch.
// The returned slice must not be modified.
func (v Value) AsStringArray() ([]string, error) {
	if v.kind != KindStringArray {
		return nil, mismatch(KindStringArray, v.kind)
	}
	return v.strs, nil
}

// Equal reports whether two values have the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindNumberArray:
		if len(v.nums) != len(o.nums) {
			return false
		}
		for i := range v.nums {
			if v.nums[i] != o.nums[i] {
				return false
			}
		}
		return true
	case KindRatio:
		if len(v.ratios) != len(o.ratios) {
			return false
		}
		for i := range v.ratios {
			if v.ratios[i] != o.ratios[i] {
				return false
			}
		}
		return true
	case KindString:
		return v.str == o.str
	case KindStringArray:
		if len(v.strs) != len(o.strs) {
			return false
		}
		for i := range v.strs {
			if v.strs[i] != o.strs[i] {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value in the dialect's surface syntax. Multiline
// strings render with embedded newlines; the writer handles indenting
// them back into continuation blocks.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindNumberArray:
		parts := make([]string, len(v.nums))
		for i, n := range v.nums {
			parts[i] = formatNumber(n)
		}
		return strings.Join(parts, ", ")
	case KindRatio:
		parts := make([]string, len(v.ratios))
		for i, r := range v.ratios {
			parts[i] = formatNumber(r.Num) + ":" + formatNumber(r.Den)
		}
		return strings.Join(parts, ", ")
	case KindString:
		return v.str
	case KindStringArray:
		return strings.Join(v.strs, ", ")
	}
	return ""
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package gcode parses sliced G-code files: the command stream plus
// the comment-embedded extras slicers add (banner, thumbnails, print
// metadata and the config trailer). Motion planning and command
// execution belong to the printer runtime, not here.
package gcode

import (
	"strconv"
	"strings"
)

// Command is one G-code command line, e.g. "G1 X10 Y20 F3000".
type Command struct {
	// Cmd is the command mnemonic, e.g. "G1" or "M104".
	Cmd string

	// Params are the raw parameter words in order, e.g. ["X10", "F3000"].
	Params []string
}

// Float returns the numeric argument of the parameter word starting
// with the given letter, matched case-insensitively. The second
// return is false when the word is absent or not numeric.
func (c Command) Float(letter byte) (float64, bool) {
	upper := letter &^ 0x20
	for _, p := range c.Params {
		if p[0] != upper && p[0] != upper|0x20 {
			continue
		}
		n, err := strconv.ParseFloat(p[1:], 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// ParseLine parses a single G-code line into a Command. It strips the
// trailing ';' comment and collapses repeated whitespace. The second
// return is false for blank and comment-only lines.
func ParseLine(line string) (Command, bool) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Cmd: fields[0], Params: fields[1:]}, true
}

// SlicerInfo is the banner comment slicers emit at the top of a file,
// e.g. "; generated by PrusaSlicer 2.7.1 on 2024-01-02 at 10:00:00".
type SlicerInfo struct {
	Name    string
	Version string
	Date    string
	Time    string
}

// Thumbnail is a preview image embedded in the comment stream.
type Thumbnail struct {
	Width  int
	Height int

	// Data is the decoded image payload.
	Data []byte
}

// Meta aggregates the print statistics slicers write as "; key = value"
// comment lines.
type Meta struct {
	FilamentUsedMM   float64
	FilamentUsedCM3  float64
	FilamentUsedG    float64
	FilamentCost     float64
	TotalFilamentG   float64
	TotalLayers      int
	EstimatedSeconds int
}

// KeyValue is one entry of the slicer config trailer, order preserved.
type KeyValue struct {
	Key   string
	Value string
}

// File is a fully parsed G-code file.
type File struct {
	Slicer     SlicerInfo
	Thumbnails []Thumbnail
	Meta       Meta

	// Config holds the slicer settings trailer in file order.
	Config []KeyValue

	Commands []Command
}

// ConfigValue returns the config trailer value for key. The second
// return is false when the key is absent.
func (f *File) ConfigValue(key string) (string, bool) {
	for _, kv := range f.Config {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

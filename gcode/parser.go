/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package gcode

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLine bounds a single G-code line. Arc-heavy files produce long
// lines but nothing close to this.
const maxLine = 1 << 20

// Parse reads a complete G-code file from r. Comment lines carrying
// slicer extras are decoded into the File's banner, thumbnail, meta
// and config fields; everything else comment-shaped is discarded.
func Parse(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	file := &File{}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ";") {
			if cmd, ok := ParseLine(line); ok {
				file.Commands = append(file.Commands, cmd)
			}
			continue
		}

		comment := strings.TrimSpace(line[1:])
		switch {
		case strings.HasPrefix(comment, "generated by "):
			file.Slicer = parseBanner(comment)
		case strings.HasPrefix(comment, "thumbnail begin "):
			thumb, err := parseThumbnail(sc, comment)
			if err != nil {
				// An unterminated or corrupt thumbnail block is
				// treated as plain comments and skipped.
				continue
			}
			file.Thumbnails = append(file.Thumbnails, thumb)
		default:
			if key, value, ok := strings.Cut(comment, "="); ok {
				file.addKeyValue(strings.TrimSpace(key), strings.TrimSpace(value))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading gcode: %w", err)
	}
	return file, nil
}

// parseBanner decodes "generated by <slicer> <version> on <date> at <time>".
func parseBanner(comment string) SlicerInfo {
	rest := strings.TrimPrefix(comment, "generated by ")
	var info SlicerInfo

	if head, stamp, ok := strings.Cut(rest, " on "); ok {
		rest = head
		if date, clock, ok := strings.Cut(stamp, " at "); ok {
			info.Date = strings.TrimSpace(date)
			info.Time = strings.TrimSpace(clock)
		} else {
			info.Date = strings.TrimSpace(stamp)
		}
	}
	fields := strings.Fields(rest)
	if len(fields) > 0 {
		info.Name = fields[0]
	}
	if len(fields) > 1 {
		info.Version = fields[1]
	}
	return info
}

// parseThumbnail consumes a "; thumbnail begin WxH N" block: base64
// payload lines prefixed with ";" up to "; thumbnail end".
func parseThumbnail(sc *bufio.Scanner, header string) (Thumbnail, error) {
	fields := strings.Fields(strings.TrimPrefix(header, "thumbnail begin "))
	if len(fields) < 1 {
		return Thumbnail{}, fmt.Errorf("malformed thumbnail header %q", header)
	}
	w, h, ok := strings.Cut(fields[0], "x")
	if !ok {
		return Thumbnail{}, fmt.Errorf("malformed thumbnail size %q", fields[0])
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Thumbnail{}, err
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Thumbnail{}, err
	}

	var payload strings.Builder
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, ";") {
			return Thumbnail{}, fmt.Errorf("thumbnail block interrupted by %q", line)
		}
		body := strings.TrimSpace(line[1:])
		if body == "thumbnail end" {
			data, err := base64.StdEncoding.DecodeString(payload.String())
			if err != nil {
				return Thumbnail{}, fmt.Errorf("decoding thumbnail: %w", err)
			}
			return Thumbnail{Width: width, Height: height, Data: data}, nil
		}
		payload.WriteString(body)
	}
	return Thumbnail{}, fmt.Errorf("unterminated thumbnail block")
}

// addKeyValue routes a "; key = value" comment line into Meta when
// the key is a known print statistic, otherwise into the config
// trailer.
func (f *File) addKeyValue(key, value string) {
	switch key {
	case "filament used [mm]":
		f.Meta.FilamentUsedMM = parseFloat(value)
	case "filament used [cm3]":
		f.Meta.FilamentUsedCM3 = parseFloat(value)
	case "filament used [g]":
		f.Meta.FilamentUsedG = parseFloat(value)
	case "filament cost":
		f.Meta.FilamentCost = parseFloat(value)
	case "total filament used [g]":
		f.Meta.TotalFilamentG = parseFloat(value)
	case "total layers count":
		n, _ := strconv.Atoi(value)
		f.Meta.TotalLayers = n
	case "estimated printing time (normal mode)":
		f.Meta.EstimatedSeconds = parseDuration(value)
	default:
		f.Config = append(f.Config, KeyValue{Key: key, Value: value})
	}
}

func parseFloat(s string) float64 {
	n, _ := strconv.ParseFloat(s, 64)
	return n
}

// parseDuration converts slicer time estimates like "1d 2h 3m 4s"
// into seconds. Unknown tokens are ignored.
func parseDuration(s string) int {
	total := 0
	for _, field := range strings.Fields(s) {
		if len(field) < 2 {
			continue
		}
		n, err := strconv.Atoi(field[:len(field)-1])
		if err != nil {
			continue
		}
		switch field[len(field)-1] {
		case 'd':
			total += n * 86400
		case 'h':
			total += n * 3600
		case 'm':
			total += n * 60
		case 's':
			total += n
		}
	}
	return total
}

/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/convert/formatter"
)

const sample = `[stepper_x]
step_pin: PF0
microsteps: 16
gear_ratio: 50:17

[mcu head]
serial: /dev/ttyACM1
`

func parseSample(t *testing.T) *cfg.Document {
	t.Helper()
	doc, err := cfg.Parse(sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParseFormat(t *testing.T) {
	for _, name := range ValidFormats() {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("YAML"); err != nil {
		t.Errorf("ParseFormat is not case-insensitive: %v", err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(\"xml\") should fail")
	}
}

func TestConvertJSON(t *testing.T) {
	out, err := Convert(parseSample(t), FormatJSON, formatter.Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	var sections []formatter.SectionDoc
	if err := json.Unmarshal(out, &sections); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Section != "stepper_x" {
		t.Errorf("first section = %q, want stepper_x", sections[0].Section)
	}
	if sections[1].Instance != "head" {
		t.Errorf("mcu instance = %q, want head", sections[1].Instance)
	}
	if n, ok := sections[0].Values["microsteps"].(float64); !ok || n != 16 {
		t.Errorf("microsteps = %v, want 16", sections[0].Values["microsteps"])
	}
	ratio, ok := sections[0].Values["gear_ratio"].([]any)
	if !ok || len(ratio) != 1 {
		t.Fatalf("gear_ratio = %v, want one pair", sections[0].Values["gear_ratio"])
	}
}

func TestConvertJSONCompact(t *testing.T) {
	out, err := Convert(parseSample(t), FormatJSON, formatter.Options{Compact: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(string(out), "\n") {
		t.Error("compact output should not contain newlines")
	}
}

func TestConvertYAML(t *testing.T) {
	out, err := Convert(parseSample(t), FormatYAML, formatter.Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	var sections []formatter.SectionDoc
	if err := yaml.Unmarshal(out, &sections); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(sections) != 2 || sections[1].Section != "mcu" {
		t.Fatalf("unexpected sections: %+v", sections)
	}
	if sections[1].Values["serial"] != "/dev/ttyACM1" {
		t.Errorf("serial = %v", sections[1].Values["serial"])
	}
}

func TestConvertTOML(t *testing.T) {
	out, err := Convert(parseSample(t), FormatTOML, formatter.Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "[[sections]]") {
		t.Errorf("missing array-of-tables header:\n%s", text)
	}
	if !strings.Contains(text, `section = "stepper_x"`) {
		t.Errorf("missing stepper_x entry:\n%s", text)
	}
}

func TestConvertCfgRoundTrip(t *testing.T) {
	out, err := Convert(parseSample(t), FormatCfg, formatter.Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	doc, err := cfg.Parse(string(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("round-trip lost sections: %d", doc.Len())
	}
	sec, err := doc.Section("mcu", "head")
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	serial, err := sec.Text("serial")
	if err != nil || serial != "/dev/ttyACM1" {
		t.Errorf("serial = %q, %v", serial, err)
	}
}

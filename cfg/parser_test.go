/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cfg_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gantry3d/gantry/cfg"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read testdata/%s: %v", name, err)
	}
	return string(data)
}

func parseValue(t *testing.T, line string) cfg.Value {
	t.Helper()
	doc, err := cfg.Parse("[printer]\n" + line + "\n")
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	sec, err := doc.Section("printer", "")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	if len(sec.Pairs()) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(sec.Pairs()))
	}
	return sec.Pairs()[0].Value
}

func TestParseMinimal(t *testing.T) {
	doc, err := cfg.Parse("[stepper_x]\nmicrosteps: 16\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Len() != 1 {
		t.Fatalf("expected 1 section, got %d", doc.Len())
	}
	sec, err := doc.Section("stepper_x", "")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	n, err := sec.Number("microsteps")
	if err != nil {
		t.Fatalf("microsteps: %v", err)
	}
	if n != 16 {
		t.Errorf("microsteps = %v, want 16", n)
	}
}

func TestValueAlternativeOrder(t *testing.T) {
	tests := []struct {
		name string
		line string
		want cfg.Value
	}{
		{"number", "microsteps: 16", cfg.Number(16)},
		{"number with comment", "microsteps: 16 ; full steps", cfg.Number(16)},
		{"number with hash comment", "microsteps: 16 # full steps", cfg.Number(16)},
		{"negative exponent", "shaper_freq: -1.5e-3", cfg.Number(-0.0015)},
		{"bare trailing dot", "position_max: 200.", cfg.Number(200)},
		{"fraction", "nozzle_diameter: 0.4", cfg.Number(0.4)},
		{"equals separator", "microsteps = 16", cfg.Number(16)},
		{"number array beats string array", "steps: 16, 1", cfg.NumberArray(16, 1)},
		{"number array", "offsets: 1,2", cfg.NumberArray(1, 2)},
		{"single ratio", "gear_ratio: 16:1", cfg.RatioValue(cfg.Ratio{Num: 16, Den: 1})},
		{"ratio with spaces", "gear_ratio: 16: 16 ; full steps", cfg.RatioValue(cfg.Ratio{Num: 16, Den: 16})},
		{"ratio train", "gear_ratio: 50:17, 17:17", cfg.RatioValue(cfg.Ratio{Num: 50, Den: 17}, cfg.Ratio{Num: 17, Den: 17})},
		{"pin string", "step_pin: PF0", cfg.String("PF0")},
		{"inverted pin stays opaque", "enable_pin: !PD7", cfg.String("!PD7")},
		{"pullup pin stays opaque", "endstop_pin: ^PE5", cfg.String("^PE5")},
		{"device path", "serial: /dev/ttyACM0", cfg.String("/dev/ttyACM0")},
		{"string with internal spaces", "sensor_type: EPCOS 100K B57560G104F", cfg.String("EPCOS 100K B57560G104F")},
		{"string with comment", "kinematics: cartesian ; cartesian gantry", cfg.String("cartesian")},
		{"leading zero is not a number", "code: 007", cfg.String("007")},
		{"numeric prefix junk is a string", "code: 16abc", cfg.String("16abc")},
		{"string array", "pins: PF0, PF1", cfg.StringArray("PF0", "PF1")},
		{"mixed list is a string array", "pins: PF0, 1", cfg.StringArray("PF0", "1")},
		{"empty value", "gcode:", cfg.String("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseValue(t, tt.line)
			if !got.Equal(tt.want) {
				t.Errorf("%q resolved to %s %q, want %s %q",
					tt.line, got.Kind(), got, tt.want.Kind(), tt.want)
			}
		})
	}
}

func TestMultilineNumberArray(t *testing.T) {
	text := "[bed_mesh]\npoints:\n" +
		"    0.1, 0.2, 0.3\n" +
		"    # middle row\n" +
		"    0.4, 0.5, 0.6\n" +
		"    0.7, 0.8, 0.9 ; back row\n"
	doc, err := cfg.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sec, err := doc.Section("bed_mesh", "")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	got, err := sec.NumberArray("points")
	if err != nil {
		t.Fatalf("points: %v", err)
	}
	want := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("points[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMultilineString(t *testing.T) {
	text := "[gcode_macro START_PRINT]\ngcode:\n" +
		"    G28 ; home all\n" +
		"    # heat up first\n" +
		"    M109 S210\n" +
		"    G1 Z5 F3000\n"
	doc, err := cfg.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sec, err := doc.Section("gcode_macro", "START_PRINT")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	got, err := sec.Text("gcode")
	if err != nil {
		t.Fatalf("gcode: %v", err)
	}
	want := "G28\nM109 S210\nG1 Z5 F3000"
	if got != want {
		t.Errorf("gcode = %q, want %q", got, want)
	}
}

func TestMultilineMixedContentIsString(t *testing.T) {
	// A numeric first continuation line must not split the block:
	// the remainder is inconsistent with a number array, so the whole
	// block resolves as one multiline string.
	text := "[gcode_macro PARK]\ngcode:\n    1, 2\n    G28\n"
	doc, err := cfg.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sec, err := doc.Section("gcode_macro", "PARK")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	got, err := sec.Text("gcode")
	if err != nil {
		t.Fatalf("gcode: %v", err)
	}
	if got != "1, 2\nG28" {
		t.Errorf("gcode = %q, want %q", got, "1, 2\nG28")
	}
}

func TestSyntaxErrorUnclosedHeader(t *testing.T) {
	_, err := cfg.Parse("[stepper_x\nstep_pin: PF0\n")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	var serr *cfg.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if serr.Pos.Line != 1 || serr.Pos.Col != 11 {
		t.Errorf("error at %s, want 1:11", serr.Pos)
	}
	if serr.Pos.Offset != 10 {
		t.Errorf("error offset = %d, want 10", serr.Pos.Offset)
	}
}

func TestSyntaxErrorLeadingGarbage(t *testing.T) {
	_, err := cfg.Parse("not a header\n")
	var serr *cfg.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if serr.Pos.Line != 1 || serr.Pos.Col != 1 {
		t.Errorf("error at %s, want 1:1", serr.Pos)
	}
}

func TestSyntaxErrorIndentedKey(t *testing.T) {
	_, err := cfg.Parse("[stepper_x]\nstep_pin: PF0\n    dir_pin: PF1\n")
	var serr *cfg.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if serr.Pos.Line != 3 {
		t.Errorf("error on line %d, want 3", serr.Pos.Line)
	}
}

func TestDuplicateKeyLastWins(t *testing.T) {
	doc, err := cfg.Parse("[stepper_x]\nmicrosteps: 16\nstep_pin: PF0\nmicrosteps: 32\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sec, err := doc.Section("stepper_x", "")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	n, err := sec.Number("microsteps")
	if err != nil {
		t.Fatalf("microsteps: %v", err)
	}
	if n != 32 {
		t.Errorf("microsteps = %v, want 32 (last assignment wins)", n)
	}
	// The pair keeps its first position.
	if got := sec.Pairs()[0].Key; got != "microsteps" {
		t.Errorf("first pair key = %q, want microsteps", got)
	}
	if len(sec.Pairs()) != 2 {
		t.Errorf("pair count = %d, want 2", len(sec.Pairs()))
	}
}

func TestDuplicateSectionLastWinsForLookup(t *testing.T) {
	doc, err := cfg.Parse("[mcu]\nserial: /dev/ttyACM0\n\n[mcu]\nserial: /dev/ttyACM1\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Len() != 2 {
		t.Fatalf("expected both sections retained, got %d", doc.Len())
	}
	sec, err := doc.Section("mcu", "")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	serial, err := sec.Text("serial")
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	if serial != "/dev/ttyACM1" {
		t.Errorf("serial = %q, want /dev/ttyACM1 (last declaration wins)", serial)
	}
}

func TestParseReferenceDocument(t *testing.T) {
	doc, err := cfg.Parse(readTestdata(t, "example-cartesian.cfg"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Len() != 7 {
		t.Fatalf("expected 7 sections, got %d", doc.Len())
	}

	var order []string
	for sec := range doc.Sections() {
		order = append(order, sec.Name())
	}
	want := []string{"stepper_x", "stepper_y", "stepper_z", "extruder", "heater_bed", "mcu", "printer"}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("section[%d] = %q, want %q", i, order[i], name)
		}
	}

	assertText := func(section, key, want string) {
		t.Helper()
		sec, err := doc.Section(section, "")
		if err != nil {
			t.Fatalf("[%s]: %v", section, err)
		}
		got, err := sec.Text(key)
		if err != nil {
			t.Fatalf("[%s] %s: %v", section, key, err)
		}
		if got != want {
			t.Errorf("[%s] %s = %q, want %q", section, key, got, want)
		}
	}
	assertNumber := func(section, key string, want float64) {
		t.Helper()
		sec, err := doc.Section(section, "")
		if err != nil {
			t.Fatalf("[%s]: %v", section, err)
		}
		got, err := sec.Number(key)
		if err != nil {
			t.Fatalf("[%s] %s: %v", section, key, err)
		}
		if got != want {
			t.Errorf("[%s] %s = %v, want %v", section, key, got, want)
		}
	}

	assertText("stepper_x", "step_pin", "PF0")
	assertText("stepper_x", "dir_pin", "PF1")
	assertText("mcu", "serial", "/dev/ttyACM0")
	assertNumber("extruder", "pid_Kp", 22.2)
	assertNumber("extruder", "microsteps", 16)
	assertNumber("printer", "max_velocity", 500)

	extruder, err := doc.Section("extruder", "")
	if err != nil {
		t.Fatalf("[extruder]: %v", err)
	}
	gears, err := extruder.Ratio("gear_ratio")
	if err != nil {
		t.Fatalf("gear_ratio: %v", err)
	}
	if len(gears) != 2 || gears[0] != (cfg.Ratio{Num: 50, Den: 17}) {
		t.Errorf("gear_ratio = %v, want [{50 17} {17 17}]", gears)
	}
}

func TestParseWithoutTrailingNewline(t *testing.T) {
	doc, err := cfg.Parse("[mcu]\nserial: /dev/ttyACM0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sec, err := doc.Section("mcu", "")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	serial, err := sec.Text("serial")
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	if serial != "/dev/ttyACM0" {
		t.Errorf("serial = %q", serial)
	}
}

func TestParseEmptyAndCommentOnly(t *testing.T) {
	for _, text := range []string{"", "\n\n", "# just a comment\n", "  \t\n# c\n\n"} {
		doc, err := cfg.Parse(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		if doc.Len() != 0 {
			t.Errorf("parse %q: expected empty document, got %d sections", text, doc.Len())
		}
	}
}

func TestSectionInstanceName(t *testing.T) {
	doc, err := cfg.Parse("[tmc2209 stepper_x]\nrun_current: 0.58\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sec, err := doc.Section("tmc2209", "stepper_x")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	if sec.Type != "tmc2209" || sec.Instance != "stepper_x" {
		t.Errorf("section = %q %q, want tmc2209 stepper_x", sec.Type, sec.Instance)
	}
	if _, err := doc.Section("tmc2209", ""); !errors.Is(err, cfg.ErrNotFound) {
		t.Errorf("lookup without instance: got %v, want ErrNotFound", err)
	}
}

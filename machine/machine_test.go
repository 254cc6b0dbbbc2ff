/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package machine_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/machine"
)

func parseFixture(t *testing.T) *cfg.Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "cfg", "testdata", "example-cartesian.cfg"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	doc, err := cfg.Parse(string(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestFromDocument(t *testing.T) {
	m, err := machine.FromDocument(parseFixture(t))
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}

	if m.Printer.Kinematics != "cartesian" {
		t.Errorf("kinematics = %q", m.Printer.Kinematics)
	}
	if m.Printer.MaxVelocity != 500 {
		t.Errorf("max velocity = %v, want 500", m.Printer.MaxVelocity)
	}

	if len(m.MCUs) != 1 {
		t.Fatalf("mcu count = %d, want 1", len(m.MCUs))
	}
	if m.MCUs[0].Serial != "/dev/ttyACM0" {
		t.Errorf("mcu serial = %q", m.MCUs[0].Serial)
	}
	if m.MCUs[0].Baud != 250000 {
		t.Errorf("mcu baud = %v, want default 250000", m.MCUs[0].Baud)
	}

	if len(m.Steppers) != 3 {
		t.Fatalf("stepper count = %d, want 3", len(m.Steppers))
	}
	x := m.Steppers[0]
	if x.Name != "stepper_x" || x.StepPin != "PF0" || x.DirPin != "PF1" {
		t.Errorf("stepper_x = %+v", x)
	}
	if x.EnablePin != "!PD7" {
		t.Errorf("enable_pin = %q, modifier prefix must be preserved", x.EnablePin)
	}
	if x.EndstopPin != "^PE5" {
		t.Errorf("endstop_pin = %q, modifier prefix must be preserved", x.EndstopPin)
	}

	if m.Extruder == nil {
		t.Fatal("extruder missing")
	}
	if m.Extruder.Control != "pid" || m.Extruder.PidKp != 22.2 {
		t.Errorf("extruder pid = %q Kp=%v", m.Extruder.Control, m.Extruder.PidKp)
	}
	if got := m.Extruder.GearRatio.Factor(); got != (50.0/17.0)*(17.0/17.0) {
		t.Errorf("gear factor = %v", got)
	}
	if m.Extruder.HomingSpeed != 5 {
		t.Errorf("homing speed = %v, want default 5", m.Extruder.HomingSpeed)
	}

	if m.HeaterBed == nil {
		t.Fatal("heater_bed missing")
	}
	if m.HeaterBed.Control != "watermark" || m.HeaterBed.MaxTemp != 130 {
		t.Errorf("heater_bed = %+v", m.HeaterBed)
	}
}

func TestFromDocumentMissingPrinterSection(t *testing.T) {
	doc, err := cfg.Parse("[mcu]\nserial: /dev/ttyACM0\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = machine.FromDocument(doc)
	if !errors.Is(err, cfg.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestFromDocumentWrongType(t *testing.T) {
	doc, err := cfg.Parse("[printer]\nkinematics: cartesian\nmax_velocity: fast\nmax_accel: 3000\n\n[mcu]\nserial: /dev/ttyACM0\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = machine.FromDocument(doc)
	if !errors.Is(err, cfg.ErrTypeMismatch) {
		t.Errorf("got %v, want ErrTypeMismatch", err)
	}
}

func TestFromDocumentSecondaryMCU(t *testing.T) {
	doc, err := cfg.Parse("[printer]\nkinematics: corexy\nmax_velocity: 300\nmax_accel: 3000\n\n[mcu]\nserial: /dev/ttyACM0\n\n[mcu head]\nserial: /dev/ttyACM1\nbaud: 115200\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := machine.FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if len(m.MCUs) != 2 {
		t.Fatalf("mcu count = %d, want 2", len(m.MCUs))
	}
	if m.MCUs[1].Name != "head" || m.MCUs[1].Baud != 115200 {
		t.Errorf("secondary mcu = %+v", m.MCUs[1])
	}
}

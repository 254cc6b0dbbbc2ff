/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package machine builds typed device views from a parsed
// configuration document. It is the consumption side of the cfg
// boundary: settings are pulled by section type, instance name and
// key, missing optional keys fall back to defaults, and wrongly typed
// keys fail the build. Pin specifiers stay opaque strings; no pin
// modifier syntax, unit conversion or plausibility checking happens
// here.
package machine

import (
	"errors"
	"fmt"

	"github.com/gantry3d/gantry/cfg"
)

// Stepper is the configuration of one stepper motor driver.
type Stepper struct {
	Name             string
	StepPin          string
	DirPin           string
	EnablePin        string
	Microsteps       float64
	RotationDistance float64
	GearRatio        cfg.Ratios
	EndstopPin       string
	PositionEndstop  float64
	PositionMax      float64
	HomingSpeed      float64
}

// Heater is the configuration of one heater and its sensor.
type Heater struct {
	HeaterPin  string
	SensorType string
	SensorPin  string
	Control    string
	PidKp      float64
	PidKi      float64
	PidKd      float64
	MinTemp    float64
	MaxTemp    float64
}

// Extruder couples a stepper, a heater and the filament geometry.
type Extruder struct {
	Stepper
	Heater
	NozzleDiameter   float64
	FilamentDiameter float64
}

// MCU is the binding to one microcontroller.
type MCU struct {
	// Name is the mcu section's instance name; empty for the primary.
	Name   string
	Serial string
	Baud   float64
}

// Printer holds the toplevel kinematics limits.
type Printer struct {
	Kinematics  string
	MaxVelocity float64
	MaxAccel    float64
}

// Machine is the full device view of one configuration document.
type Machine struct {
	Printer   Printer
	MCUs      []MCU
	Steppers  []Stepper
	Extruder  *Extruder
	HeaterBed *Heater
}

// stepperAxes are the section types tried when collecting steppers.
var stepperAxes = []string{"stepper_x", "stepper_y", "stepper_z"}

// FromDocument builds the device view for doc. Sections the document
// does not declare are left out of the result; required keys inside a
// declared section are build errors, as is any wrongly typed key.
func FromDocument(doc *cfg.Document) (*Machine, error) {
	m := &Machine{}

	printer, err := doc.Section("printer", "")
	if err != nil {
		return nil, fmt.Errorf("building machine: %w", err)
	}
	if m.Printer.Kinematics, err = printer.Text("kinematics"); err != nil {
		return nil, fmt.Errorf("building machine: %w", err)
	}
	if m.Printer.MaxVelocity, err = printer.Number("max_velocity"); err != nil {
		return nil, fmt.Errorf("building machine: %w", err)
	}
	if m.Printer.MaxAccel, err = printer.Number("max_accel"); err != nil {
		return nil, fmt.Errorf("building machine: %w", err)
	}

	for sec := range doc.Sections() {
		switch sec.Type {
		case "mcu":
			mcu, err := buildMCU(sec)
			if err != nil {
				return nil, err
			}
			m.MCUs = append(m.MCUs, mcu)
		case "extruder":
			ext, err := buildExtruder(sec)
			if err != nil {
				return nil, err
			}
			m.Extruder = ext
		case "heater_bed":
			bed, err := buildHeater(sec)
			if err != nil {
				return nil, err
			}
			m.HeaterBed = bed
		}
	}
	if len(m.MCUs) == 0 {
		return nil, fmt.Errorf("building machine: %w: [mcu]", cfg.ErrNotFound)
	}

	for _, axis := range stepperAxes {
		sec, err := doc.Section(axis, "")
		if errors.Is(err, cfg.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		st, err := buildStepper(sec)
		if err != nil {
			return nil, err
		}
		m.Steppers = append(m.Steppers, st)
	}

	return m, nil
}

func buildStepper(sec *cfg.Section) (Stepper, error) {
	st := Stepper{Name: sec.Name()}

	var err error
	if st.StepPin, err = sec.Text("step_pin"); err != nil {
		return Stepper{}, err
	}
	if st.DirPin, err = sec.Text("dir_pin"); err != nil {
		return Stepper{}, err
	}
	if st.Microsteps, err = sec.Number("microsteps"); err != nil {
		return Stepper{}, err
	}
	if st.RotationDistance, err = sec.Number("rotation_distance"); err != nil {
		return Stepper{}, err
	}

	if st.EnablePin, err = optionalText(sec, "enable_pin", ""); err != nil {
		return Stepper{}, err
	}
	if st.EndstopPin, err = optionalText(sec, "endstop_pin", ""); err != nil {
		return Stepper{}, err
	}
	if st.PositionEndstop, err = optionalNumber(sec, "position_endstop", 0); err != nil {
		return Stepper{}, err
	}
	if st.PositionMax, err = optionalNumber(sec, "position_max", 0); err != nil {
		return Stepper{}, err
	}
	if st.HomingSpeed, err = optionalNumber(sec, "homing_speed", 5); err != nil {
		return Stepper{}, err
	}
	if st.GearRatio, err = optionalRatio(sec, "gear_ratio"); err != nil {
		return Stepper{}, err
	}
	return st, nil
}

func buildHeater(sec *cfg.Section) (*Heater, error) {
	h := &Heater{}

	var err error
	if h.HeaterPin, err = sec.Text("heater_pin"); err != nil {
		return nil, err
	}
	if h.SensorType, err = sec.Text("sensor_type"); err != nil {
		return nil, err
	}
	if h.SensorPin, err = optionalText(sec, "sensor_pin", ""); err != nil {
		return nil, err
	}
	if h.Control, err = optionalText(sec, "control", "watermark"); err != nil {
		return nil, err
	}
	if h.MinTemp, err = sec.Number("min_temp"); err != nil {
		return nil, err
	}
	if h.MaxTemp, err = sec.Number("max_temp"); err != nil {
		return nil, err
	}

	if h.Control == "pid" {
		if h.PidKp, err = sec.Number("pid_Kp"); err != nil {
			return nil, err
		}
		if h.PidKi, err = sec.Number("pid_Ki"); err != nil {
			return nil, err
		}
		if h.PidKd, err = sec.Number("pid_Kd"); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func buildExtruder(sec *cfg.Section) (*Extruder, error) {
	st, err := buildStepper(sec)
	if err != nil {
		return nil, err
	}
	h, err := buildHeater(sec)
	if err != nil {
		return nil, err
	}

	ext := &Extruder{Stepper: st, Heater: *h}
	if ext.NozzleDiameter, err = sec.Number("nozzle_diameter"); err != nil {
		return nil, err
	}
	if ext.FilamentDiameter, err = sec.Number("filament_diameter"); err != nil {
		return nil, err
	}
	return ext, nil
}

func buildMCU(sec *cfg.Section) (MCU, error) {
	mcu := MCU{Name: sec.Instance}

	var err error
	if mcu.Serial, err = sec.Text("serial"); err != nil {
		return MCU{}, err
	}
	if mcu.Baud, err = optionalNumber(sec, "baud", 250000); err != nil {
		return MCU{}, err
	}
	return mcu, nil
}

// optionalNumber reads a numeric key, substituting def when the key
// is absent. A present key of the wrong type is still an error.
func optionalNumber(sec *cfg.Section, key string, def float64) (float64, error) {
	n, err := sec.Number(key)
	if errors.Is(err, cfg.ErrMissingKey) {
		return def, nil
	}
	return n, err
}

func optionalText(sec *cfg.Section, key, def string) (string, error) {
	s, err := sec.Text(key)
	if errors.Is(err, cfg.ErrMissingKey) {
		return def, nil
	}
	return s, err
}

func optionalRatio(sec *cfg.Section, key string) (cfg.Ratios, error) {
	rs, err := sec.Ratio(key)
	if errors.Is(err, cfg.ErrMissingKey) {
		return nil, nil
	}
	return rs, err
}

/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package gcode provides the gcode command for gantry.
package gcode

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	gcodelib "github.com/gantry3d/gantry/gcode"
)

// Cmd is the gcode cobra command.
var Cmd = &cobra.Command{
	Use:   "gcode [file]",
	Short: "Inspect a G-code file",
	Long:  `Inspect the metadata embedded in a sliced G-code file: slicer banner, thumbnails, filament usage and print time estimates.`,
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().Bool("config", false, "Show the slicer config trailer")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	showConfig, _ := cmd.Flags().GetBool("config")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("error opening %s: %w", args[0], err)
	}
	defer f.Close()

	file, err := gcodelib.Parse(f)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", args[0], err)
	}

	if format == "json" {
		return outputJSON(file, showConfig)
	}
	return outputText(file, showConfig)
}

func outputText(file *gcodelib.File, showConfig bool) error {
	if file.Slicer.Name != "" {
		fmt.Printf("Slicer:     %s %s\n", file.Slicer.Name, file.Slicer.Version)
		if file.Slicer.Date != "" {
			fmt.Printf("Sliced:     %s %s\n", file.Slicer.Date, file.Slicer.Time)
		}
	}
	fmt.Printf("Commands:   %d\n", len(file.Commands))
	for _, th := range file.Thumbnails {
		fmt.Printf("Thumbnail:  %dx%d (%d bytes)\n", th.Width, th.Height, len(th.Data))
	}
	if file.Meta.FilamentUsedMM > 0 {
		fmt.Printf("Filament:   %.1f mm", file.Meta.FilamentUsedMM)
		if file.Meta.FilamentUsedG > 0 {
			fmt.Printf(" (%.1f g)", file.Meta.FilamentUsedG)
		}
		fmt.Println()
	}
	if file.Meta.TotalLayers > 0 {
		fmt.Printf("Layers:     %d\n", file.Meta.TotalLayers)
	}
	if file.Meta.EstimatedSeconds > 0 {
		fmt.Printf("Est. time:  %s\n", time.Duration(file.Meta.EstimatedSeconds)*time.Second)
	}
	if showConfig {
		for _, kv := range file.Config {
			fmt.Printf("  %s = %s\n", kv.Key, kv.Value)
		}
	}
	return nil
}

func outputJSON(file *gcodelib.File, showConfig bool) error {
	type thumbOutput struct {
		Width  int `json:"width"`
		Height int `json:"height"`
		Bytes  int `json:"bytes"`
	}
	type output struct {
		Slicer     gcodelib.SlicerInfo `json:"slicer"`
		Commands   int                 `json:"commands"`
		Thumbnails []thumbOutput       `json:"thumbnails,omitempty"`
		Meta       gcodelib.Meta       `json:"meta"`
		Config     []gcodelib.KeyValue `json:"config,omitempty"`
	}

	out := output{
		Slicer:   file.Slicer,
		Commands: len(file.Commands),
		Meta:     file.Meta,
	}
	for _, th := range file.Thumbnails {
		out.Thumbnails = append(out.Thumbnails, thumbOutput{Width: th.Width, Height: th.Height, Bytes: len(th.Data)})
	}
	if showConfig {
		out.Config = file.Config
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

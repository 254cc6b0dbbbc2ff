/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert provides the convert command for gantry.
package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	convertlib "github.com/gantry3d/gantry/convert"
	"github.com/gantry3d/gantry/convert/formatter"
	"github.com/gantry3d/gantry/fs"
	"github.com/gantry3d/gantry/load"
)

// Cmd is the convert cobra command.
var Cmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert printer config files to other formats",
	Long: `Convert a printer config file to a structured format.

Output Formats:
  json  JSON array of sections (default)
  yaml  YAML sequence of sections
  toml  TOML array of tables
  cfg   Normalized config syntax, comments dropped

Examples:
  # Print a config as JSON
  gantry convert printer.cfg

  # Write a YAML copy next to the original
  gantry convert --format yaml -o printer.yaml printer.cfg

  # Normalize formatting in place
  gantry convert --format cfg -o printer.cfg printer.cfg`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().StringP("format", "f", "json", "Output format: "+strings.Join(convertlib.ValidFormats(), ", "))
	Cmd.Flags().Bool("compact", false, "Compact output (json only)")
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")
	compact, _ := cmd.Flags().GetBool("compact")

	format, err := convertlib.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	filesystem := fs.NewOSFileSystem()
	inst, err := load.One(args[0], filesystem)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", args[0], err)
	}

	out, err := convertlib.Convert(inst.Doc, format, formatter.Options{Compact: compact})
	if err != nil {
		return fmt.Errorf("error converting %s: %w", args[0], err)
	}

	if output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := filesystem.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", output, err)
	}
	return nil
}

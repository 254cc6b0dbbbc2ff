/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides the version command for gantry.
package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gantry3d/gantry/internal/version"
)

// Cmd is the version cobra command that prints version and build information.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for gantry.`,
	RunE:  run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}

func run(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}
	out, err := render(format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// render produces the version output in the requested format. Unknown
// formats are rejected, matching the format validation of the other
// subcommands.
func render(format string) (string, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(version.Info(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("error marshaling version info: %w", err)
		}
		return string(out), nil
	case "text":
		return fmt.Sprintf("gantry %s", version.Get()), nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: text, json)", format)
	}
}

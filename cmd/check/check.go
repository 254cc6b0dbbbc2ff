/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for gantry.
package check

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gantry3d/gantry/cfg"
	"github.com/gantry3d/gantry/config"
	"github.com/gantry3d/gantry/fs"
	"github.com/gantry3d/gantry/load"
	"github.com/gantry3d/gantry/machine"
	"github.com/gantry3d/gantry/validator"
)

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check printer config files",
	Long:  `Check printer config files for syntax errors and common mistakes.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail on lint warnings")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().Bool("machine", false, "Also assemble the machine model")
}

func run(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("quiet")
	buildMachine, _ := cmd.Flags().GetBool("machine")
	root := viper.GetString("root")

	filesystem := fs.NewOSFileSystem()

	// Use config instances if no args provided
	files := args
	if len(files) == 0 {
		hostCfg := config.LoadOrDefault(filesystem, root)
		specs, err := hostCfg.ExpandInstances(filesystem, root)
		if err != nil {
			return fmt.Errorf("error expanding config instances: %w", err)
		}
		for _, spec := range specs {
			files = append(files, spec.Path)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no files specified and no instances found in config")
	}

	hasErrors := false
	hasWarnings := false

	for _, file := range files {
		if !quiet {
			fmt.Printf("Checking %s...\n", file)
		}

		inst, err := load.One(file, filesystem)
		if err != nil {
			var synErr *cfg.SyntaxError
			if errors.As(err, &synErr) {
				fmt.Fprintf(os.Stderr, "%s:%s\n", file, synErr)
			} else {
				fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			}
			hasErrors = true
			continue
		}

		issues := validator.ValidateWithPath(inst.Doc, file)
		for _, issue := range issues {
			fmt.Fprintln(os.Stderr, issue)
		}
		if len(issues) > 0 {
			hasWarnings = true
		}

		if buildMachine {
			if _, err := machine.FromDocument(inst.Doc); err != nil {
				fmt.Fprintf(os.Stderr, "Machine model error in %s: %v\n", file, err)
				hasErrors = true
				continue
			}
		}

		if !quiet {
			fmt.Printf("  %d sections, %d warnings\n", inst.Doc.Len(), len(issues))
		}
	}

	if hasErrors || (strict && hasWarnings) {
		return fmt.Errorf("check failed")
	}

	if !quiet {
		fmt.Println("All files OK.")
	}
	return nil
}

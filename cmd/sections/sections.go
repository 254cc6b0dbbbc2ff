/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package sections provides the sections command for gantry.
package sections

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gantry3d/gantry/cfg"
	convertlib "github.com/gantry3d/gantry/convert"
	"github.com/gantry3d/gantry/convert/formatter"
	"github.com/gantry3d/gantry/fs"
	"github.com/gantry3d/gantry/load"
)

// Cmd is the sections cobra command.
var Cmd = &cobra.Command{
	Use:   "sections [files...]",
	Short: "List sections from printer config files",
	Long:  `List the sections of printer config files with optional filtering and formatting.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().String("type", "", "Filter by section type")
	Cmd.Flags().String("format", "table", "Output format: table, json, yaml")
	Cmd.Flags().Bool("values", false, "Show key/value pairs in table output")
}

func run(cmd *cobra.Command, args []string) error {
	typeFilter, _ := cmd.Flags().GetString("type")
	format, _ := cmd.Flags().GetString("format")
	showValues, _ := cmd.Flags().GetBool("values")

	filesystem := fs.NewOSFileSystem()

	var all []*cfg.Section
	for _, file := range args {
		inst, err := load.One(file, filesystem)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", file, err)
			continue
		}
		for sec := range inst.Doc.Sections() {
			all = append(all, sec)
		}
	}
	all = filterSections(all, typeFilter)

	switch format {
	case "json", "yaml":
		return outputStructured(all, format)
	default:
		return outputTable(all, showValues)
	}
}

func filterSections(sections []*cfg.Section, typeFilter string) []*cfg.Section {
	if typeFilter == "" {
		return sections
	}
	filtered := make([]*cfg.Section, 0, len(sections))
	for _, sec := range sections {
		if sec.Type == typeFilter {
			filtered = append(filtered, sec)
		}
	}
	return filtered
}

func outputTable(sections []*cfg.Section, showValues bool) error {
	for _, sec := range sections {
		fmt.Printf("%-30s %d keys\n", sec.Name(), len(sec.Pairs()))
		if !showValues {
			continue
		}
		for _, kv := range sec.Pairs() {
			fmt.Printf("  %-28s %s\n", kv.Key, kv.Value.String())
		}
	}
	return nil
}

func outputStructured(sections []*cfg.Section, format string) error {
	doc := cfg.NewDocument(sections)
	out, err := convertlib.Convert(doc, convertlib.Format(format), formatter.Options{})
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

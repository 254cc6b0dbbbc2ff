/*
Copyright 2026 The Gantry Authors. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for gantry.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gantry3d/gantry/cmd/check"
	"github.com/gantry3d/gantry/cmd/convert"
	"github.com/gantry3d/gantry/cmd/gcode"
	"github.com/gantry3d/gantry/cmd/sections"
	"github.com/gantry3d/gantry/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "gantry",
	Short: "Parse and work with 3D printer host configuration",
	Long:  `gantry parses, validates and converts printer host configuration files, and inspects the G-code files printers consume.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("root", "r", ".", "Workspace root containing .config/gantry.{yaml,json}")
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.SetEnvPrefix("GANTRY")
	viper.AutomaticEnv()

	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(gcode.Cmd)
	rootCmd.AddCommand(sections.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

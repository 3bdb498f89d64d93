// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gizitrack/gizitrack/internal/buildinfo"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gizitrack",
		Short: "Local-first nutrition coaching service",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file or directory")

	rootCmd.AddCommand(RunServeCommand(&configPath))
	rootCmd.AddCommand(RunDBCommand(&configPath))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(buildinfo.String())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

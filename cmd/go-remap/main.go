// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-remap rewrites the symbolic references of JVM method bodies
// stored in a YAML dump.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "go-remap",
		Short:         "Remap JVM method bodies through a renaming table",
		Long:          "go-remap resolves every field and method reference of a method body against the original declarations and rewrites it with new names from a mapping file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().StringP("mapping", "m", "", "Mapping file (YAML)")
	rootCmd.PersistentFlags().Int("workers", 0, "Bodies remapped concurrently (0 means GOMAXPROCS)")
	rootCmd.PersistentFlags().Bool("fail-fast", true, "Abort the batch on the first failing body")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	// Bind flags to viper.
	for _, name := range []string{"mapping", "workers", "fail-fast", "log-level", "log-format"} {
		v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Env vars: GO_REMAP_MAPPING, GO_REMAP_FAIL_FAST, etc.
	v.SetEnvPrefix("GO_REMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Config file.
	v.SetConfigName(".go-remap")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newRemapCmd(v))
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-remap version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "go-remap %s\n", version)
		},
	}
}

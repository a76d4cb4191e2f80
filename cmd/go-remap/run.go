// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-remap/internal/bodyio"
	"github.com/petar-djukic/go-remap/internal/rename"
	"github.com/petar-djukic/go-remap/pkg/remapper"
	"github.com/petar-djukic/go-remap/pkg/types"
)

// newRemapCmd creates the "remap" command.
func newRemapCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remap [flags] DUMP",
		Short: "Remap every body of a dump",
		Long:  "Remap rewrites the bodies, headers and declarations of a dump with the names from the mapping file. The result goes to --output, or to stdout when neither --output nor --diff is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemap(cmd, v, args[0])
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write the remapped dump to this file")
	cmd.Flags().Bool("diff", false, "Print a listing diff of every changed body")

	return cmd
}

// runRemap executes the remap command.
func runRemap(cmd *cobra.Command, v *viper.Viper, path string) error {
	output, _ := cmd.Flags().GetString("output")
	showDiff, _ := cmd.Flags().GetBool("diff")

	mapping := v.GetString("mapping")
	if mapping == "" {
		return errors.New("a mapping file is required (--mapping or GO_REMAP_MAPPING)")
	}
	log, err := newLogger(cmd.ErrOrStderr(), v.GetString("log-level"), v.GetString("log-format"))
	if err != nil {
		return err
	}

	dump, err := bodyio.ReadFile(path)
	if err != nil {
		return err
	}

	r, err := remapper.New(remapper.Config{
		Fields:      dump.Fields,
		Methods:     dump.Methods,
		MappingFile: mapping,
		Workers:     v.GetInt("workers"),
		SkipFailed:  !v.GetBool("fail-fast"),
		Headers:     true,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	result, err := r.Remap(ctx, dump.Bodies)
	if err != nil {
		return err
	}
	for _, f := range result.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", f)
	}

	fields, methods, err := r.Declarations()
	if err != nil {
		return err
	}
	out := &bodyio.Dump{Fields: fields, Methods: methods, Bodies: result.Bodies}

	if showDiff {
		printDiffs(cmd.OutOrStdout(), dump.Bodies, result)
	}
	switch {
	case output != "":
		if err := bodyio.WriteFile(output, out); err != nil {
			return err
		}
		log.Info("dump written", "path", output, "bodies", len(out.Bodies))
	case !showDiff:
		return bodyio.Encode(cmd.OutOrStdout(), out)
	}
	return nil
}

// printDiffs writes the listing diff of each remapped body against its
// original. Skipped bodies have no counterpart and are left out.
func printDiffs(w io.Writer, before []types.MethodBody, result *remapper.Result) {
	failed := make(map[int]bool, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.Index] = true
	}
	next := 0
	for i, b := range before {
		if failed[i] {
			continue
		}
		after := result.Bodies[next]
		next++
		if d := bodyio.Diff(bodyio.Listing(b), bodyio.Listing(after)); d != "" {
			fmt.Fprint(w, d)
		}
	}
}

// newCheckCmd creates the "check" command.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check DUMP",
		Short: "Report references with no declaration",
		Long:  "Check resolves every field and method reference of the dump's bodies against its declarations and prints each one that is missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, err := bodyio.ReadFile(args[0])
			if err != nil {
				return err
			}
			r, err := remapper.New(remapper.Config{
				Fields:  dump.Fields,
				Methods: dump.Methods,
				Renamer: rename.NewTable(),
			})
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}

			errs := r.Check(dump.Bodies)
			for _, e := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d unresolved references", len(errs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d bodies, %d references resolved\n", len(dump.Bodies), countReferences(dump.Bodies))
			return nil
		},
	}
}

func countReferences(bodies []types.MethodBody) int {
	n := 0
	for _, b := range bodies {
		for _, ev := range b.Events {
			switch ev.(type) {
			case types.FieldInsn, types.MethodInsn:
				n++
			}
		}
	}
	return n
}

// newListCmd creates the "list" command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list DUMP",
		Short: "Print the bodies of a dump as listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, err := bodyio.ReadFile(args[0])
			if err != nil {
				return err
			}
			for i, b := range dump.Bodies {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprint(cmd.OutOrStdout(), bodyio.Listing(b))
			}
			return nil
		},
	}
}

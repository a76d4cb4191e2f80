// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package remapper defines the public interface for go-remap, a library
// that rewrites the symbolic references of JVM method bodies through a
// renaming table.
package remapper

import (
	"context"
	"errors"
	"log/slog"

	"github.com/petar-djukic/go-remap/internal/rename"
	"github.com/petar-djukic/go-remap/internal/session"
	"github.com/petar-djukic/go-remap/internal/symtab"
	"github.com/petar-djukic/go-remap/pkg/types"
)

// Error types for the Remapper API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrMapping       = errors.New("failed to load mapping")
	ErrRemapFailure  = errors.New("remap failed")

	// ErrNoDeclaration matches every LookupError.
	ErrNoDeclaration = symtab.ErrNoDeclaration
)

// Renamer decides new names and descriptors. See LoadMapping for the
// table-driven implementation.
type Renamer = rename.Renamer

// LookupError reports a field or method reference with no declaration
// among the original declarations.
type LookupError = symtab.LookupError

// BodyError reports the failure of one body in a batch.
type BodyError = session.BodyError

// Config configures a Remapper instance.
type Config struct {
	Fields      []types.Declaration // Field declarations of the original binary
	Methods     []types.Declaration // Method declarations of the original binary
	Renamer     Renamer             // Renaming capability; overrides MappingFile
	MappingFile string              // YAML mapping loaded when Renamer is nil
	Workers     int                 // Bodies remapped concurrently (default GOMAXPROCS)
	SkipFailed  bool                // Drop failing bodies instead of aborting the batch
	Headers     bool                // Also rename each body's owner, name and descriptor
	Logger      *slog.Logger        // Structured logger (default discards)
}

// Result holds the outcome of a Remapper.Remap invocation.
type Result struct {
	Bodies []types.MethodBody // Remapped bodies, in input order
	Failed []*BodyError       // Bodies dropped because SkipFailed was set
}

// Remapper rewrites method bodies.
type Remapper interface {
	// Remap remaps a batch of bodies concurrently. Without SkipFailed the
	// first failure aborts the batch and is returned wrapped in
	// ErrRemapFailure.
	Remap(ctx context.Context, bodies []types.MethodBody) (*Result, error)

	// RemapBody remaps a single body. It either succeeds completely or
	// returns an error and no events. The header is renamed only when
	// Config.Headers is set.
	RemapBody(body types.MethodBody) (types.MethodBody, error)

	// Check resolves every field and method reference of bodies against
	// the declarations and reports each one that is missing.
	Check(bodies []types.MethodBody) []*BodyError

	// Declarations renames the configured field and method declarations so
	// that they match the references of remapped bodies.
	Declarations() (fields, methods []types.Declaration, err error)
}

// LoadMapping reads a YAML mapping file into a Renamer.
func LoadMapping(path string) (Renamer, error) {
	tbl, err := rename.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package remapper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/petar-djukic/go-remap/internal/remap"
	"github.com/petar-djukic/go-remap/internal/rename"
	"github.com/petar-djukic/go-remap/internal/session"
	"github.com/petar-djukic/go-remap/internal/symtab"
	"github.com/petar-djukic/go-remap/pkg/types"
)

// New validates the config, freezes the declarations into a symbol table,
// loads the mapping if needed, and returns a ready-to-use Remapper.
func New(cfg Config) (Remapper, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	if cfg.Renamer == nil {
		tbl, err := rename.LoadFile(cfg.MappingFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMapping, err)
		}
		cfg.Renamer = tbl
	}

	b := symtab.NewBuilder()
	for _, f := range cfg.Fields {
		b.AddField(f)
	}
	for _, m := range cfg.Methods {
		b.AddMethod(m)
	}
	symbols := b.Freeze()
	for _, p := range []types.Partition{types.Fields, types.Methods} {
		for _, d := range symbols.Duplicates(p) {
			cfg.Logger.Warn("duplicate declaration, first one wins",
				"kind", p.String(), "owner", d.Owner, "name", d.Name, "desc", d.Desc)
		}
	}

	core := remap.New(symbols, cfg.Renamer)
	var body session.BodyRemapper = core
	if cfg.Headers {
		body = headerRemapper{core}
	}
	runner := session.NewRunner(session.Deps{
		Remapper: body,
		Workers:  cfg.Workers,
		FailFast: !cfg.SkipFailed,
		Logger:   cfg.Logger,
	})

	return &remapperAdapter{symbols: symbols, core: core, body: body, runner: runner}, nil
}

// headerRemapper renames the body header as a method declaration after
// remapping its events.
type headerRemapper struct {
	core *remap.Remapper
}

func (h headerRemapper) RemapBody(body types.MethodBody) (types.MethodBody, error) {
	out, err := h.core.RemapBody(body)
	if err != nil {
		return types.MethodBody{}, err
	}
	d, err := h.core.Declaration(types.Methods, types.Declaration{Owner: body.Owner, Name: body.Name, Desc: body.Desc, Access: body.Access})
	if err != nil {
		return types.MethodBody{}, fmt.Errorf("renaming header: %w", err)
	}
	out.Owner, out.Name, out.Desc = d.Owner, d.Name, d.Desc
	return out, nil
}

// remapperAdapter adapts internal/session.Runner to the public Remapper
// interface.
type remapperAdapter struct {
	symbols *symtab.Table
	core    *remap.Remapper
	body    session.BodyRemapper
	runner  *session.Runner
}

func (a *remapperAdapter) Remap(ctx context.Context, bodies []types.MethodBody) (*Result, error) {
	rr, err := a.runner.Run(ctx, bodies)
	if err != nil {
		if ctx.Err() != nil {
			return &Result{}, err
		}
		return &Result{}, fmt.Errorf("%w: %w", ErrRemapFailure, err)
	}
	return &Result{Bodies: rr.Bodies, Failed: rr.Failed}, nil
}

func (a *remapperAdapter) RemapBody(body types.MethodBody) (types.MethodBody, error) {
	return a.body.RemapBody(body)
}

func (a *remapperAdapter) Check(bodies []types.MethodBody) []*BodyError {
	var out []*BodyError
	for i, b := range bodies {
		for _, err := range remap.Unresolved(a.symbols, b.Events) {
			out = append(out, &BodyError{Owner: b.Owner, Name: b.Name, Desc: b.Desc, Index: i, Err: err})
		}
	}
	return out
}

func (a *remapperAdapter) Declarations() ([]types.Declaration, []types.Declaration, error) {
	fields, err := a.core.Declarations(types.Fields, a.symbols.All(types.Fields))
	if err != nil {
		return nil, nil, err
	}
	methods, err := a.core.Declarations(types.Methods, a.symbols.All(types.Methods))
	if err != nil {
		return nil, nil, err
	}
	return fields, methods, nil
}

// validateConfig checks that required fields are present.
func validateConfig(cfg Config) error {
	if cfg.Renamer == nil && cfg.MappingFile == "" {
		return fmt.Errorf("either Renamer or MappingFile is required")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("Workers must not be negative, got %d", cfg.Workers)
	}
	for i, d := range cfg.Fields {
		if d.Owner == "" || d.Name == "" || d.Desc == "" {
			return fmt.Errorf("field declaration %d is incomplete", i)
		}
	}
	for i, d := range cfg.Methods {
		if d.Owner == "" || d.Name == "" || d.Desc == "" {
			return fmt.Errorf("method declaration %d is incomplete", i)
		}
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

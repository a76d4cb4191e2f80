// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package session remaps a batch of method bodies concurrently, sharing
// one frozen symbol table and one renamer across workers.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/petar-djukic/go-remap/pkg/types"
)

// BodyRemapper abstracts the per-body transform so the runner is testable.
// *remap.Remapper satisfies it.
type BodyRemapper interface {
	RemapBody(body types.MethodBody) (types.MethodBody, error)
}

// BodyError reports the failure of one body in a batch.
type BodyError struct {
	Owner string
	Name  string
	Desc  string
	Index int // Position of the body in the input batch
	Err   error
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d (%s.%s %s): %v", e.Index, e.Owner, e.Name, e.Desc, e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }

// RunResult holds the outcome of a Runner.Run invocation. This is the
// internal result type; pkg/remapper converts it to the public Result.
type RunResult struct {
	Bodies []types.MethodBody // Remapped bodies in input order
	Failed []*BodyError       // Skipped bodies, in input order; empty in fail-fast mode
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Remapper BodyRemapper
	Workers  int          // Maximum concurrent bodies; <= 0 means GOMAXPROCS
	FailFast bool         // Abort the batch on the first failure
	Logger   *slog.Logger // nil discards
}

// Runner remaps batches of method bodies.
type Runner struct {
	deps Deps
	log  *slog.Logger
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Workers <= 0 {
		deps.Workers = runtime.GOMAXPROCS(0)
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{deps: deps, log: log}
}

// Run remaps bodies with at most Workers in flight. In fail-fast mode the
// first failure cancels the remaining bodies and is returned as a
// *BodyError. Otherwise failed bodies are left out of the result and
// listed in RunResult.Failed. Cancelling ctx stops new bodies from
// starting and Run returns ctx.Err().
func (r *Runner) Run(ctx context.Context, bodies []types.MethodBody) (*RunResult, error) {
	out := make([]types.MethodBody, len(bodies))
	failed := make([]*BodyError, len(bodies))

	p := pool.New().WithMaxGoroutines(r.deps.Workers).WithContext(ctx)
	if r.deps.FailFast {
		p = p.WithCancelOnError().WithFirstError()
	}

	for i := range bodies {
		if ctx.Err() != nil {
			break
		}
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			body := bodies[i]
			remapped, err := r.deps.Remapper.RemapBody(body)
			if err != nil {
				bodyErr := &BodyError{Owner: body.Owner, Name: body.Name, Desc: body.Desc, Index: i, Err: err}
				r.log.Warn("remap failed",
					"owner", body.Owner, "name", body.Name, "desc", body.Desc,
					"index", i, "error", err)
				if r.deps.FailFast {
					return bodyErr
				}
				failed[i] = bodyErr
				return nil
			}
			out[i] = remapped
			return nil
		})
	}
	err := p.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		var bodyErr *BodyError
		if errors.As(err, &bodyErr) {
			return nil, bodyErr
		}
		return nil, err
	}

	result := &RunResult{Bodies: make([]types.MethodBody, 0, len(bodies))}
	for i := range bodies {
		if failed[i] != nil {
			result.Failed = append(result.Failed, failed[i])
			continue
		}
		result.Bodies = append(result.Bodies, out[i])
	}
	r.log.Debug("batch remapped",
		"bodies", len(bodies), "remapped", len(result.Bodies),
		"failed", len(result.Failed), "workers", r.deps.Workers)
	return result, nil
}

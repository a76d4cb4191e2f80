// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package symtab holds the index of field and method declarations taken
// from the original (pre-mapping) binary. A Table is built once through a
// Builder and is read-only afterward, so any number of goroutines may
// query it concurrently.
package symtab

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/go-remap/pkg/types"
)

// ErrNoDeclaration is matched by every LookupError.
var ErrNoDeclaration = errors.New("no declaration")

// LookupError reports a member reference with no matching declaration.
// The table was built from data inconsistent with the body being
// transformed, so the condition is not recoverable.
type LookupError struct {
	Partition types.Partition
	Owner     string
	Name      string
	Desc      string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no reverse lookup for %s %s %s %s", e.Partition, e.Owner, e.Name, e.Desc)
}

// Is reports ErrNoDeclaration as a match so callers can use errors.Is.
func (e *LookupError) Is(target error) bool {
	return target == ErrNoDeclaration
}

type key struct {
	owner, name, desc string
}

// Table is a frozen, two-partition declaration index.
type Table struct {
	decls [2][]types.Declaration
	index [2]map[key]int
}

// Builder accumulates declarations for a Table. A Builder is not safe for
// concurrent use.
type Builder struct {
	t      *Table
	frozen bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{t: &Table{
		index: [2]map[key]int{make(map[key]int), make(map[key]int)},
	}}
}

// Add appends a declaration to partition p. When a triple is added more
// than once, the first declaration stays the one Find returns; later
// ones are kept for All but never resolved.
func (b *Builder) Add(p types.Partition, d types.Declaration) {
	if b.frozen {
		panic("symtab: Add after Freeze")
	}
	t := b.t
	idx := len(t.decls[p])
	t.decls[p] = append(t.decls[p], d)
	k := key{d.Owner, d.Name, d.Desc}
	if _, dup := t.index[p][k]; !dup {
		t.index[p][k] = idx
	}
}

// AddField is shorthand for Add(types.Fields, d).
func (b *Builder) AddField(d types.Declaration) { b.Add(types.Fields, d) }

// AddMethod is shorthand for Add(types.Methods, d).
func (b *Builder) AddMethod(d types.Declaration) { b.Add(types.Methods, d) }

// Freeze returns the built Table. The Builder must not be used afterward.
func (b *Builder) Freeze() *Table {
	b.frozen = true
	return b.t
}

// Find returns the first declaration in partition p matching the exact
// (owner, name, desc) triple, or a *LookupError naming the triple.
func (t *Table) Find(p types.Partition, owner, name, desc string) (types.Declaration, error) {
	if idx, ok := t.index[p][key{owner, name, desc}]; ok {
		return t.decls[p][idx], nil
	}
	return types.Declaration{}, &LookupError{Partition: p, Owner: owner, Name: name, Desc: desc}
}

// All returns every declaration of partition p in insertion order.
func (t *Table) All(p types.Partition) []types.Declaration {
	result := make([]types.Declaration, len(t.decls[p]))
	copy(result, t.decls[p])
	return result
}

// Len returns the number of declarations in partition p.
func (t *Table) Len(p types.Partition) int {
	return len(t.decls[p])
}

// Duplicates returns the declarations shadowed by an earlier entry with
// the same triple.
func (t *Table) Duplicates(p types.Partition) []types.Declaration {
	var dups []types.Declaration
	for i, d := range t.decls[p] {
		if t.index[p][key{d.Owner, d.Name, d.Desc}] != i {
			dups = append(dups, d)
		}
	}
	return dups
}

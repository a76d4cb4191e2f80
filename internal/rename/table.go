// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rename

import (
	"strings"
	"sync"

	"github.com/petar-djukic/go-remap/pkg/types"
)

// Inheritance supplies the direct supertypes of a class.
type Inheritance interface {
	Parents(owner string) []string
}

// InheritanceFunc adapts a function to Inheritance.
type InheritanceFunc func(owner string) []string

// Parents calls f(owner).
func (f InheritanceFunc) Parents(owner string) []string { return f(owner) }

type fieldKey struct{ owner, name string }

type methodKey struct{ owner, name, desc string }

// Table is a Renamer backed by explicit class, package, field and method
// mappings. Populate it before use; once remapping starts, only the
// inheritance cache changes, and that is guarded by a mutex.
//
// A member without its own entry inherits one from a supertype, unless
// its declaration is private or static.
type Table struct {
	classes  map[string]string
	packages map[string]string
	fields   map[fieldKey]string
	methods  map[methodKey]string
	parents  map[string][]string
	fallback Inheritance

	mu    sync.RWMutex
	cache map[string][]string
}

var _ Renamer = (*Table)(nil)

// NewTable returns an empty Table. An empty Table is the identity renamer.
func NewTable() *Table {
	return &Table{
		classes:  make(map[string]string),
		packages: make(map[string]string),
		fields:   make(map[fieldKey]string),
		methods:  make(map[methodKey]string),
		parents:  make(map[string][]string),
		cache:    make(map[string][]string),
	}
}

// MapClass renames class oldName to newName (internal names).
func (t *Table) MapClass(oldName, newName string) { t.classes[oldName] = newName }

// MapPackage moves every class in package oldPkg (and its subpackages
// without a closer entry) to newPkg. Both are slash-separated; a trailing
// slash is optional and "" is the default package.
func (t *Table) MapPackage(oldPkg, newPkg string) {
	t.packages[withSlash(oldPkg)] = withSlash(newPkg)
}

// MapField renames field name declared on owner.
func (t *Table) MapField(owner, name, newName string) {
	t.fields[fieldKey{owner, name}] = newName
}

// MapMethod renames method name with descriptor desc declared on owner.
func (t *Table) MapMethod(owner, name, desc, newName string) {
	t.methods[methodKey{owner, name, desc}] = newName
}

// SetParents records the direct supertypes of owner.
func (t *Table) SetParents(owner string, parents ...string) {
	t.parents[owner] = append([]string(nil), parents...)
}

// SetFallback sets the provider consulted for classes without recorded
// parents. Its answers are cached.
func (t *Table) SetFallback(inh Inheritance) { t.fallback = inh }

// MapType maps an internal class name. Array descriptors are mapped
// element-wise; inner classes follow their outer class; otherwise the
// closest package entry applies.
func (t *Table) MapType(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if name[0] == '[' {
		return t.MapDesc(name)
	}
	return t.mapClass(name), nil
}

func (t *Table) mapClass(name string) string {
	if mapped, ok := t.classes[name]; ok {
		return mapped
	}
	if i := strings.LastIndexByte(name, '$'); i > 0 {
		if outer := t.mapClass(name[:i]); outer != name[:i] {
			return outer + name[i:]
		}
	}
	pkg := packageOf(name)
	if pkg == "" {
		if mapped, ok := t.packages[""]; ok {
			return mapped + name
		}
		return name
	}
	for ; pkg != ""; pkg = parentPackage(pkg) {
		if mapped, ok := t.packages[pkg]; ok {
			return mapped + name[len(pkg):]
		}
	}
	return name
}

// MapDesc maps the class names in a field descriptor.
func (t *Table) MapDesc(desc string) (string, error) {
	return MapDesc(desc, t.MapType)
}

// MapMethodDesc maps the class names in a method descriptor.
func (t *Table) MapMethodDesc(desc string) (string, error) {
	return MapMethodDesc(desc, t.MapType)
}

// MapFieldName returns the new name of a field, or name if unmapped.
func (t *Table) MapFieldName(owner, name, desc string, access types.Access) (string, error) {
	mapped, ok := climb(t, owner, access, func(o string) (string, bool) {
		m, ok := t.fields[fieldKey{o, name}]
		return m, ok
	})
	if !ok {
		return name, nil
	}
	return mapped, nil
}

// MapMethodName returns the new name of a method, or name if unmapped.
func (t *Table) MapMethodName(owner, name, desc string, access types.Access) (string, error) {
	mapped, ok := climb(t, owner, access, func(o string) (string, bool) {
		m, ok := t.methods[methodKey{o, name, desc}]
		return m, ok
	})
	if !ok {
		return name, nil
	}
	return mapped, nil
}

// MapInvokeDynamicMethodName returns name unchanged.
func (t *Table) MapInvokeDynamicMethodName(name, desc string) (string, error) {
	return name, nil
}

// MapValue maps type, handle and dynamic constants.
func (t *Table) MapValue(v types.Value) (types.Value, error) {
	return MapValue(t, v)
}

// MapSignature maps the class names in a generic signature.
func (t *Table) MapSignature(sig string, isField bool) (string, error) {
	return MapSignature(sig, isField, t.MapType)
}

// climb looks up owner and then, for inheritable members, its
// supertypes depth-first in declaration order.
func climb(t *Table, owner string, access types.Access, lookup func(owner string) (string, bool)) (string, bool) {
	if mapped, ok := lookup(owner); ok {
		return mapped, true
	}
	if access != types.AccessUnknown && (access.IsPrivate() || access.IsStatic()) {
		return "", false
	}
	seen := map[string]bool{owner: true}
	var walk func(o string) (string, bool)
	walk = func(o string) (string, bool) {
		for _, parent := range t.parentsOf(o) {
			if seen[parent] {
				continue
			}
			seen[parent] = true
			if mapped, ok := lookup(parent); ok {
				return mapped, true
			}
			if mapped, ok := walk(parent); ok {
				return mapped, true
			}
		}
		return "", false
	}
	return walk(owner)
}

func (t *Table) parentsOf(owner string) []string {
	if p, ok := t.parents[owner]; ok {
		return p
	}
	if t.fallback == nil {
		return nil
	}
	t.mu.RLock()
	p, ok := t.cache[owner]
	t.mu.RUnlock()
	if ok {
		return p
	}
	p = t.fallback.Parents(owner)
	t.mu.Lock()
	t.cache[owner] = p
	t.mu.Unlock()
	return p
}

// withSlash normalizes a package name to "pkg/sub/"; the default
// package is "".
func withSlash(pkg string) string {
	if pkg == "" || strings.HasSuffix(pkg, "/") {
		return pkg
	}
	return pkg + "/"
}

// packageOf returns "pkg/sub/" for "pkg/sub/Name" and "" for "Name".
func packageOf(name string) string {
	return name[:strings.LastIndexByte(name, '/')+1]
}

// parentPackage returns "pkg/" for "pkg/sub/" and "" for "pkg/".
func parentPackage(pkg string) string {
	if pkg == "" {
		return ""
	}
	return pkg[:strings.LastIndexByte(pkg[:len(pkg)-1], '/')+1]
}

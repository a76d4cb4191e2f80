// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the shared data model used across go-remap
// packages: declarations, constants, verification-frame entries,
// annotation values, and method-body events.
package types

import "strings"

// Access is a set of class-file access flags recorded with a declaration.
type Access int

// AccessUnknown marks a reference whose declaration was not consulted,
// e.g. a method handle inside a constant. Renamers treat it as "may be
// inherited".
const AccessUnknown Access = -1

const (
	AccPublic       Access = 0x0001
	AccPrivate      Access = 0x0002
	AccProtected    Access = 0x0004
	AccStatic       Access = 0x0008
	AccFinal        Access = 0x0010
	AccSynchronized Access = 0x0020
	AccVolatile     Access = 0x0040
	AccBridge       Access = 0x0040
	AccTransient    Access = 0x0080
	AccVarargs      Access = 0x0080
	AccNative       Access = 0x0100
	AccAbstract     Access = 0x0400
	AccStrict       Access = 0x0800
	AccSynthetic    Access = 0x1000
	AccEnum         Access = 0x4000
)

// accessNames lists the flag keywords in canonical order. Field-only and
// method-only flags that share a bit are resolved by partition.
var accessNames = []struct {
	flag   Access
	name   string
	field  bool
	method bool
}{
	{AccPublic, "public", true, true},
	{AccPrivate, "private", true, true},
	{AccProtected, "protected", true, true},
	{AccStatic, "static", true, true},
	{AccFinal, "final", true, true},
	{AccSynchronized, "synchronized", false, true},
	{AccVolatile, "volatile", true, false},
	{AccBridge, "bridge", false, true},
	{AccTransient, "transient", true, false},
	{AccVarargs, "varargs", false, true},
	{AccNative, "native", false, true},
	{AccAbstract, "abstract", false, true},
	{AccStrict, "strict", false, true},
	{AccSynthetic, "synthetic", true, true},
	{AccEnum, "enum", true, false},
}

// Has reports whether every bit in flag is set. Unknown access has no flags.
func (a Access) Has(flag Access) bool {
	if a == AccessUnknown {
		return false
	}
	return a&flag == flag
}

// IsPrivate reports whether the private bit is set.
func (a Access) IsPrivate() bool { return a.Has(AccPrivate) }

// IsStatic reports whether the static bit is set.
func (a Access) IsStatic() bool { return a.Has(AccStatic) }

// Names returns the flag keywords set in a, interpreted for partition p.
func (a Access) Names(p Partition) []string {
	if a == AccessUnknown {
		return []string{"unknown"}
	}
	var names []string
	for _, n := range accessNames {
		if p == Fields && !n.field || p == Methods && !n.method {
			continue
		}
		if a&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

// String renders the flags as space-separated keywords, treating
// ambiguous bits as method flags.
func (a Access) String() string {
	return strings.Join(a.Names(Methods), " ")
}

// ParseAccess converts flag keywords back to an Access value.
// It returns false if a keyword is not recognized.
func ParseAccess(names []string) (Access, bool) {
	var a Access
	for _, name := range names {
		if name == "unknown" {
			return AccessUnknown, true
		}
		found := false
		for _, n := range accessNames {
			if n.name == name {
				a |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return a, true
}

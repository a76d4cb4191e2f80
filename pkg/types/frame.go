// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Label names a position in the instruction stream, e.g. "L0".
type Label string

// FrameKind is the encoding of a verification frame.
type FrameKind int

const (
	FrameNew    FrameKind = -1 // Expanded frame
	FrameFull   FrameKind = 0  // Full compressed frame
	FrameAppend FrameKind = 1  // Locals appended to the previous frame
	FrameChop   FrameKind = 2  // Locals removed from the previous frame
	FrameSame   FrameKind = 3  // Same locals, empty stack
	FrameSame1  FrameKind = 4  // Same locals, one stack item
)

var frameKindNames = map[FrameKind]string{
	FrameNew:    "new",
	FrameFull:   "full",
	FrameAppend: "append",
	FrameChop:   "chop",
	FrameSame:   "same",
	FrameSame1:  "same1",
}

// String returns the frame kind keyword.
func (k FrameKind) String() string {
	if s, ok := frameKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseFrameKind converts a frame kind keyword back to its value.
func ParseFrameKind(s string) (FrameKind, bool) {
	for k, name := range frameKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// FrameEntry is one slot of a verification frame's locals or stack.
// Only ClassEntry is symbolic.
type FrameEntry interface {
	isFrameEntry()
}

// TypeTag is a primitive or special verification type.
type TypeTag int

const (
	Top TypeTag = iota
	Integer
	FloatTag
	DoubleTag
	LongTag
	Null
	UninitializedThis
)

var typeTagNames = [...]string{"top", "int", "float", "double", "long", "null", "uninitThis"}

// String returns the tag keyword.
func (t TypeTag) String() string {
	if t < 0 || int(t) >= len(typeTagNames) {
		return "unknown"
	}
	return typeTagNames[t]
}

// ParseTypeTag converts a tag keyword back to its value.
func ParseTypeTag(s string) (TypeTag, bool) {
	for i, name := range typeTagNames {
		if name == s {
			return TypeTag(i), true
		}
	}
	return 0, false
}

// ClassEntry is a reference type in a frame, held as an internal name
// ("pkg/Bar") or array descriptor ("[I").
type ClassEntry string

// Uninitialized is the type of an object created by the NEW instruction
// at Label whose constructor has not run yet.
type Uninitialized struct {
	Label Label
}

func (TypeTag) isFrameEntry()       {}
func (ClassEntry) isFrameEntry()    {}
func (Uninitialized) isFrameEntry() {}

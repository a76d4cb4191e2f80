// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Partition selects the field or method half of a symbol table.
type Partition int

const (
	Fields  Partition = iota // Field declarations
	Methods                  // Method declarations
)

// String returns the human-readable name of the partition.
func (p Partition) String() string {
	switch p {
	case Fields:
		return "field"
	case Methods:
		return "method"
	default:
		return "unknown"
	}
}

// Declaration is a field or method declared in the original binary.
type Declaration struct {
	Owner  string // Internal name of the declaring class, e.g. "pkg/Bar"
	Name   string // Member name
	Desc   string // Field or method descriptor
	Access Access // Declared access flags
}

// String renders the declaration as owner.name desc.
func (d Declaration) String() string {
	return fmt.Sprintf("%s.%s %s", d.Owner, d.Name, d.Desc)
}

// MethodBody is the event stream of one method together with the header
// identifying it. The header is never rewritten by the body remapper.
type MethodBody struct {
	Owner  string
	Name   string
	Desc   string
	Access Access
	Events []Event
}

// String renders the body header as owner.name desc.
func (b MethodBody) String() string {
	return fmt.Sprintf("%s.%s %s", b.Owner, b.Name, b.Desc)
}

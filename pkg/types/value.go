// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"strings"
)

// Value is a constant operand: an ldc constant, a bootstrap argument, or
// an annotation element constant. Only Type, Handle and ConstantDynamic
// carry symbolic references.
type Value interface {
	isValue()
}

type (
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string
	Bool   bool
	Byte   int8
	Char   uint16
	Short  int16
)

// Type is a class, array, or method type constant, held as a descriptor:
// "Lpkg/Bar;", "[I", "(I)V".
type Type struct {
	Desc string
}

// IsMethod reports whether the type is a method type.
func (t Type) IsMethod() bool { return strings.HasPrefix(t.Desc, "(") }

// HandleKind is the reference kind of a method handle.
type HandleKind int

const (
	HGetField         HandleKind = 1
	HGetStatic        HandleKind = 2
	HPutField         HandleKind = 3
	HPutStatic        HandleKind = 4
	HInvokeVirtual    HandleKind = 5
	HInvokeStatic     HandleKind = 6
	HInvokeSpecial    HandleKind = 7
	HNewInvokeSpecial HandleKind = 8
	HInvokeInterface  HandleKind = 9
)

var handleKindNames = map[HandleKind]string{
	HGetField:         "getField",
	HGetStatic:        "getStatic",
	HPutField:         "putField",
	HPutStatic:        "putStatic",
	HInvokeVirtual:    "invokeVirtual",
	HInvokeStatic:     "invokeStatic",
	HInvokeSpecial:    "invokeSpecial",
	HNewInvokeSpecial: "newInvokeSpecial",
	HInvokeInterface:  "invokeInterface",
}

// String returns the reference-kind name.
func (k HandleKind) String() string {
	if s, ok := handleKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("HandleKind(%d)", int(k))
}

// IsField reports whether the handle refers to a field.
func (k HandleKind) IsField() bool { return k >= HGetField && k <= HPutStatic }

// ParseHandleKind converts a reference-kind name back to its value.
func ParseHandleKind(s string) (HandleKind, bool) {
	for k, name := range handleKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Handle is a method handle constant.
type Handle struct {
	Kind      HandleKind
	Owner     string
	Name      string
	Desc      string
	Interface bool
}

// ConstantDynamic is a dynamically-computed constant.
type ConstantDynamic struct {
	Name      string
	Desc      string
	Bootstrap Handle
	Args      []Value
}

func (Int) isValue()             {}
func (Long) isValue()            {}
func (Float) isValue()           {}
func (Double) isValue()          {}
func (String) isValue()          {}
func (Bool) isValue()            {}
func (Byte) isValue()            {}
func (Char) isValue()            {}
func (Short) isValue()           {}
func (Type) isValue()            {}
func (Handle) isValue()          {}
func (ConstantDynamic) isValue() {}

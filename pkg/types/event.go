// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Event is one structural event of a method body, in the order a class
// reader produces them. The set of implementations is closed.
type Event interface {
	isEvent()
}

// Parameter declares a formal parameter name (MethodParameters attribute).
type Parameter struct {
	Name   string
	Access Access
}

// AnnotationDefault carries the default value of an annotation method.
type AnnotationDefault struct {
	Value AnnotationValue
}

// Annotation is a method annotation.
type Annotation struct {
	Annotation NestedAnnotation
	Visible    bool
}

// ParameterAnnotation is an annotation on formal parameter Parameter.
type ParameterAnnotation struct {
	Parameter  int
	Annotation NestedAnnotation
	Visible    bool
}

// Code marks the start of the instruction stream.
type Code struct{}

// Frame is a stack map frame.
type Frame struct {
	Kind  FrameKind
	Local []FrameEntry
	Stack []FrameEntry
}

// Insn is a zero-operand instruction.
type Insn struct {
	Opcode Opcode
}

// IntInsn is BIPUSH, SIPUSH or NEWARRAY.
type IntInsn struct {
	Opcode  Opcode
	Operand int
}

// VarInsn loads or stores a local variable.
type VarInsn struct {
	Opcode Opcode
	Var    int
}

// TypeInsn is NEW, ANEWARRAY, CHECKCAST or INSTANCEOF on an internal name.
type TypeInsn struct {
	Opcode Opcode
	Type   string
}

// FieldInsn reads or writes a field.
type FieldInsn struct {
	Opcode Opcode
	Owner  string
	Name   string
	Desc   string
}

// MethodInsn invokes a method.
type MethodInsn struct {
	Opcode    Opcode
	Owner     string
	Name      string
	Desc      string
	Interface bool
}

// InvokeDynamicInsn is a dynamic call site.
type InvokeDynamicInsn struct {
	Name      string
	Desc      string
	Bootstrap Handle
	Args      []Value
}

// JumpInsn is a conditional or unconditional branch.
type JumpInsn struct {
	Opcode Opcode
	Label  Label
}

// LabelEvent places Label at the current position.
type LabelEvent struct {
	Label Label
}

// LdcInsn loads a constant.
type LdcInsn struct {
	Value Value
}

// IincInsn increments a local variable.
type IincInsn struct {
	Var       int
	Increment int
}

// TableSwitchInsn is a dense switch.
type TableSwitchInsn struct {
	Min     int
	Max     int
	Default Label
	Labels  []Label
}

// LookupSwitchInsn is a sparse switch.
type LookupSwitchInsn struct {
	Default Label
	Keys    []int
	Labels  []Label
}

// MultiANewArrayInsn creates a multi-dimensional array.
type MultiANewArrayInsn struct {
	Desc string
	Dims int
}

// TryCatchBlock is an exception table entry. An empty Type is the
// catch-all handler used for finally blocks.
type TryCatchBlock struct {
	Start   Label
	End     Label
	Handler Label
	Type    string
}

// LocalVariable is a LocalVariableTable entry. Signature is empty when
// the variable has no generic signature.
type LocalVariable struct {
	Name      string
	Desc      string
	Signature string
	Start     Label
	End       Label
	Index     int
}

// LineNumber maps Start to a source line.
type LineNumber struct {
	Line  int
	Start Label
}

// Maxs records the maximum stack size and number of locals.
type Maxs struct {
	MaxStack  int
	MaxLocals int
}

// End marks the end of the method.
type End struct{}

func (Parameter) isEvent()           {}
func (AnnotationDefault) isEvent()   {}
func (Annotation) isEvent()          {}
func (ParameterAnnotation) isEvent() {}
func (Code) isEvent()                {}
func (Frame) isEvent()               {}
func (Insn) isEvent()                {}
func (IntInsn) isEvent()             {}
func (VarInsn) isEvent()             {}
func (TypeInsn) isEvent()            {}
func (FieldInsn) isEvent()           {}
func (MethodInsn) isEvent()          {}
func (InvokeDynamicInsn) isEvent()   {}
func (JumpInsn) isEvent()            {}
func (LabelEvent) isEvent()          {}
func (LdcInsn) isEvent()             {}
func (IincInsn) isEvent()            {}
func (TableSwitchInsn) isEvent()     {}
func (LookupSwitchInsn) isEvent()    {}
func (MultiANewArrayInsn) isEvent()  {}
func (TryCatchBlock) isEvent()       {}
func (LocalVariable) isEvent()       {}
func (LineNumber) isEvent()          {}
func (Maxs) isEvent()                {}
func (End) isEvent()                 {}

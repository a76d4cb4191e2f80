// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// AnnotationValue is the value of an annotation element.
type AnnotationValue interface {
	isAnnotationValue()
}

// ConstValue is a primitive, string, or class-literal element value.
type ConstValue struct {
	Value Value
}

// EnumValue is an enum constant element value.
type EnumValue struct {
	Desc string // Descriptor of the enum type
	Name string // Constant name
}

// NestedAnnotation is an annotation used as an element value, and also
// the payload of the top-level annotation events.
type NestedAnnotation struct {
	Desc     string
	Elements []AnnotationElement
}

// ArrayValue is an array element value.
type ArrayValue struct {
	Values []AnnotationValue
}

// AnnotationElement is a named element of an annotation.
type AnnotationElement struct {
	Name  string
	Value AnnotationValue
}

func (ConstValue) isAnnotationValue()       {}
func (EnumValue) isAnnotationValue()        {}
func (NestedAnnotation) isAnnotationValue() {}
func (ArrayValue) isAnnotationValue()       {}

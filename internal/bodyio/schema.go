// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package bodyio

// YAML shapes of a dump. Pointer fields distinguish an absent key from a
// zero value.

type dumpDoc struct {
	Declarations declsDoc  `yaml:"declarations"`
	Bodies       []bodyDoc `yaml:"bodies,omitempty"`
}

type declsDoc struct {
	Fields  []declDoc `yaml:"fields,omitempty"`
	Methods []declDoc `yaml:"methods,omitempty"`
}

type declDoc struct {
	Owner  string   `yaml:"owner"`
	Name   string   `yaml:"name"`
	Desc   string   `yaml:"desc"`
	Access []string `yaml:"access,flow,omitempty"`
}

type bodyDoc struct {
	Owner  string     `yaml:"owner"`
	Name   string     `yaml:"name"`
	Desc   string     `yaml:"desc"`
	Access []string   `yaml:"access,flow,omitempty"`
	Code   []eventDoc `yaml:"code"`
}

type eventDoc struct {
	Op string `yaml:"op"`

	Owner     string `yaml:"owner,omitempty"`
	Name      string `yaml:"name,omitempty"`
	Desc      string `yaml:"desc,omitempty"`
	Signature string `yaml:"signature,omitempty"`
	Type      string `yaml:"type,omitempty"`
	Itf       bool   `yaml:"itf,omitempty"`

	Operand   *int `yaml:"operand,omitempty"`
	Var       *int `yaml:"var,omitempty"`
	Inc       *int `yaml:"inc,omitempty"`
	Dims      *int `yaml:"dims,omitempty"`
	Index     *int `yaml:"index,omitempty"`
	Line      *int `yaml:"line,omitempty"`
	MaxStack  *int `yaml:"maxStack,omitempty"`
	MaxLocals *int `yaml:"maxLocals,omitempty"`
	Min       *int `yaml:"min,omitempty"`
	Max       *int `yaml:"max,omitempty"`
	Param     *int `yaml:"param,omitempty"`

	Label   string   `yaml:"label,omitempty"`
	Default string   `yaml:"default,omitempty"`
	Labels  []string `yaml:"labels,flow,omitempty"`
	Keys    []int    `yaml:"keys,flow,omitempty"`
	Start   string   `yaml:"start,omitempty"`
	End     string   `yaml:"end,omitempty"`
	Handler string   `yaml:"handler,omitempty"`

	Kind   string   `yaml:"kind,omitempty"`
	Locals []string `yaml:"locals,flow,omitempty"`
	Stack  []string `yaml:"stack,flow,omitempty"`

	Value     *valueDoc  `yaml:"value,omitempty"`
	Bootstrap *handleDoc `yaml:"bootstrap,omitempty"`
	Args      []valueDoc `yaml:"args,omitempty"`

	Access     []string       `yaml:"access,flow,omitempty"`
	Visible    bool           `yaml:"visible,omitempty"`
	Annotation *annotationDoc `yaml:"annotation,omitempty"`
	Element    *elementValue  `yaml:"element,omitempty"`
}

// valueDoc holds exactly one constant.
type valueDoc struct {
	Int    *int32     `yaml:"int,omitempty"`
	Long   *int64     `yaml:"long,omitempty"`
	Float  *float32   `yaml:"float,omitempty"`
	Double *float64   `yaml:"double,omitempty"`
	String *string    `yaml:"string,omitempty"`
	Bool   *bool      `yaml:"bool,omitempty"`
	Byte   *int8      `yaml:"byte,omitempty"`
	Char   *uint16    `yaml:"char,omitempty"`
	Short  *int16     `yaml:"short,omitempty"`
	Type   *string    `yaml:"type,omitempty"`
	Handle *handleDoc `yaml:"handle,omitempty"`
	Condy  *condyDoc  `yaml:"condy,omitempty"`
}

type handleDoc struct {
	Kind  string `yaml:"kind"`
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
	Desc  string `yaml:"desc"`
	Itf   bool   `yaml:"itf,omitempty"`
}

type condyDoc struct {
	Name      string     `yaml:"name"`
	Desc      string     `yaml:"desc"`
	Bootstrap handleDoc  `yaml:"bootstrap"`
	Args      []valueDoc `yaml:"args,omitempty"`
}

type annotationDoc struct {
	Desc     string       `yaml:"desc"`
	Elements []elementDoc `yaml:"elements,omitempty"`
}

type elementDoc struct {
	Name  string       `yaml:"name"`
	Value elementValue `yaml:"value"`
}

// elementValue holds exactly one annotation element value.
type elementValue struct {
	Const      *valueDoc       `yaml:"const,omitempty"`
	Enum       *enumDoc        `yaml:"enum,omitempty"`
	Annotation *annotationDoc  `yaml:"annotation,omitempty"`
	Array      *[]elementValue `yaml:"array,omitempty"`
}

type enumDoc struct {
	Desc string `yaml:"desc"`
	Name string `yaml:"name"`
}

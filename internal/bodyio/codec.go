// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package bodyio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-remap/internal/symtab"
	"github.com/petar-djukic/go-remap/pkg/types"
)

// ErrInvalidDump is returned for a dump that parses as YAML but does not
// describe valid declarations or events.
var ErrInvalidDump = errors.New("invalid dump")

// Dump is the decoded content of a body dump.
type Dump struct {
	Fields  []types.Declaration
	Methods []types.Declaration
	Bodies  []types.MethodBody
}

// Symbols builds a frozen symbol table from the dump's declarations, in
// dump order.
func (d *Dump) Symbols() *symtab.Table {
	b := symtab.NewBuilder()
	for _, f := range d.Fields {
		b.AddField(f)
	}
	for _, m := range d.Methods {
		b.AddMethod(m)
	}
	return b.Freeze()
}

// Decode reads a YAML body dump. Unknown keys are rejected.
func Decode(r io.Reader) (*Dump, error) {
	var doc dumpDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Dump{}, nil
		}
		return nil, fmt.Errorf("decoding dump: %w", err)
	}

	d := &Dump{}
	var err error
	if d.Fields, err = decodeDecls(doc.Declarations.Fields, types.Fields); err != nil {
		return nil, err
	}
	if d.Methods, err = decodeDecls(doc.Declarations.Methods, types.Methods); err != nil {
		return nil, err
	}
	for i, bd := range doc.Bodies {
		body, err := decodeBody(bd)
		if err != nil {
			return nil, fmt.Errorf("body %d (%s.%s %s): %w", i, bd.Owner, bd.Name, bd.Desc, err)
		}
		d.Bodies = append(d.Bodies, body)
	}
	return d, nil
}

// ReadFile decodes the dump stored at path.
func ReadFile(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes d as a YAML body dump.
func Encode(w io.Writer, d *Dump) error {
	doc := dumpDoc{
		Declarations: declsDoc{
			Fields:  encodeDecls(d.Fields, types.Fields),
			Methods: encodeDecls(d.Methods, types.Methods),
		},
	}
	for _, b := range d.Bodies {
		bd, err := encodeBody(b)
		if err != nil {
			return fmt.Errorf("body %s: %w", b, err)
		}
		doc.Bodies = append(doc.Bodies, bd)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding dump: %w", err)
	}
	return enc.Close()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDump, fmt.Sprintf(format, args...))
}

func decodeDecls(docs []declDoc, p types.Partition) ([]types.Declaration, error) {
	var decls []types.Declaration
	for i, dd := range docs {
		if dd.Owner == "" || dd.Name == "" || dd.Desc == "" {
			return nil, invalid("%s declaration %d: owner, name and desc are required", p, i)
		}
		access, ok := types.ParseAccess(dd.Access)
		if !ok {
			return nil, invalid("%s declaration %d: unknown access flag in %v", p, i, dd.Access)
		}
		decls = append(decls, types.Declaration{Owner: dd.Owner, Name: dd.Name, Desc: dd.Desc, Access: access})
	}
	return decls, nil
}

func encodeDecls(decls []types.Declaration, p types.Partition) []declDoc {
	var docs []declDoc
	for _, d := range decls {
		docs = append(docs, declDoc{Owner: d.Owner, Name: d.Name, Desc: d.Desc, Access: d.Access.Names(p)})
	}
	return docs
}

func decodeBody(bd bodyDoc) (types.MethodBody, error) {
	access, ok := types.ParseAccess(bd.Access)
	if !ok {
		return types.MethodBody{}, invalid("unknown access flag in %v", bd.Access)
	}
	body := types.MethodBody{Owner: bd.Owner, Name: bd.Name, Desc: bd.Desc, Access: access}
	for i, ed := range bd.Code {
		ev, err := decodeEvent(ed)
		if err != nil {
			return types.MethodBody{}, fmt.Errorf("event %d (%s): %w", i, ed.Op, err)
		}
		body.Events = append(body.Events, ev)
	}
	return body, nil
}

func encodeBody(b types.MethodBody) (bodyDoc, error) {
	bd := bodyDoc{Owner: b.Owner, Name: b.Name, Desc: b.Desc, Access: b.Access.Names(types.Methods)}
	bd.Code = make([]eventDoc, 0, len(b.Events))
	for i, ev := range b.Events {
		ed, err := encodeEvent(ev)
		if err != nil {
			return bodyDoc{}, fmt.Errorf("event %d: %w", i, err)
		}
		bd.Code = append(bd.Code, ed)
	}
	return bd, nil
}

func need(p *int, key string) (int, error) {
	if p == nil {
		return 0, invalid("missing %q", key)
	}
	return *p, nil
}

func ptr[T any](v T) *T { return &v }

func labels(ls []string) []types.Label {
	if len(ls) == 0 {
		return nil
	}
	out := make([]types.Label, len(ls))
	for i, l := range ls {
		out[i] = types.Label(l)
	}
	return out
}

func labelStrings(ls []types.Label) []string {
	if len(ls) == 0 {
		return nil
	}
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = string(l)
	}
	return out
}

func decodeEvent(e eventDoc) (types.Event, error) {
	switch e.Op {
	case "code":
		return types.Code{}, nil
	case "end":
		return types.End{}, nil
	case "label":
		if e.Label == "" {
			return nil, invalid("missing \"label\"")
		}
		return types.LabelEvent{Label: types.Label(e.Label)}, nil
	case "line":
		line, err := need(e.Line, "line")
		if err != nil {
			return nil, err
		}
		return types.LineNumber{Line: line, Start: types.Label(e.Start)}, nil
	case "maxs":
		stack, err := need(e.MaxStack, "maxStack")
		if err != nil {
			return nil, err
		}
		locals, err := need(e.MaxLocals, "maxLocals")
		if err != nil {
			return nil, err
		}
		return types.Maxs{MaxStack: stack, MaxLocals: locals}, nil
	case "frame":
		kind, ok := types.ParseFrameKind(e.Kind)
		if !ok {
			return nil, invalid("unknown frame kind %q", e.Kind)
		}
		local, err := decodeFrameEntries(e.Locals)
		if err != nil {
			return nil, err
		}
		stack, err := decodeFrameEntries(e.Stack)
		if err != nil {
			return nil, err
		}
		return types.Frame{Kind: kind, Local: local, Stack: stack}, nil
	case "trycatch":
		return types.TryCatchBlock{
			Start:   types.Label(e.Start),
			End:     types.Label(e.End),
			Handler: types.Label(e.Handler),
			Type:    e.Type,
		}, nil
	case "localvar":
		index, err := need(e.Index, "index")
		if err != nil {
			return nil, err
		}
		return types.LocalVariable{
			Name:      e.Name,
			Desc:      e.Desc,
			Signature: e.Signature,
			Start:     types.Label(e.Start),
			End:       types.Label(e.End),
			Index:     index,
		}, nil
	case "parameter":
		access, ok := types.ParseAccess(e.Access)
		if !ok {
			return nil, invalid("unknown access flag in %v", e.Access)
		}
		return types.Parameter{Name: e.Name, Access: access}, nil
	case "annotation":
		a, err := decodeAnnotation(e.Annotation)
		if err != nil {
			return nil, err
		}
		return types.Annotation{Annotation: a, Visible: e.Visible}, nil
	case "paramannotation":
		param, err := need(e.Param, "param")
		if err != nil {
			return nil, err
		}
		a, err := decodeAnnotation(e.Annotation)
		if err != nil {
			return nil, err
		}
		return types.ParameterAnnotation{Parameter: param, Annotation: a, Visible: e.Visible}, nil
	case "annotationdefault":
		if e.Element == nil {
			return nil, invalid("missing \"element\"")
		}
		v, err := decodeElementValue(*e.Element)
		if err != nil {
			return nil, err
		}
		return types.AnnotationDefault{Value: v}, nil
	}
	return decodeInsn(e)
}

func decodeInsn(e eventDoc) (types.Event, error) {
	op, ok := types.LookupOpcode(e.Op)
	if !ok {
		return nil, invalid("unknown op %q", e.Op)
	}
	switch op.Kind() {
	case types.KindInsn:
		return types.Insn{Opcode: op}, nil
	case types.KindIntInsn:
		operand, err := need(e.Operand, "operand")
		if err != nil {
			return nil, err
		}
		return types.IntInsn{Opcode: op, Operand: operand}, nil
	case types.KindVarInsn:
		v, err := need(e.Var, "var")
		if err != nil {
			return nil, err
		}
		return types.VarInsn{Opcode: op, Var: v}, nil
	case types.KindTypeInsn:
		if e.Type == "" {
			return nil, invalid("missing \"type\"")
		}
		return types.TypeInsn{Opcode: op, Type: e.Type}, nil
	case types.KindFieldInsn:
		if e.Owner == "" || e.Name == "" || e.Desc == "" {
			return nil, invalid("owner, name and desc are required")
		}
		return types.FieldInsn{Opcode: op, Owner: e.Owner, Name: e.Name, Desc: e.Desc}, nil
	case types.KindMethodInsn:
		if e.Owner == "" || e.Name == "" || e.Desc == "" {
			return nil, invalid("owner, name and desc are required")
		}
		return types.MethodInsn{Opcode: op, Owner: e.Owner, Name: e.Name, Desc: e.Desc, Interface: e.Itf}, nil
	case types.KindInvokeDynamic:
		if e.Bootstrap == nil {
			return nil, invalid("missing \"bootstrap\"")
		}
		bsm, err := decodeHandle(*e.Bootstrap)
		if err != nil {
			return nil, err
		}
		args, err := decodeValues(e.Args)
		if err != nil {
			return nil, err
		}
		return types.InvokeDynamicInsn{Name: e.Name, Desc: e.Desc, Bootstrap: bsm, Args: args}, nil
	case types.KindJump:
		if e.Label == "" {
			return nil, invalid("missing \"label\"")
		}
		return types.JumpInsn{Opcode: op, Label: types.Label(e.Label)}, nil
	case types.KindLdc:
		if e.Value == nil {
			return nil, invalid("missing \"value\"")
		}
		v, err := decodeValue(*e.Value)
		if err != nil {
			return nil, err
		}
		return types.LdcInsn{Value: v}, nil
	case types.KindIinc:
		v, err := need(e.Var, "var")
		if err != nil {
			return nil, err
		}
		inc, err := need(e.Inc, "inc")
		if err != nil {
			return nil, err
		}
		return types.IincInsn{Var: v, Increment: inc}, nil
	case types.KindTableSwitch:
		lo, err := need(e.Min, "min")
		if err != nil {
			return nil, err
		}
		hi, err := need(e.Max, "max")
		if err != nil {
			return nil, err
		}
		if hi < lo || len(e.Labels) != hi-lo+1 {
			return nil, invalid("tableswitch %d..%d needs %d labels, got %d", lo, hi, hi-lo+1, len(e.Labels))
		}
		return types.TableSwitchInsn{Min: lo, Max: hi, Default: types.Label(e.Default), Labels: labels(e.Labels)}, nil
	case types.KindLookupSwitch:
		if len(e.Keys) != len(e.Labels) {
			return nil, invalid("lookupswitch has %d keys and %d labels", len(e.Keys), len(e.Labels))
		}
		var keys []int
		if len(e.Keys) > 0 {
			keys = append(keys, e.Keys...)
		}
		return types.LookupSwitchInsn{Default: types.Label(e.Default), Keys: keys, Labels: labels(e.Labels)}, nil
	case types.KindMultiANewArray:
		dims, err := need(e.Dims, "dims")
		if err != nil {
			return nil, err
		}
		if e.Desc == "" || dims < 1 {
			return nil, invalid("multianewarray needs desc and dims >= 1")
		}
		return types.MultiANewArrayInsn{Desc: e.Desc, Dims: dims}, nil
	default:
		return nil, invalid("op %q cannot appear in a body stream", e.Op)
	}
}

func encodeEvent(ev types.Event) (eventDoc, error) {
	switch ev := ev.(type) {
	case types.Code:
		return eventDoc{Op: "code"}, nil
	case types.End:
		return eventDoc{Op: "end"}, nil
	case types.LabelEvent:
		return eventDoc{Op: "label", Label: string(ev.Label)}, nil
	case types.LineNumber:
		return eventDoc{Op: "line", Line: ptr(ev.Line), Start: string(ev.Start)}, nil
	case types.Maxs:
		return eventDoc{Op: "maxs", MaxStack: ptr(ev.MaxStack), MaxLocals: ptr(ev.MaxLocals)}, nil
	case types.Frame:
		return eventDoc{
			Op:     "frame",
			Kind:   ev.Kind.String(),
			Locals: encodeFrameEntries(ev.Local),
			Stack:  encodeFrameEntries(ev.Stack),
		}, nil
	case types.TryCatchBlock:
		return eventDoc{Op: "trycatch", Start: string(ev.Start), End: string(ev.End), Handler: string(ev.Handler), Type: ev.Type}, nil
	case types.LocalVariable:
		return eventDoc{
			Op:        "localvar",
			Name:      ev.Name,
			Desc:      ev.Desc,
			Signature: ev.Signature,
			Start:     string(ev.Start),
			End:       string(ev.End),
			Index:     ptr(ev.Index),
		}, nil
	case types.Parameter:
		return eventDoc{Op: "parameter", Name: ev.Name, Access: ev.Access.Names(types.Fields)}, nil
	case types.Annotation:
		a, err := encodeAnnotation(ev.Annotation)
		if err != nil {
			return eventDoc{}, err
		}
		return eventDoc{Op: "annotation", Annotation: a, Visible: ev.Visible}, nil
	case types.ParameterAnnotation:
		a, err := encodeAnnotation(ev.Annotation)
		if err != nil {
			return eventDoc{}, err
		}
		return eventDoc{Op: "paramannotation", Param: ptr(ev.Parameter), Annotation: a, Visible: ev.Visible}, nil
	case types.AnnotationDefault:
		v, err := encodeElementValue(ev.Value)
		if err != nil {
			return eventDoc{}, err
		}
		return eventDoc{Op: "annotationdefault", Element: &v}, nil
	case types.Insn:
		return eventDoc{Op: ev.Opcode.String()}, nil
	case types.IntInsn:
		return eventDoc{Op: ev.Opcode.String(), Operand: ptr(ev.Operand)}, nil
	case types.VarInsn:
		return eventDoc{Op: ev.Opcode.String(), Var: ptr(ev.Var)}, nil
	case types.TypeInsn:
		return eventDoc{Op: ev.Opcode.String(), Type: ev.Type}, nil
	case types.FieldInsn:
		return eventDoc{Op: ev.Opcode.String(), Owner: ev.Owner, Name: ev.Name, Desc: ev.Desc}, nil
	case types.MethodInsn:
		return eventDoc{Op: ev.Opcode.String(), Owner: ev.Owner, Name: ev.Name, Desc: ev.Desc, Itf: ev.Interface}, nil
	case types.InvokeDynamicInsn:
		bsm := encodeHandle(ev.Bootstrap)
		args, err := encodeValues(ev.Args)
		if err != nil {
			return eventDoc{}, err
		}
		return eventDoc{Op: types.INVOKEDYNAMIC.String(), Name: ev.Name, Desc: ev.Desc, Bootstrap: &bsm, Args: args}, nil
	case types.JumpInsn:
		return eventDoc{Op: ev.Opcode.String(), Label: string(ev.Label)}, nil
	case types.LdcInsn:
		v, err := encodeValue(ev.Value)
		if err != nil {
			return eventDoc{}, err
		}
		return eventDoc{Op: types.LDC.String(), Value: &v}, nil
	case types.IincInsn:
		return eventDoc{Op: types.IINC.String(), Var: ptr(ev.Var), Inc: ptr(ev.Increment)}, nil
	case types.TableSwitchInsn:
		return eventDoc{
			Op:      types.TABLESWITCH.String(),
			Min:     ptr(ev.Min),
			Max:     ptr(ev.Max),
			Default: string(ev.Default),
			Labels:  labelStrings(ev.Labels),
		}, nil
	case types.LookupSwitchInsn:
		return eventDoc{
			Op:      types.LOOKUPSWITCH.String(),
			Default: string(ev.Default),
			Keys:    ev.Keys,
			Labels:  labelStrings(ev.Labels),
		}, nil
	case types.MultiANewArrayInsn:
		return eventDoc{Op: types.MULTIANEWARRAY.String(), Desc: ev.Desc, Dims: ptr(ev.Dims)}, nil
	default:
		return eventDoc{}, fmt.Errorf("cannot encode event %T", ev)
	}
}

const uninitPrefix = "uninit:"

func decodeFrameEntries(ss []string) ([]types.FrameEntry, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	out := make([]types.FrameEntry, len(ss))
	for i, s := range ss {
		switch {
		case s == "":
			return nil, invalid("empty frame entry at %d", i)
		case strings.HasPrefix(s, uninitPrefix):
			out[i] = types.Uninitialized{Label: types.Label(strings.TrimPrefix(s, uninitPrefix))}
		default:
			if tag, ok := types.ParseTypeTag(s); ok {
				out[i] = tag
			} else {
				out[i] = types.ClassEntry(s)
			}
		}
	}
	return out, nil
}

func encodeFrameEntries(entries []types.FrameEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		switch e := e.(type) {
		case types.TypeTag:
			out[i] = e.String()
		case types.ClassEntry:
			out[i] = string(e)
		case types.Uninitialized:
			out[i] = uninitPrefix + string(e.Label)
		}
	}
	return out
}

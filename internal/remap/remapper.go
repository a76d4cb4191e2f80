// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package remap rewrites the symbolic references of a method body through
// a Renamer. Field and method references are first resolved against the
// original declarations so the Renamer sees their access flags.
package remap

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/go-remap/internal/rename"
	"github.com/petar-djukic/go-remap/pkg/types"
)

// Errors returned by the remapper itself. Lookup and renaming failures
// are passed through unchanged.
var (
	ErrUnknownEvent       = errors.New("unknown event")
	ErrBootstrapNotHandle = errors.New("bootstrap method did not remap to a handle")
)

// Lookup resolves a member reference to its original declaration.
// *symtab.Table satisfies it.
type Lookup interface {
	Find(p types.Partition, owner, name, desc string) (types.Declaration, error)
}

// Sink receives remapped events in order.
type Sink interface {
	Accept(ev types.Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev types.Event) error

// Accept calls f(ev).
func (f SinkFunc) Accept(ev types.Event) error { return f(ev) }

// Remapper rewrites method body events. It holds no per-body state, so one
// Remapper may serve many goroutines as long as its Lookup and Renamer are
// safe for concurrent reads.
type Remapper struct {
	symbols Lookup
	renamer rename.Renamer
}

// New returns a Remapper resolving references in symbols and renaming
// them with renamer.
func New(symbols Lookup, renamer rename.Renamer) *Remapper {
	return &Remapper{symbols: symbols, renamer: renamer}
}

// RemapBody remaps every event of body. The header is kept as is. On
// error no events are returned.
func (r *Remapper) RemapBody(body types.MethodBody) (types.MethodBody, error) {
	events := make([]types.Event, 0, len(body.Events))
	err := r.Stream(body.Events, SinkFunc(func(ev types.Event) error {
		events = append(events, ev)
		return nil
	}))
	if err != nil {
		return types.MethodBody{}, err
	}
	out := body
	out.Events = events
	return out, nil
}

// Stream remaps events one at a time and forwards each to sink before
// looking at the next. It stops at the first remapping or sink error;
// events already forwarded belong to an aborted body and the sink must
// discard them.
func (r *Remapper) Stream(events []types.Event, sink Sink) error {
	for _, ev := range events {
		out, err := r.Remap(ev)
		if err != nil {
			return err
		}
		if err := sink.Accept(out); err != nil {
			return err
		}
	}
	return nil
}

// Remap returns ev with its symbolic references rewritten. Events without
// symbolic content are returned unchanged.
func (r *Remapper) Remap(ev types.Event) (types.Event, error) {
	switch ev := ev.(type) {
	case types.FieldInsn:
		return r.fieldInsn(ev)
	case types.MethodInsn:
		return r.methodInsn(ev)
	case types.InvokeDynamicInsn:
		return r.invokeDynamic(ev)
	case types.TypeInsn:
		typ, err := r.renamer.MapType(ev.Type)
		if err != nil {
			return nil, err
		}
		ev.Type = typ
		return ev, nil
	case types.LdcInsn:
		v, err := r.renamer.MapValue(ev.Value)
		if err != nil {
			return nil, err
		}
		ev.Value = v
		return ev, nil
	case types.MultiANewArrayInsn:
		desc, err := r.renamer.MapDesc(ev.Desc)
		if err != nil {
			return nil, err
		}
		ev.Desc = desc
		return ev, nil
	case types.TryCatchBlock:
		if ev.Type == "" {
			return ev, nil
		}
		typ, err := r.renamer.MapType(ev.Type)
		if err != nil {
			return nil, err
		}
		ev.Type = typ
		return ev, nil
	case types.LocalVariable:
		desc, err := r.renamer.MapDesc(ev.Desc)
		if err != nil {
			return nil, err
		}
		sig, err := r.renamer.MapSignature(ev.Signature, true)
		if err != nil {
			return nil, err
		}
		ev.Desc, ev.Signature = desc, sig
		return ev, nil
	case types.Frame:
		local, err := r.frameEntries(ev.Local)
		if err != nil {
			return nil, err
		}
		stack, err := r.frameEntries(ev.Stack)
		if err != nil {
			return nil, err
		}
		ev.Local, ev.Stack = local, stack
		return ev, nil
	case types.Annotation:
		a, err := r.annotation(ev.Annotation)
		if err != nil {
			return nil, err
		}
		ev.Annotation = a
		return ev, nil
	case types.ParameterAnnotation:
		a, err := r.annotation(ev.Annotation)
		if err != nil {
			return nil, err
		}
		ev.Annotation = a
		return ev, nil
	case types.AnnotationDefault:
		v, err := r.annotationValue(ev.Value)
		if err != nil {
			return nil, err
		}
		ev.Value = v
		return ev, nil
	case types.Parameter, types.Code, types.Insn, types.IntInsn, types.VarInsn,
		types.JumpInsn, types.LabelEvent, types.IincInsn, types.TableSwitchInsn,
		types.LookupSwitchInsn, types.LineNumber, types.Maxs, types.End:
		return ev, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

func (r *Remapper) fieldInsn(ev types.FieldInsn) (types.Event, error) {
	decl, err := r.symbols.Find(types.Fields, ev.Owner, ev.Name, ev.Desc)
	if err != nil {
		return nil, err
	}
	owner, err := r.renamer.MapType(ev.Owner)
	if err != nil {
		return nil, err
	}
	name, err := r.renamer.MapFieldName(ev.Owner, ev.Name, ev.Desc, decl.Access)
	if err != nil {
		return nil, err
	}
	desc, err := r.renamer.MapDesc(ev.Desc)
	if err != nil {
		return nil, err
	}
	return types.FieldInsn{Opcode: ev.Opcode, Owner: owner, Name: name, Desc: desc}, nil
}

func (r *Remapper) methodInsn(ev types.MethodInsn) (types.Event, error) {
	decl, err := r.symbols.Find(types.Methods, ev.Owner, ev.Name, ev.Desc)
	if err != nil {
		return nil, err
	}
	owner, err := r.renamer.MapType(ev.Owner)
	if err != nil {
		return nil, err
	}
	name, err := r.renamer.MapMethodName(ev.Owner, ev.Name, ev.Desc, decl.Access)
	if err != nil {
		return nil, err
	}
	desc, err := r.renamer.MapMethodDesc(ev.Desc)
	if err != nil {
		return nil, err
	}
	return types.MethodInsn{Opcode: ev.Opcode, Owner: owner, Name: name, Desc: desc, Interface: ev.Interface}, nil
}

// invokeDynamic maps each bootstrap argument in order, then the call site
// name, descriptor and bootstrap handle. The input Args slice is left
// untouched.
func (r *Remapper) invokeDynamic(ev types.InvokeDynamicInsn) (types.Event, error) {
	var args []types.Value
	if ev.Args != nil {
		args = make([]types.Value, len(ev.Args))
	}
	for i, arg := range ev.Args {
		v, err := r.renamer.MapValue(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	name, err := r.renamer.MapInvokeDynamicMethodName(ev.Name, ev.Desc)
	if err != nil {
		return nil, err
	}
	desc, err := r.renamer.MapMethodDesc(ev.Desc)
	if err != nil {
		return nil, err
	}
	v, err := r.renamer.MapValue(ev.Bootstrap)
	if err != nil {
		return nil, err
	}
	bsm, ok := v.(types.Handle)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrBootstrapNotHandle, v)
	}
	return types.InvokeDynamicInsn{Name: name, Desc: desc, Bootstrap: bsm, Args: args}, nil
}

// frameEntries returns entries itself when it holds no class names.
// Otherwise it returns a copy of the same length with each class name
// mapped and every other slot left in place.
func (r *Remapper) frameEntries(entries []types.FrameEntry) ([]types.FrameEntry, error) {
	for i, e := range entries {
		if _, ok := e.(types.ClassEntry); !ok {
			continue
		}
		out := make([]types.FrameEntry, len(entries))
		copy(out, entries[:i])
		for ; i < len(entries); i++ {
			c, ok := entries[i].(types.ClassEntry)
			if !ok {
				out[i] = entries[i]
				continue
			}
			mapped, err := r.renamer.MapType(string(c))
			if err != nil {
				return nil, err
			}
			out[i] = types.ClassEntry(mapped)
		}
		return out, nil
	}
	return entries, nil
}

func (r *Remapper) annotation(a types.NestedAnnotation) (types.NestedAnnotation, error) {
	desc, err := r.renamer.MapDesc(a.Desc)
	if err != nil {
		return types.NestedAnnotation{}, err
	}
	var elems []types.AnnotationElement
	if a.Elements != nil {
		elems = make([]types.AnnotationElement, len(a.Elements))
	}
	for i, el := range a.Elements {
		v, err := r.annotationValue(el.Value)
		if err != nil {
			return types.NestedAnnotation{}, err
		}
		elems[i] = types.AnnotationElement{Name: el.Name, Value: v}
	}
	return types.NestedAnnotation{Desc: desc, Elements: elems}, nil
}

func (r *Remapper) annotationValue(v types.AnnotationValue) (types.AnnotationValue, error) {
	switch v := v.(type) {
	case types.ConstValue:
		c, err := r.renamer.MapValue(v.Value)
		if err != nil {
			return nil, err
		}
		return types.ConstValue{Value: c}, nil
	case types.EnumValue:
		desc, err := r.renamer.MapDesc(v.Desc)
		if err != nil {
			return nil, err
		}
		return types.EnumValue{Desc: desc, Name: v.Name}, nil
	case types.NestedAnnotation:
		return r.annotation(v)
	case types.ArrayValue:
		var vals []types.AnnotationValue
		if v.Values != nil {
			vals = make([]types.AnnotationValue, len(v.Values))
		}
		for i, elem := range v.Values {
			mapped, err := r.annotationValue(elem)
			if err != nil {
				return nil, err
			}
			vals[i] = mapped
		}
		return types.ArrayValue{Values: vals}, nil
	default:
		return nil, fmt.Errorf("%w: annotation value %T", ErrUnknownEvent, v)
	}
}

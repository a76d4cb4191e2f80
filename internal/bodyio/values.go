// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package bodyio

import (
	"fmt"

	"github.com/petar-djukic/go-remap/pkg/types"
)

func decodeValue(d valueDoc) (types.Value, error) {
	var vals []types.Value
	if d.Int != nil {
		vals = append(vals, types.Int(*d.Int))
	}
	if d.Long != nil {
		vals = append(vals, types.Long(*d.Long))
	}
	if d.Float != nil {
		vals = append(vals, types.Float(*d.Float))
	}
	if d.Double != nil {
		vals = append(vals, types.Double(*d.Double))
	}
	if d.String != nil {
		vals = append(vals, types.String(*d.String))
	}
	if d.Bool != nil {
		vals = append(vals, types.Bool(*d.Bool))
	}
	if d.Byte != nil {
		vals = append(vals, types.Byte(*d.Byte))
	}
	if d.Char != nil {
		vals = append(vals, types.Char(*d.Char))
	}
	if d.Short != nil {
		vals = append(vals, types.Short(*d.Short))
	}
	if d.Type != nil {
		if *d.Type == "" {
			return nil, invalid("empty type constant")
		}
		vals = append(vals, types.Type{Desc: *d.Type})
	}
	if d.Handle != nil {
		h, err := decodeHandle(*d.Handle)
		if err != nil {
			return nil, err
		}
		vals = append(vals, h)
	}
	if d.Condy != nil {
		bsm, err := decodeHandle(d.Condy.Bootstrap)
		if err != nil {
			return nil, err
		}
		args, err := decodeValues(d.Condy.Args)
		if err != nil {
			return nil, err
		}
		vals = append(vals, types.ConstantDynamic{Name: d.Condy.Name, Desc: d.Condy.Desc, Bootstrap: bsm, Args: args})
	}
	if len(vals) != 1 {
		return nil, invalid("constant must have exactly one kind, got %d", len(vals))
	}
	return vals[0], nil
}

func decodeValues(docs []valueDoc) ([]types.Value, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]types.Value, len(docs))
	for i, d := range docs {
		v, err := decodeValue(d)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func encodeValue(v types.Value) (valueDoc, error) {
	switch v := v.(type) {
	case types.Int:
		return valueDoc{Int: ptr(int32(v))}, nil
	case types.Long:
		return valueDoc{Long: ptr(int64(v))}, nil
	case types.Float:
		return valueDoc{Float: ptr(float32(v))}, nil
	case types.Double:
		return valueDoc{Double: ptr(float64(v))}, nil
	case types.String:
		return valueDoc{String: ptr(string(v))}, nil
	case types.Bool:
		return valueDoc{Bool: ptr(bool(v))}, nil
	case types.Byte:
		return valueDoc{Byte: ptr(int8(v))}, nil
	case types.Char:
		return valueDoc{Char: ptr(uint16(v))}, nil
	case types.Short:
		return valueDoc{Short: ptr(int16(v))}, nil
	case types.Type:
		return valueDoc{Type: ptr(v.Desc)}, nil
	case types.Handle:
		h := encodeHandle(v)
		return valueDoc{Handle: &h}, nil
	case types.ConstantDynamic:
		args, err := encodeValues(v.Args)
		if err != nil {
			return valueDoc{}, err
		}
		return valueDoc{Condy: &condyDoc{Name: v.Name, Desc: v.Desc, Bootstrap: encodeHandle(v.Bootstrap), Args: args}}, nil
	default:
		return valueDoc{}, fmt.Errorf("cannot encode constant %T", v)
	}
}

func encodeValues(vals []types.Value) ([]valueDoc, error) {
	var out []valueDoc
	for _, v := range vals {
		d, err := encodeValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeHandle(d handleDoc) (types.Handle, error) {
	kind, ok := types.ParseHandleKind(d.Kind)
	if !ok {
		return types.Handle{}, invalid("unknown handle kind %q", d.Kind)
	}
	if d.Owner == "" || d.Name == "" || d.Desc == "" {
		return types.Handle{}, invalid("handle needs owner, name and desc")
	}
	return types.Handle{Kind: kind, Owner: d.Owner, Name: d.Name, Desc: d.Desc, Interface: d.Itf}, nil
}

func encodeHandle(h types.Handle) handleDoc {
	return handleDoc{Kind: h.Kind.String(), Owner: h.Owner, Name: h.Name, Desc: h.Desc, Itf: h.Interface}
}

func decodeAnnotation(d *annotationDoc) (types.NestedAnnotation, error) {
	if d == nil {
		return types.NestedAnnotation{}, invalid("missing \"annotation\"")
	}
	if d.Desc == "" {
		return types.NestedAnnotation{}, invalid("annotation without desc")
	}
	a := types.NestedAnnotation{Desc: d.Desc}
	for _, el := range d.Elements {
		v, err := decodeElementValue(el.Value)
		if err != nil {
			return types.NestedAnnotation{}, fmt.Errorf("element %s: %w", el.Name, err)
		}
		a.Elements = append(a.Elements, types.AnnotationElement{Name: el.Name, Value: v})
	}
	return a, nil
}

func encodeAnnotation(a types.NestedAnnotation) (*annotationDoc, error) {
	d := &annotationDoc{Desc: a.Desc}
	for _, el := range a.Elements {
		v, err := encodeElementValue(el.Value)
		if err != nil {
			return nil, err
		}
		d.Elements = append(d.Elements, elementDoc{Name: el.Name, Value: v})
	}
	return d, nil
}

func decodeElementValue(d elementValue) (types.AnnotationValue, error) {
	switch {
	case d.Const != nil:
		v, err := decodeValue(*d.Const)
		if err != nil {
			return nil, err
		}
		return types.ConstValue{Value: v}, nil
	case d.Enum != nil:
		return types.EnumValue{Desc: d.Enum.Desc, Name: d.Enum.Name}, nil
	case d.Annotation != nil:
		return decodeAnnotation(d.Annotation)
	case d.Array != nil:
		var vals []types.AnnotationValue
		for _, elem := range *d.Array {
			v, err := decodeElementValue(elem)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return types.ArrayValue{Values: vals}, nil
	default:
		return nil, invalid("empty annotation value")
	}
}

func encodeElementValue(v types.AnnotationValue) (elementValue, error) {
	switch v := v.(type) {
	case types.ConstValue:
		c, err := encodeValue(v.Value)
		if err != nil {
			return elementValue{}, err
		}
		return elementValue{Const: &c}, nil
	case types.EnumValue:
		return elementValue{Enum: &enumDoc{Desc: v.Desc, Name: v.Name}}, nil
	case types.NestedAnnotation:
		a, err := encodeAnnotation(v)
		if err != nil {
			return elementValue{}, err
		}
		return elementValue{Annotation: a}, nil
	case types.ArrayValue:
		vals := make([]elementValue, 0, len(v.Values))
		for _, elem := range v.Values {
			ev, err := encodeElementValue(elem)
			if err != nil {
				return elementValue{}, err
			}
			vals = append(vals, ev)
		}
		return elementValue{Array: &vals}, nil
	default:
		return elementValue{}, fmt.Errorf("cannot encode annotation value %T", v)
	}
}

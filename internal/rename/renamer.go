// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package rename defines the renaming capability consumed by the body
// remapper and a table-driven implementation of it.
package rename

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/go-remap/pkg/types"
)

// Errors returned for input a Renamer cannot parse.
var (
	ErrMalformedDescriptor = errors.New("malformed descriptor")
	ErrMalformedSignature  = errors.New("malformed signature")
)

// Renamer decides the new names and descriptors of symbolic references.
// Implementations must be safe for concurrent use; any internal cache has
// to be synchronized.
type Renamer interface {
	// MapType maps an internal class name or array descriptor.
	MapType(name string) (string, error)
	// MapDesc maps a field descriptor.
	MapDesc(desc string) (string, error)
	// MapMethodDesc maps a method descriptor.
	MapMethodDesc(desc string) (string, error)
	// MapFieldName maps a field name given the declaration's access flags.
	MapFieldName(owner, name, desc string, access types.Access) (string, error)
	// MapMethodName maps a method name given the declaration's access flags.
	MapMethodName(owner, name, desc string, access types.Access) (string, error)
	// MapInvokeDynamicMethodName maps the name of a dynamic call site.
	MapInvokeDynamicMethodName(name, desc string) (string, error)
	// MapValue maps a constant. Non-symbolic constants come back unchanged.
	MapValue(v types.Value) (types.Value, error)
	// MapSignature maps a generic signature. isField selects the type
	// signature grammar instead of the class/method grammar.
	MapSignature(sig string, isField bool) (string, error)
}

// MapValue maps the symbolic parts of a constant through r: type
// constants by descriptor, handles by owner, name and descriptor, and
// dynamic constants recursively. Handle member names are mapped with
// types.AccessUnknown since constants carry no access flags.
func MapValue(r Renamer, v types.Value) (types.Value, error) {
	switch v := v.(type) {
	case types.Type:
		var desc string
		var err error
		if v.IsMethod() {
			desc, err = r.MapMethodDesc(v.Desc)
		} else {
			desc, err = r.MapDesc(v.Desc)
		}
		if err != nil {
			return nil, err
		}
		return types.Type{Desc: desc}, nil
	case types.Handle:
		return MapHandle(r, v)
	case types.ConstantDynamic:
		var args []types.Value
		if v.Args != nil {
			args = make([]types.Value, len(v.Args))
		}
		for i, arg := range v.Args {
			mapped, err := r.MapValue(arg)
			if err != nil {
				return nil, err
			}
			args[i] = mapped
		}
		name, err := r.MapInvokeDynamicMethodName(v.Name, v.Desc)
		if err != nil {
			return nil, err
		}
		desc, err := r.MapDesc(v.Desc)
		if err != nil {
			return nil, err
		}
		bsm, err := MapHandle(r, v.Bootstrap)
		if err != nil {
			return nil, err
		}
		return types.ConstantDynamic{Name: name, Desc: desc, Bootstrap: bsm, Args: args}, nil
	default:
		return v, nil
	}
}

// MapHandle maps a method handle through r.
func MapHandle(r Renamer, h types.Handle) (types.Handle, error) {
	owner, err := r.MapType(h.Owner)
	if err != nil {
		return types.Handle{}, err
	}
	var name, desc string
	if h.Kind.IsField() {
		if name, err = r.MapFieldName(h.Owner, h.Name, h.Desc, types.AccessUnknown); err != nil {
			return types.Handle{}, err
		}
		desc, err = r.MapDesc(h.Desc)
	} else {
		if name, err = r.MapMethodName(h.Owner, h.Name, h.Desc, types.AccessUnknown); err != nil {
			return types.Handle{}, err
		}
		desc, err = r.MapMethodDesc(h.Desc)
	}
	if err != nil {
		return types.Handle{}, err
	}
	return types.Handle{Kind: h.Kind, Owner: owner, Name: name, Desc: desc, Interface: h.Interface}, nil
}

func malformedDesc(desc string) error {
	return fmt.Errorf("%w: %q", ErrMalformedDescriptor, desc)
}

func malformedSig(sig string, pos int) error {
	return fmt.Errorf("%w: %q at offset %d", ErrMalformedSignature, sig, pos)
}

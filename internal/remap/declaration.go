// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package remap

import (
	"fmt"

	"github.com/petar-djukic/go-remap/pkg/types"
)

// Declaration renames a declaration of partition p the way a reference to
// it would be renamed. Access is kept. No lookup is needed since d is the
// declaration itself.
func (r *Remapper) Declaration(p types.Partition, d types.Declaration) (types.Declaration, error) {
	owner, err := r.renamer.MapType(d.Owner)
	if err != nil {
		return types.Declaration{}, err
	}
	var name, desc string
	switch p {
	case types.Fields:
		if name, err = r.renamer.MapFieldName(d.Owner, d.Name, d.Desc, d.Access); err != nil {
			return types.Declaration{}, err
		}
		desc, err = r.renamer.MapDesc(d.Desc)
	case types.Methods:
		if name, err = r.renamer.MapMethodName(d.Owner, d.Name, d.Desc, d.Access); err != nil {
			return types.Declaration{}, err
		}
		desc, err = r.renamer.MapMethodDesc(d.Desc)
	default:
		return types.Declaration{}, fmt.Errorf("unknown partition %d", p)
	}
	if err != nil {
		return types.Declaration{}, err
	}
	return types.Declaration{Owner: owner, Name: name, Desc: desc, Access: d.Access}, nil
}

// Declarations renames every declaration of decls, stopping at the first
// failure.
func (r *Remapper) Declarations(p types.Partition, decls []types.Declaration) ([]types.Declaration, error) {
	if decls == nil {
		return nil, nil
	}
	out := make([]types.Declaration, len(decls))
	for i, d := range decls {
		nd, err := r.Declaration(p, d)
		if err != nil {
			return nil, fmt.Errorf("%s declaration %s: %w", p, d, err)
		}
		out[i] = nd
	}
	return out, nil
}

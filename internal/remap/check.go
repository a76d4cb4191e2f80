// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package remap

import "github.com/petar-djukic/go-remap/pkg/types"

// Unresolved resolves every field and method reference in events against
// symbols and returns one error per reference that has no declaration,
// in stream order. Unlike Remap it does not stop at the first miss.
func Unresolved(symbols Lookup, events []types.Event) []error {
	var errs []error
	for _, ev := range events {
		var err error
		switch ev := ev.(type) {
		case types.FieldInsn:
			_, err = symbols.Find(types.Fields, ev.Owner, ev.Name, ev.Desc)
		case types.MethodInsn:
			_, err = symbols.Find(types.Methods, ev.Owner, ev.Name, ev.Desc)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

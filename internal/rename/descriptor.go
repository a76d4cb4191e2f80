// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rename

import (
	"errors"
	"strings"
)

// TypeMapper maps one internal class name.
type TypeMapper func(name string) (string, error)

// MapDesc rewrites every class name in a field descriptor with mapType.
func MapDesc(desc string, mapType TypeMapper) (string, error) {
	var b strings.Builder
	b.Grow(len(desc))
	rest, err := appendFieldType(&b, desc, mapType, false)
	if err != nil {
		return "", err
	}
	if rest != "" {
		return "", malformedDesc(desc)
	}
	return b.String(), nil
}

// MapMethodDesc rewrites every class name in a method descriptor with
// mapType.
func MapMethodDesc(desc string, mapType TypeMapper) (string, error) {
	if desc == "()V" {
		return desc, nil
	}
	if !strings.HasPrefix(desc, "(") {
		return "", malformedDesc(desc)
	}
	var b strings.Builder
	b.Grow(len(desc))
	b.WriteByte('(')
	s := desc[1:]
	for {
		if s == "" {
			return "", malformedDesc(desc)
		}
		if s[0] == ')' {
			break
		}
		var err error
		if s, err = appendFieldType(&b, s, mapType, false); err != nil {
			return "", methodDescErr(desc, err)
		}
	}
	b.WriteByte(')')
	rest, err := appendFieldType(&b, s[1:], mapType, true)
	if err != nil {
		return "", methodDescErr(desc, err)
	}
	if rest != "" {
		return "", malformedDesc(desc)
	}
	return b.String(), nil
}

// methodDescErr reports parse failures against the whole method
// descriptor and passes mapper failures through.
func methodDescErr(desc string, err error) error {
	if errors.Is(err, ErrMalformedDescriptor) {
		return malformedDesc(desc)
	}
	return err
}

// appendFieldType copies one field type from the front of s to b,
// mapping its class name, and returns the remainder of s.
func appendFieldType(b *strings.Builder, s string, mapType TypeMapper, allowVoid bool) (string, error) {
	orig := s
	dims := 0
	for s != "" && s[0] == '[' {
		dims++
		s = s[1:]
	}
	if s == "" {
		return "", malformedDesc(orig)
	}
	for i := 0; i < dims; i++ {
		b.WriteByte('[')
	}
	switch s[0] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		b.WriteByte(s[0])
		return s[1:], nil
	case 'V':
		if !allowVoid || dims > 0 {
			return "", malformedDesc(orig)
		}
		b.WriteByte('V')
		return s[1:], nil
	case 'L':
		end := strings.IndexByte(s, ';')
		if end < 2 {
			return "", malformedDesc(orig)
		}
		mapped, err := mapType(s[1:end])
		if err != nil {
			return "", err
		}
		b.WriteByte('L')
		b.WriteString(mapped)
		b.WriteByte(';')
		return s[end+1:], nil
	default:
		return "", malformedDesc(orig)
	}
}

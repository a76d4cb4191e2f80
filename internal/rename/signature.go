// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package rename

import "strings"

// MapSignature rewrites every class name in a generic signature with
// mapType. With isField set, sig is parsed as a single type signature
// (fields, local variables); otherwise as a class or method signature.
// Inner classes are mapped through their full binary name and emitted
// relative to the mapped outer class. An empty signature maps to itself.
func MapSignature(sig string, isField bool, mapType TypeMapper) (string, error) {
	if sig == "" {
		return "", nil
	}
	p := &sigParser{sig: sig, mapType: mapType}
	p.b.Grow(len(sig))

	var err error
	switch {
	case isField:
		err = p.javaType(false)
	default:
		err = p.classOrMethod()
	}
	if err != nil {
		return "", err
	}
	if p.pos != len(sig) {
		return "", malformedSig(sig, p.pos)
	}
	return p.b.String(), nil
}

type sigParser struct {
	sig     string
	pos     int
	b       strings.Builder
	mapType TypeMapper
}

func (p *sigParser) peek() byte {
	if p.pos >= len(p.sig) {
		return 0
	}
	return p.sig[p.pos]
}

func (p *sigParser) fail() error {
	return malformedSig(p.sig, p.pos)
}

// expect copies c or fails.
func (p *sigParser) expect(c byte) error {
	if p.peek() != c {
		return p.fail()
	}
	p.b.WriteByte(c)
	p.pos++
	return nil
}

func (p *sigParser) classOrMethod() error {
	if p.peek() == '<' {
		if err := p.typeParameters(); err != nil {
			return err
		}
	}
	if p.peek() == '(' {
		return p.method()
	}
	// Superclass followed by superinterfaces.
	for p.pos < len(p.sig) {
		if err := p.classType(); err != nil {
			return err
		}
	}
	return nil
}

func (p *sigParser) method() error {
	p.b.WriteByte('(')
	p.pos++
	for p.peek() != ')' {
		if p.pos >= len(p.sig) {
			return p.fail()
		}
		if err := p.javaType(false); err != nil {
			return err
		}
	}
	p.b.WriteByte(')')
	p.pos++
	if err := p.javaType(true); err != nil {
		return err
	}
	for p.peek() == '^' {
		p.b.WriteByte('^')
		p.pos++
		if err := p.referenceType(); err != nil {
			return err
		}
	}
	return nil
}

// typeParameters copies <T:bound:ibound;...> rewriting the bounds.
func (p *sigParser) typeParameters() error {
	p.b.WriteByte('<')
	p.pos++
	for p.peek() != '>' {
		end := strings.IndexByte(p.sig[p.pos:], ':')
		if end <= 0 {
			return p.fail()
		}
		p.b.WriteString(p.sig[p.pos : p.pos+end+1])
		p.pos += end + 1
		switch p.peek() {
		case 'L', '[', 'T':
			if err := p.referenceType(); err != nil {
				return err
			}
		}
		for p.peek() == ':' {
			p.b.WriteByte(':')
			p.pos++
			if err := p.referenceType(); err != nil {
				return err
			}
		}
	}
	p.b.WriteByte('>')
	p.pos++
	return nil
}

func (p *sigParser) javaType(allowVoid bool) error {
	switch c := p.peek(); c {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		p.b.WriteByte(c)
		p.pos++
		return nil
	case 'V':
		if !allowVoid {
			return p.fail()
		}
		p.b.WriteByte(c)
		p.pos++
		return nil
	default:
		return p.referenceType()
	}
}

func (p *sigParser) referenceType() error {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		end := strings.IndexByte(p.sig[p.pos:], ';')
		if end < 2 {
			return p.fail()
		}
		p.b.WriteString(p.sig[p.pos : p.pos+end+1])
		p.pos += end + 1
		return nil
	case '[':
		p.b.WriteByte('[')
		p.pos++
		return p.javaType(false)
	default:
		return p.fail()
	}
}

// classType rewrites Lpkg/Outer<args>.Inner<args>;
func (p *sigParser) classType() error {
	if err := p.expect('L'); err != nil {
		return err
	}
	name := p.identifier()
	if name == "" {
		return p.fail()
	}
	mapped, err := p.mapType(name)
	if err != nil {
		return err
	}
	p.b.WriteString(mapped)

	outer := name
	for {
		switch p.peek() {
		case '<':
			if err := p.typeArguments(); err != nil {
				return err
			}
		case '.':
			p.pos++
			inner := p.identifier()
			if inner == "" {
				return p.fail()
			}
			full := outer + "$" + inner
			remappedOuter, err := p.mapType(outer)
			if err != nil {
				return err
			}
			remappedOuter += "$"
			remapped, err := p.mapType(full)
			if err != nil {
				return err
			}
			idx := strings.LastIndexByte(remapped, '$') + 1
			if strings.HasPrefix(remapped, remappedOuter) {
				idx = len(remappedOuter)
			}
			p.b.WriteByte('.')
			p.b.WriteString(remapped[idx:])
			outer = full
		case ';':
			p.b.WriteByte(';')
			p.pos++
			return nil
		default:
			return p.fail()
		}
	}
}

func (p *sigParser) typeArguments() error {
	p.b.WriteByte('<')
	p.pos++
	for p.peek() != '>' {
		switch p.peek() {
		case 0:
			return p.fail()
		case '*':
			p.b.WriteByte('*')
			p.pos++
			continue
		case '+', '-':
			p.b.WriteByte(p.peek())
			p.pos++
		}
		if err := p.referenceType(); err != nil {
			return err
		}
	}
	p.b.WriteByte('>')
	p.pos++
	return nil
}

// identifier consumes a class name segment up to '<', '.' or ';'.
func (p *sigParser) identifier() string {
	start := p.pos
	for p.pos < len(p.sig) {
		switch p.sig[p.pos] {
		case '<', '.', ';':
			return p.sig[start:p.pos]
		}
		p.pos++
	}
	return p.sig[start:p.pos]
}

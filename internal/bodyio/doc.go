// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bodyio reads and writes body dumps: YAML documents holding the
// declarations of an original binary together with the method bodies to
// remap. It also renders bodies as text listings and diffs them.
//
// A dump looks like:
//
//	declarations:
//	  fields:
//	    - {owner: pkg/Bar, name: x, desc: I, access: [private]}
//	  methods:
//	    - {owner: pkg/Bar, name: get, desc: ()I, access: [public]}
//	bodies:
//	  - owner: pkg/Bar
//	    name: get
//	    desc: ()I
//	    access: [public]
//	    code:
//	      - {op: code}
//	      - {op: aload, var: 0}
//	      - {op: getfield, owner: pkg/Bar, name: x, desc: I}
//	      - {op: ireturn}
//	      - {op: maxs, maxStack: 1, maxLocals: 1}
//	      - {op: end}
//
// Instructions use their mnemonic as op. Structural events use code,
// label, line, frame, trycatch, localvar, maxs, parameter, annotation,
// paramannotation, annotationdefault and end. Constants are single-key
// maps such as {int: 5}, {type: Lpkg/Bar;} or {handle: {...}}. Frame
// entries are the keywords top, int, float, double, long, null and
// uninitThis, "uninit:<label>" for uninitialized objects, or a class name.
package bodyio

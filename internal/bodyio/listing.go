// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package bodyio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/go-remap/pkg/types"
)

// Listing renders a body as text, one event per line, in the style of a
// disassembler listing. Labels are flush left; everything else is
// indented two spaces.
func Listing(b types.MethodBody) string {
	var sb strings.Builder
	sb.WriteString(b.String())
	if names := b.Access.Names(types.Methods); len(names) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(names, " "))
	}
	sb.WriteByte('\n')
	for _, ev := range b.Events {
		if l, ok := ev.(types.LabelEvent); ok {
			fmt.Fprintf(&sb, "%s:\n", l.Label)
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(formatEvent(ev))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatEvent(ev types.Event) string {
	switch ev := ev.(type) {
	case types.Code:
		return "code"
	case types.End:
		return "end"
	case types.LineNumber:
		return fmt.Sprintf("line %d %s", ev.Line, ev.Start)
	case types.Maxs:
		return fmt.Sprintf("maxs stack=%d locals=%d", ev.MaxStack, ev.MaxLocals)
	case types.Frame:
		return fmt.Sprintf("frame %s locals=[%s] stack=[%s]", ev.Kind,
			strings.Join(encodeFrameEntries(ev.Local), " "),
			strings.Join(encodeFrameEntries(ev.Stack), " "))
	case types.TryCatchBlock:
		typ := ev.Type
		if typ == "" {
			typ = "*"
		}
		return fmt.Sprintf("trycatch %s %s %s %s", ev.Start, ev.End, ev.Handler, typ)
	case types.LocalVariable:
		s := fmt.Sprintf("localvar %d %s %s %s..%s", ev.Index, ev.Name, ev.Desc, ev.Start, ev.End)
		if ev.Signature != "" {
			s += " sig=" + ev.Signature
		}
		return s
	case types.Parameter:
		return strings.TrimSpace(fmt.Sprintf("parameter %s %s", ev.Name, strings.Join(ev.Access.Names(types.Fields), " ")))
	case types.Annotation:
		return fmt.Sprintf("annotation %s%s", formatAnnotation(ev.Annotation), visibility(ev.Visible))
	case types.ParameterAnnotation:
		return fmt.Sprintf("paramannotation %d %s%s", ev.Parameter, formatAnnotation(ev.Annotation), visibility(ev.Visible))
	case types.AnnotationDefault:
		return "annotationdefault " + formatElementValue(ev.Value)
	case types.Insn:
		return ev.Opcode.String()
	case types.IntInsn:
		return fmt.Sprintf("%s %d", ev.Opcode, ev.Operand)
	case types.VarInsn:
		return fmt.Sprintf("%s %d", ev.Opcode, ev.Var)
	case types.TypeInsn:
		return fmt.Sprintf("%s %s", ev.Opcode, ev.Type)
	case types.FieldInsn:
		return fmt.Sprintf("%s %s.%s %s", ev.Opcode, ev.Owner, ev.Name, ev.Desc)
	case types.MethodInsn:
		s := fmt.Sprintf("%s %s.%s %s", ev.Opcode, ev.Owner, ev.Name, ev.Desc)
		if ev.Interface && ev.Opcode != types.INVOKEINTERFACE {
			s += " itf"
		}
		return s
	case types.InvokeDynamicInsn:
		return fmt.Sprintf("invokedynamic %s %s %s [%s]", ev.Name, ev.Desc, formatHandle(ev.Bootstrap), formatValues(ev.Args))
	case types.JumpInsn:
		return fmt.Sprintf("%s %s", ev.Opcode, ev.Label)
	case types.LdcInsn:
		return "ldc " + formatValue(ev.Value)
	case types.IincInsn:
		return fmt.Sprintf("iinc %d %d", ev.Var, ev.Increment)
	case types.TableSwitchInsn:
		return fmt.Sprintf("tableswitch %d..%d [%s] default=%s", ev.Min, ev.Max, strings.Join(labelStrings(ev.Labels), " "), ev.Default)
	case types.LookupSwitchInsn:
		cases := make([]string, len(ev.Keys))
		for i, k := range ev.Keys {
			var l types.Label
			if i < len(ev.Labels) {
				l = ev.Labels[i]
			}
			cases[i] = fmt.Sprintf("%d:%s", k, l)
		}
		return fmt.Sprintf("lookupswitch [%s] default=%s", strings.Join(cases, " "), ev.Default)
	case types.MultiANewArrayInsn:
		return fmt.Sprintf("multianewarray %s %d", ev.Desc, ev.Dims)
	default:
		return fmt.Sprintf("?%T", ev)
	}
}

func visibility(visible bool) string {
	if visible {
		return ""
	}
	return " invisible"
}

func formatValue(v types.Value) string {
	switch v := v.(type) {
	case types.Int:
		return strconv.FormatInt(int64(v), 10)
	case types.Long:
		return strconv.FormatInt(int64(v), 10) + "L"
	case types.Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "F"
	case types.Double:
		return strconv.FormatFloat(float64(v), 'g', -1, 64) + "D"
	case types.String:
		return strconv.Quote(string(v))
	case types.Bool:
		return strconv.FormatBool(bool(v))
	case types.Byte:
		return fmt.Sprintf("(byte)%d", v)
	case types.Char:
		return fmt.Sprintf("(char)%d", v)
	case types.Short:
		return fmt.Sprintf("(short)%d", v)
	case types.Type:
		return v.Desc
	case types.Handle:
		return formatHandle(v)
	case types.ConstantDynamic:
		return fmt.Sprintf("condy %s %s %s [%s]", v.Name, v.Desc, formatHandle(v.Bootstrap), formatValues(v.Args))
	default:
		return fmt.Sprintf("?%T", v)
	}
}

func formatValues(vals []types.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}

func formatHandle(h types.Handle) string {
	s := fmt.Sprintf("%s %s.%s %s", h.Kind, h.Owner, h.Name, h.Desc)
	if h.Interface {
		s += " itf"
	}
	return s
}

func formatAnnotation(a types.NestedAnnotation) string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.Name + "=" + formatElementValue(el.Value)
	}
	return fmt.Sprintf("@%s(%s)", a.Desc, strings.Join(parts, ", "))
}

func formatElementValue(v types.AnnotationValue) string {
	switch v := v.(type) {
	case types.ConstValue:
		return formatValue(v.Value)
	case types.EnumValue:
		return v.Desc + "." + v.Name
	case types.NestedAnnotation:
		return formatAnnotation(v)
	case types.ArrayValue:
		parts := make([]string, len(v.Values))
		for i, elem := range v.Values {
			parts[i] = formatElementValue(elem)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("?%T", v)
	}
}

// Diff compares two listings line by line and returns them merged, with
// removed lines prefixed "- ", added lines "+ " and common lines "  ".
// It returns "" when the listings are identical.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

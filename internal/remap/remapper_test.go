// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package remap

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/petar-djukic/go-remap/internal/rename"
	"github.com/petar-djukic/go-remap/internal/symtab"
	"github.com/petar-djukic/go-remap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenamer tags every result so each call is visible in the output,
// and records the calls it receives.
type fakeRenamer struct {
	mu    sync.Mutex
	calls []string
}

var _ rename.Renamer = (*fakeRenamer)(nil)

func (f *fakeRenamer) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeRenamer) MapType(name string) (string, error) {
	f.record("MapType(%s)", name)
	return "T:" + name, nil
}

func (f *fakeRenamer) MapDesc(desc string) (string, error) {
	f.record("MapDesc(%s)", desc)
	return "D:" + desc, nil
}

func (f *fakeRenamer) MapMethodDesc(desc string) (string, error) {
	f.record("MapMethodDesc(%s)", desc)
	return "M:" + desc, nil
}

func (f *fakeRenamer) MapFieldName(owner, name, desc string, access types.Access) (string, error) {
	f.record("MapFieldName(%s,%s,%s,%d)", owner, name, desc, int(access))
	return fmt.Sprintf("F:%s#%d", name, int(access)), nil
}

func (f *fakeRenamer) MapMethodName(owner, name, desc string, access types.Access) (string, error) {
	f.record("MapMethodName(%s,%s,%s,%d)", owner, name, desc, int(access))
	return fmt.Sprintf("N:%s#%d", name, int(access)), nil
}

func (f *fakeRenamer) MapInvokeDynamicMethodName(name, desc string) (string, error) {
	f.record("MapInvokeDynamicMethodName(%s,%s)", name, desc)
	return "I:" + name, nil
}

func (f *fakeRenamer) MapValue(v types.Value) (types.Value, error) {
	f.record("MapValue(%v)", v)
	switch v := v.(type) {
	case types.String:
		return types.String("V:" + string(v)), nil
	case types.Handle:
		v.Owner = "H:" + v.Owner
		return v, nil
	default:
		return v, nil
	}
}

func (f *fakeRenamer) MapSignature(sig string, isField bool) (string, error) {
	f.record("MapSignature(%s,%t)", sig, isField)
	return "S:" + sig, nil
}

func sampleSymbols() *symtab.Table {
	b := symtab.NewBuilder()
	b.AddField(types.Declaration{Owner: "pkg/Bar", Name: "x", Desc: "I", Access: types.AccPrivate})
	b.AddField(types.Declaration{Owner: "pkg/Bar", Name: "out", Desc: "Lpkg/Bar;", Access: types.AccPublic | types.AccStatic})
	b.AddMethod(types.Declaration{Owner: "pkg/Bar", Name: "run", Desc: "(Lpkg/Bar;)V", Access: types.AccPublic})
	b.AddMethod(types.Declaration{Owner: "pkg/Bar", Name: "<init>", Desc: "()V", Access: types.AccPublic})
	return b.Freeze()
}

func barTable() *rename.Table {
	tbl := rename.NewTable()
	tbl.MapClass("pkg/Bar", "pkg/Baz")
	tbl.MapField("pkg/Bar", "x", "field_1")
	tbl.MapMethod("pkg/Bar", "run", "(Lpkg/Bar;)V", "func_1")
	return tbl
}

// sampleBody exercises every event kind.
func sampleBody() types.MethodBody {
	bsm := types.Handle{Kind: types.HInvokeStatic, Owner: "java/lang/invoke/LambdaMetafactory", Name: "metafactory",
		Desc: "(Ljava/lang/invoke/MethodHandles$Lookup;Ljava/lang/String;Ljava/lang/invoke/MethodType;Ljava/lang/invoke/MethodType;Ljava/lang/invoke/MethodHandle;Ljava/lang/invoke/MethodType;)Ljava/lang/invoke/CallSite;"}
	return types.MethodBody{
		Owner:  "pkg/Bar",
		Name:   "work",
		Desc:   "(Lpkg/Bar;)V",
		Access: types.AccPublic,
		Events: []types.Event{
			types.Parameter{Name: "other", Access: types.AccFinal},
			types.Annotation{Annotation: types.NestedAnnotation{
				Desc: "Lpkg/Marker;",
				Elements: []types.AnnotationElement{
					{Name: "value", Value: types.ConstValue{Value: types.Type{Desc: "Lpkg/Bar;"}}},
					{Name: "kind", Value: types.EnumValue{Desc: "Lpkg/Kind;", Name: "A"}},
				},
			}, Visible: true},
			types.ParameterAnnotation{Parameter: 0, Annotation: types.NestedAnnotation{Desc: "Lpkg/NotNull;"}},
			types.Code{},
			types.LabelEvent{Label: "L0"},
			types.LineNumber{Line: 10, Start: "L0"},
			types.VarInsn{Opcode: types.ALOAD, Var: 1},
			types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "x", Desc: "I"},
			types.IntInsn{Opcode: types.BIPUSH, Operand: 3},
			types.Insn{Opcode: types.NOP},
			types.JumpInsn{Opcode: types.IFEQ, Label: "L1"},
			types.TypeInsn{Opcode: types.NEW, Type: "pkg/Bar"},
			types.Insn{Opcode: types.DUP},
			types.MethodInsn{Opcode: types.INVOKESPECIAL, Owner: "pkg/Bar", Name: "<init>", Desc: "()V"},
			types.MethodInsn{Opcode: types.INVOKEVIRTUAL, Owner: "pkg/Bar", Name: "run", Desc: "(Lpkg/Bar;)V"},
			types.InvokeDynamicInsn{Name: "run", Desc: "()Ljava/lang/Runnable;", Bootstrap: bsm, Args: []types.Value{
				types.Type{Desc: "()V"},
				types.Handle{Kind: types.HInvokeVirtual, Owner: "pkg/Bar", Name: "run", Desc: "(Lpkg/Bar;)V"},
				types.Type{Desc: "()V"},
			}},
			types.LdcInsn{Value: types.Type{Desc: "Lpkg/Bar;"}},
			types.LdcInsn{Value: types.String("hello")},
			types.IincInsn{Var: 2, Increment: 1},
			types.TableSwitchInsn{Min: 0, Max: 1, Default: "L1", Labels: []types.Label{"L0", "L1"}},
			types.LookupSwitchInsn{Default: "L1", Keys: []int{7}, Labels: []types.Label{"L0"}},
			types.MultiANewArrayInsn{Desc: "[[Lpkg/Bar;", Dims: 2},
			types.LabelEvent{Label: "L1"},
			types.Frame{Kind: types.FrameFull,
				Local: []types.FrameEntry{types.ClassEntry("pkg/Bar"), types.Integer},
				Stack: []types.FrameEntry{types.Uninitialized{Label: "L0"}}},
			types.Frame{Kind: types.FrameSame},
			types.Insn{Opcode: types.RETURN},
			types.TryCatchBlock{Start: "L0", End: "L1", Handler: "L1", Type: "java/lang/Exception"},
			types.TryCatchBlock{Start: "L0", End: "L1", Handler: "L1"},
			types.LocalVariable{Name: "this", Desc: "Lpkg/Bar;", Signature: "Lpkg/Bar<TT;>;", Start: "L0", End: "L1", Index: 0},
			types.Maxs{MaxStack: 4, MaxLocals: 3},
			types.End{},
		},
	}
}

func TestRemapper_IdentityLaw(t *testing.T) {
	body := sampleBody()
	r := New(sampleSymbols(), rename.NewTable())

	got, err := r.RemapBody(body)
	require.NoError(t, err)
	assert.Equal(t, sampleBody(), got)
}

func TestRemapper_RemapBody(t *testing.T) {
	r := New(sampleSymbols(), barTable())

	got, err := r.RemapBody(sampleBody())
	require.NoError(t, err)
	require.Len(t, got.Events, len(sampleBody().Events))

	assert.Equal(t, "pkg/Bar", got.Owner, "header is not rewritten")
	assert.Equal(t, "(Lpkg/Bar;)V", got.Desc, "header is not rewritten")

	assert.Equal(t, types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Baz", Name: "field_1", Desc: "I"}, got.Events[7])
	assert.Equal(t, types.TypeInsn{Opcode: types.NEW, Type: "pkg/Baz"}, got.Events[11])
	assert.Equal(t, types.MethodInsn{Opcode: types.INVOKESPECIAL, Owner: "pkg/Baz", Name: "<init>", Desc: "()V"}, got.Events[13])
	assert.Equal(t, types.MethodInsn{Opcode: types.INVOKEVIRTUAL, Owner: "pkg/Baz", Name: "func_1", Desc: "(Lpkg/Baz;)V"}, got.Events[14])

	indy, ok := got.Events[15].(types.InvokeDynamicInsn)
	require.True(t, ok)
	assert.Equal(t, types.Handle{Kind: types.HInvokeVirtual, Owner: "pkg/Baz", Name: "func_1", Desc: "(Lpkg/Baz;)V"}, indy.Args[1])

	assert.Equal(t, types.LdcInsn{Value: types.Type{Desc: "Lpkg/Baz;"}}, got.Events[16])
	assert.Equal(t, types.LdcInsn{Value: types.String("hello")}, got.Events[17])
	assert.Equal(t, types.MultiANewArrayInsn{Desc: "[[Lpkg/Baz;", Dims: 2}, got.Events[21])
	assert.Equal(t, types.LocalVariable{Name: "this", Desc: "Lpkg/Baz;", Signature: "Lpkg/Baz<TT;>;", Start: "L0", End: "L1", Index: 0}, got.Events[28])

	ann, ok := got.Events[1].(types.Annotation)
	require.True(t, ok)
	assert.Equal(t, types.ConstValue{Value: types.Type{Desc: "Lpkg/Baz;"}}, ann.Annotation.Elements[0].Value)
}

func TestRemapper_ResolvedReferenceLaw(t *testing.T) {
	f := &fakeRenamer{}
	r := New(sampleSymbols(), f)

	got, err := r.Remap(types.FieldInsn{Opcode: types.PUTFIELD, Owner: "pkg/Bar", Name: "x", Desc: "I"})
	require.NoError(t, err)
	assert.Equal(t, types.FieldInsn{
		Opcode: types.PUTFIELD,
		Owner:  "T:pkg/Bar",
		Name:   fmt.Sprintf("F:x#%d", int(types.AccPrivate)),
		Desc:   "D:I",
	}, got)

	got, err = r.Remap(types.MethodInsn{Opcode: types.INVOKEINTERFACE, Owner: "pkg/Bar", Name: "run", Desc: "(Lpkg/Bar;)V", Interface: true})
	require.NoError(t, err)
	assert.Equal(t, types.MethodInsn{
		Opcode:    types.INVOKEINTERFACE,
		Owner:     "T:pkg/Bar",
		Name:      fmt.Sprintf("N:run#%d", int(types.AccPublic)),
		Desc:      "M:(Lpkg/Bar;)V",
		Interface: true,
	}, got)

	got, err = r.Remap(types.FieldInsn{Opcode: types.GETSTATIC, Owner: "pkg/Bar", Name: "out", Desc: "Lpkg/Bar;"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("F:out#%d", int(types.AccPublic|types.AccStatic)), got.(types.FieldInsn).Name)
}

func TestRemapper_MissingReferenceLaw(t *testing.T) {
	tests := []struct {
		name      string
		ev        types.Event
		partition types.Partition
	}{
		{"unknown field", types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "y", Desc: "I"}, types.Fields},
		{"field with other descriptor", types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "x", Desc: "J"}, types.Fields},
		{"method on other owner", types.MethodInsn{Opcode: types.INVOKEVIRTUAL, Owner: "pkg/Sub", Name: "run", Desc: "(Lpkg/Bar;)V"}, types.Methods},
		{"field name as method", types.MethodInsn{Opcode: types.INVOKEVIRTUAL, Owner: "pkg/Bar", Name: "x", Desc: "I"}, types.Methods},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRenamer{}
			r := New(sampleSymbols(), f)

			_, err := r.Remap(tt.ev)
			require.Error(t, err)
			assert.ErrorIs(t, err, symtab.ErrNoDeclaration)

			var lookupErr *symtab.LookupError
			require.True(t, errors.As(err, &lookupErr))
			assert.Equal(t, tt.partition, lookupErr.Partition)
			switch ev := tt.ev.(type) {
			case types.FieldInsn:
				assert.Equal(t, [3]string{ev.Owner, ev.Name, ev.Desc}, [3]string{lookupErr.Owner, lookupErr.Name, lookupErr.Desc})
			case types.MethodInsn:
				assert.Equal(t, [3]string{ev.Owner, ev.Name, ev.Desc}, [3]string{lookupErr.Owner, lookupErr.Name, lookupErr.Desc})
			}
			assert.Empty(t, f.calls, "renamer must not be consulted for unresolved references")
		})
	}
}

func TestRemapper_RemapBodyAllOrNothing(t *testing.T) {
	body := sampleBody()
	body.Events = append(body.Events[:len(body.Events)-1],
		types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "missing", Desc: "I"},
		types.End{})

	got, err := New(sampleSymbols(), barTable()).RemapBody(body)
	require.Error(t, err)
	assert.ErrorIs(t, err, symtab.ErrNoDeclaration)
	assert.Empty(t, got.Events)
	assert.Empty(t, got.Owner)
}

func TestRemapper_FrameCopyOnWrite(t *testing.T) {
	r := New(sampleSymbols(), barTable())

	t.Run("no class entries shares the input", func(t *testing.T) {
		local := []types.FrameEntry{types.Integer, types.Top, types.Uninitialized{Label: "L2"}, types.UninitializedThis}
		in := types.Frame{Kind: types.FrameFull, Local: local}

		got, err := r.Remap(in)
		require.NoError(t, err)
		frame := got.(types.Frame)
		require.Len(t, frame.Local, len(local))
		assert.True(t, &frame.Local[0] == &local[0], "expected the same backing array")
		assert.Nil(t, frame.Stack)
	})

	t.Run("class entries build a new array", func(t *testing.T) {
		local := []types.FrameEntry{types.Integer, types.ClassEntry("pkg/Bar"), types.Uninitialized{Label: "L2"}, types.ClassEntry("[Lpkg/Bar;"), types.Null}
		stack := []types.FrameEntry{types.LongTag, types.ClassEntry("java/lang/String")}
		in := types.Frame{Kind: types.FrameFull, Local: local, Stack: stack}

		got, err := r.Remap(in)
		require.NoError(t, err)
		frame := got.(types.Frame)

		assert.Equal(t, []types.FrameEntry{
			types.Integer, types.ClassEntry("pkg/Baz"), types.Uninitialized{Label: "L2"}, types.ClassEntry("[Lpkg/Baz;"), types.Null,
		}, frame.Local)
		assert.False(t, &frame.Local[0] == &local[0], "expected a new backing array")
		assert.Equal(t, types.ClassEntry("pkg/Bar"), local[1], "input must not be mutated")

		assert.Equal(t, []types.FrameEntry{types.LongTag, types.ClassEntry("java/lang/String")}, frame.Stack)
		assert.False(t, &frame.Stack[0] == &stack[0], "class entry present, so a copy is made even when unchanged")
	})

	t.Run("each class entry mapped once", func(t *testing.T) {
		f := &fakeRenamer{}
		fr := New(sampleSymbols(), f)
		got, err := fr.Remap(types.Frame{Kind: types.FrameAppend, Local: []types.FrameEntry{types.FloatTag, types.ClassEntry("a/A"), types.ClassEntry("b/B")}})
		require.NoError(t, err)
		assert.Equal(t, []string{"MapType(a/A)", "MapType(b/B)"}, f.calls)
		assert.Equal(t, []types.FrameEntry{types.FloatTag, types.ClassEntry("T:a/A"), types.ClassEntry("T:b/B")}, got.(types.Frame).Local)
	})
}

func TestRemapper_CatchAllLaw(t *testing.T) {
	f := &fakeRenamer{}
	r := New(sampleSymbols(), f)

	in := types.TryCatchBlock{Start: "L0", End: "L1", Handler: "L2"}
	got, err := r.Remap(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.Empty(t, f.calls)

	got, err = r.Remap(types.TryCatchBlock{Start: "L0", End: "L1", Handler: "L2", Type: "java/io/IOException"})
	require.NoError(t, err)
	assert.Equal(t, "T:java/io/IOException", got.(types.TryCatchBlock).Type)
	assert.Equal(t, []string{"MapType(java/io/IOException)"}, f.calls)
}

func TestRemapper_DynamicCallSiteLaw(t *testing.T) {
	f := &fakeRenamer{}
	r := New(sampleSymbols(), f)
	bsm := types.Handle{Kind: types.HInvokeStatic, Owner: "pkg/Boot", Name: "boot", Desc: "()V"}
	args := []types.Value{types.String("first"), types.String("second")}

	got, err := r.Remap(types.InvokeDynamicInsn{Name: "target", Desc: "()V", Bootstrap: bsm, Args: args})
	require.NoError(t, err)

	indy := got.(types.InvokeDynamicInsn)
	assert.Equal(t, "I:target", indy.Name)
	assert.Equal(t, "M:()V", indy.Desc)
	assert.Equal(t, []types.Value{types.String("V:first"), types.String("V:second")}, indy.Args)
	assert.Equal(t, "H:pkg/Boot", indy.Bootstrap.Owner)
	assert.Equal(t, []types.Value{types.String("first"), types.String("second")}, args, "input must not be mutated")

	assert.Equal(t, []string{
		"MapValue(first)",
		"MapValue(second)",
		"MapInvokeDynamicMethodName(target,()V)",
		"MapMethodDesc(()V)",
		fmt.Sprintf("MapValue(%v)", bsm),
	}, f.calls)
}

type stringBootstrap struct{ fakeRenamer }

func (s *stringBootstrap) MapValue(v types.Value) (types.Value, error) {
	if _, ok := v.(types.Handle); ok {
		return types.String("not a handle"), nil
	}
	return v, nil
}

func TestRemapper_BootstrapMustStayHandle(t *testing.T) {
	r := New(sampleSymbols(), &stringBootstrap{})

	_, err := r.Remap(types.InvokeDynamicInsn{Name: "x", Desc: "()V", Bootstrap: types.Handle{Kind: types.HInvokeStatic}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBootstrapNotHandle)
}

func TestRemapper_FieldScenario(t *testing.T) {
	r := New(sampleSymbols(), barTable())

	got, err := r.Remap(types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "x", Desc: "I"})
	require.NoError(t, err)
	assert.Equal(t, types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Baz", Name: "field_1", Desc: "I"}, got)
}

func TestRemapper_MultiANewArrayScenario(t *testing.T) {
	r := New(sampleSymbols(), barTable())

	got, err := r.Remap(types.MultiANewArrayInsn{Desc: "[[Lpkg/Bar;", Dims: 2})
	require.NoError(t, err)
	assert.Equal(t, types.MultiANewArrayInsn{Desc: "[[Lpkg/Baz;", Dims: 2}, got)
}

func TestRemapper_LocalVariable(t *testing.T) {
	f := &fakeRenamer{}
	r := New(sampleSymbols(), f)

	got, err := r.Remap(types.LocalVariable{Name: "list", Desc: "Ljava/util/List;", Signature: "Ljava/util/List<Lpkg/Bar;>;", Start: "L0", End: "L9", Index: 4})
	require.NoError(t, err)
	assert.Equal(t, types.LocalVariable{
		Name: "list", Desc: "D:Ljava/util/List;", Signature: "S:Ljava/util/List<Lpkg/Bar;>;", Start: "L0", End: "L9", Index: 4,
	}, got)
	assert.Contains(t, f.calls, "MapSignature(Ljava/util/List<Lpkg/Bar;>;,true)")
}

func TestRemapper_Annotations(t *testing.T) {
	r := New(sampleSymbols(), barTable())

	in := types.NestedAnnotation{
		Desc: "Lpkg/Bar;",
		Elements: []types.AnnotationElement{
			{Name: "type", Value: types.ConstValue{Value: types.Type{Desc: "[Lpkg/Bar;"}}},
			{Name: "num", Value: types.ConstValue{Value: types.Int(1)}},
			{Name: "mode", Value: types.EnumValue{Desc: "Lpkg/Bar;", Name: "FAST"}},
			{Name: "inner", Value: types.NestedAnnotation{Desc: "Lpkg/Bar;", Elements: []types.AnnotationElement{
				{Name: "deep", Value: types.ConstValue{Value: types.Type{Desc: "Lpkg/Bar;"}}},
			}}},
			{Name: "list", Value: types.ArrayValue{Values: []types.AnnotationValue{
				types.EnumValue{Desc: "Lpkg/Bar;", Name: "A"},
				types.ArrayValue{},
			}}},
		},
	}
	want := types.NestedAnnotation{
		Desc: "Lpkg/Baz;",
		Elements: []types.AnnotationElement{
			{Name: "type", Value: types.ConstValue{Value: types.Type{Desc: "[Lpkg/Baz;"}}},
			{Name: "num", Value: types.ConstValue{Value: types.Int(1)}},
			{Name: "mode", Value: types.EnumValue{Desc: "Lpkg/Baz;", Name: "FAST"}},
			{Name: "inner", Value: types.NestedAnnotation{Desc: "Lpkg/Baz;", Elements: []types.AnnotationElement{
				{Name: "deep", Value: types.ConstValue{Value: types.Type{Desc: "Lpkg/Baz;"}}},
			}}},
			{Name: "list", Value: types.ArrayValue{Values: []types.AnnotationValue{
				types.EnumValue{Desc: "Lpkg/Baz;", Name: "A"},
				types.ArrayValue{},
			}}},
		},
	}

	tests := []struct {
		name string
		in   types.Event
		want types.Event
	}{
		{"method annotation", types.Annotation{Annotation: in, Visible: true}, types.Annotation{Annotation: want, Visible: true}},
		{"parameter annotation", types.ParameterAnnotation{Parameter: 2, Annotation: in}, types.ParameterAnnotation{Parameter: 2, Annotation: want}},
		{"annotation default", types.AnnotationDefault{Value: in}, types.AnnotationDefault{Value: want}},
		{"enum default", types.AnnotationDefault{Value: types.EnumValue{Desc: "Lpkg/Bar;", Name: "B"}}, types.AnnotationDefault{Value: types.EnumValue{Desc: "Lpkg/Baz;", Name: "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Remap(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemapper_RenamingFailurePropagates(t *testing.T) {
	r := New(sampleSymbols(), barTable())

	tests := []struct {
		name    string
		ev      types.Event
		wantErr error
	}{
		{"multianewarray", types.MultiANewArrayInsn{Desc: "[[Lpkg/Bar", Dims: 2}, rename.ErrMalformedDescriptor},
		{"local variable signature", types.LocalVariable{Name: "v", Desc: "I", Signature: "Lpkg/Bar"}, rename.ErrMalformedSignature},
		{"ldc method type", types.LdcInsn{Value: types.Type{Desc: "(I"}}, rename.ErrMalformedDescriptor},
		{"annotation", types.Annotation{Annotation: types.NestedAnnotation{Desc: "Q"}}, rename.ErrMalformedDescriptor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Remap(tt.ev)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type foreignEvent struct{ types.Code }

func TestRemapper_UnknownEvent(t *testing.T) {
	r := New(sampleSymbols(), barTable())

	_, err := r.Remap(foreignEvent{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestRemapper_Stream(t *testing.T) {
	r := New(sampleSymbols(), barTable())
	events := []types.Event{
		types.Code{},
		types.TypeInsn{Opcode: types.CHECKCAST, Type: "pkg/Bar"},
		types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "nope", Desc: "I"},
		types.End{},
	}

	var got []types.Event
	err := r.Stream(events, SinkFunc(func(ev types.Event) error {
		got = append(got, ev)
		return nil
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, symtab.ErrNoDeclaration)
	assert.Equal(t, []types.Event{types.Code{}, types.TypeInsn{Opcode: types.CHECKCAST, Type: "pkg/Baz"}}, got)
}

func TestRemapper_StreamSinkError(t *testing.T) {
	r := New(sampleSymbols(), barTable())
	errFull := errors.New("sink full")

	calls := 0
	err := r.Stream(sampleBody().Events, SinkFunc(func(types.Event) error {
		calls++
		if calls == 3 {
			return errFull
		}
		return nil
	}))
	assert.ErrorIs(t, err, errFull)
	assert.Equal(t, 3, calls)
}

func TestRemapper_Concurrent(t *testing.T) {
	r := New(sampleSymbols(), barTable())
	want, err := r.RemapBody(sampleBody())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.RemapBody(sampleBody())
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestUnresolved(t *testing.T) {
	events := []types.Event{
		types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "x", Desc: "I"},
		types.FieldInsn{Opcode: types.GETFIELD, Owner: "pkg/Bar", Name: "y", Desc: "I"},
		types.TypeInsn{Opcode: types.NEW, Type: "pkg/Nowhere"},
		types.MethodInsn{Opcode: types.INVOKESTATIC, Owner: "pkg/Util", Name: "help", Desc: "()V"},
	}

	errs := Unresolved(sampleSymbols(), events)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "pkg/Bar y I")
	assert.Contains(t, errs[1].Error(), "pkg/Util help ()V")

	assert.Empty(t, Unresolved(sampleSymbols(), sampleBody().Events))
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symtab

import (
	"errors"
	"sync"
	"testing"

	"github.com/petar-djukic/go-remap/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestTable(t *testing.T) *Table {
	t.Helper()
	b := NewBuilder()
	b.AddField(types.Declaration{Owner: "pkg/Bar", Name: "x", Desc: "I", Access: types.AccPrivate})
	b.AddField(types.Declaration{Owner: "pkg/Bar", Name: "x", Desc: "J", Access: types.AccPublic})
	b.AddField(types.Declaration{Owner: "pkg/Foo", Name: "x", Desc: "I", Access: types.AccProtected})
	b.AddMethod(types.Declaration{Owner: "pkg/Bar", Name: "run", Desc: "()V", Access: types.AccPublic})
	b.AddMethod(types.Declaration{Owner: "pkg/Bar", Name: "run", Desc: "(I)V", Access: types.AccPrivate | types.AccStatic})
	return b.Freeze()
}

func TestTable_Find(t *testing.T) {
	st := buildTestTable(t)

	tests := []struct {
		name       string
		partition  types.Partition
		owner      string
		member     string
		desc       string
		wantAccess types.Access
	}{
		{
			name:       "private int field",
			partition:  types.Fields,
			owner:      "pkg/Bar",
			member:     "x",
			desc:       "I",
			wantAccess: types.AccPrivate,
		},
		{
			name:       "same name different descriptor",
			partition:  types.Fields,
			owner:      "pkg/Bar",
			member:     "x",
			desc:       "J",
			wantAccess: types.AccPublic,
		},
		{
			name:       "same name different owner",
			partition:  types.Fields,
			owner:      "pkg/Foo",
			member:     "x",
			desc:       "I",
			wantAccess: types.AccProtected,
		},
		{
			name:       "overloaded method",
			partition:  types.Methods,
			owner:      "pkg/Bar",
			member:     "run",
			desc:       "(I)V",
			wantAccess: types.AccPrivate | types.AccStatic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := st.Find(tt.partition, tt.owner, tt.member, tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.owner, d.Owner)
			assert.Equal(t, tt.member, d.Name)
			assert.Equal(t, tt.desc, d.Desc)
			assert.Equal(t, tt.wantAccess, d.Access)
		})
	}
}

func TestTable_FindMissing(t *testing.T) {
	st := buildTestTable(t)

	tests := []struct {
		name      string
		partition types.Partition
		owner     string
		member    string
		desc      string
	}{
		{"unknown owner", types.Fields, "pkg/Nope", "x", "I"},
		{"unknown descriptor", types.Fields, "pkg/Bar", "x", "Z"},
		{"method looked up as field", types.Fields, "pkg/Bar", "run", "()V"},
		{"field looked up as method", types.Methods, "pkg/Bar", "x", "I"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.Find(tt.partition, tt.owner, tt.member, tt.desc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoDeclaration))

			var lerr *LookupError
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.partition, lerr.Partition)
			assert.Equal(t, tt.owner, lerr.Owner)
			assert.Equal(t, tt.member, lerr.Name)
			assert.Equal(t, tt.desc, lerr.Desc)
			assert.Contains(t, err.Error(), tt.owner+" "+tt.member+" "+tt.desc)
		})
	}
}

func TestTable_FirstMatchWins(t *testing.T) {
	b := NewBuilder()
	b.AddField(types.Declaration{Owner: "a/A", Name: "f", Desc: "I", Access: types.AccPrivate})
	b.AddField(types.Declaration{Owner: "a/A", Name: "f", Desc: "I", Access: types.AccPublic})
	st := b.Freeze()

	d, err := st.Find(types.Fields, "a/A", "f", "I")
	require.NoError(t, err)
	assert.Equal(t, types.AccPrivate, d.Access)

	assert.Equal(t, 2, st.Len(types.Fields))
	dups := st.Duplicates(types.Fields)
	require.Len(t, dups, 1)
	assert.Equal(t, types.AccPublic, dups[0].Access)
}

func TestTable_All(t *testing.T) {
	st := buildTestTable(t)

	fields := st.All(types.Fields)
	require.Len(t, fields, 3)
	assert.Equal(t, "pkg/Bar", fields[0].Owner)
	assert.Equal(t, "pkg/Foo", fields[2].Owner)

	// The returned slice is a copy.
	fields[0].Name = "changed"
	d, err := st.Find(types.Fields, "pkg/Bar", "x", "I")
	require.NoError(t, err)
	assert.Equal(t, "x", d.Name)

	assert.Equal(t, 2, st.Len(types.Methods))
	assert.Empty(t, st.Duplicates(types.Methods))
}

func TestBuilder_AddAfterFreezePanics(t *testing.T) {
	b := NewBuilder()
	b.Freeze()
	assert.Panics(t, func() {
		b.AddField(types.Declaration{Owner: "a/A", Name: "f", Desc: "I"})
	})
}

func TestTable_ConcurrentFind(t *testing.T) {
	st := buildTestTable(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := st.Find(types.Methods, "pkg/Bar", "run", "()V")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

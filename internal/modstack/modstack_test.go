package modstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biologicinstitute/stylus/internal/acid"
)

func TestStack_PushPop(t *testing.T) {
	var s Stack
	s.Push(Modification{Kind: KindChange, Pos: 3, Bases: []acid.Base{acid.A}})
	require.Equal(t, 1, s.Len())
	m, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, KindChange, m.Kind)
	assert.Equal(t, 0, s.Len())

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestStack_MarkAndRollbackTo(t *testing.T) {
	var s Stack
	s.Push(Modification{Kind: KindChange, Pos: 1})
	mark := s.Mark()
	s.Push(Modification{Kind: KindInsert, Pos: 2})
	s.Push(Modification{Kind: KindDelete, Pos: 3})

	undone := s.RollbackTo(mark)
	require.Len(t, undone, 2)
	assert.Equal(t, KindDelete, undone[0].Kind) // reverse order: most recent first
	assert.Equal(t, KindInsert, undone[1].Kind)
	assert.Equal(t, 1, s.Len())
}

func TestStack_EntriesIsACopy(t *testing.T) {
	var s Stack
	s.Push(Modification{Kind: KindCopy, Src: 1, Dst: 5})
	entries := s.Entries()
	entries[0].Pos = 999
	assert.NotEqual(t, entries[0].Pos, s.entries[0].Pos)
}

func basesOf(s string) []acid.Base {
	out := make([]acid.Base, len(s))
	for i := 0; i < len(s); i++ {
		b, _ := acid.BaseIndex(s[i])
		out[i] = b
	}
	return out
}

func TestModification_ChangeInvertRoundTrips(t *testing.T) {
	bases := basesOf("ATGC")
	m := NewChange(bases, 1, basesOf("G"))
	applied := m.Apply(bases)
	assert.Equal(t, basesOf("AGGC"), applied)
	assert.Equal(t, bases, m.Invert(applied))
}

func TestModification_DeleteInvertRoundTrips(t *testing.T) {
	bases := basesOf("ATGCA")
	m := NewDelete(bases, 1, 2)
	applied := m.Apply(bases)
	assert.Equal(t, basesOf("ACA"), applied)
	assert.Equal(t, bases, m.Invert(applied))
}

func TestModification_InsertInvertRoundTrips(t *testing.T) {
	bases := basesOf("ATCA")
	m := NewInsert(2, basesOf("GG"))
	applied := m.Apply(bases)
	assert.Equal(t, basesOf("ATGGCA"), applied)
	assert.Equal(t, bases, m.Invert(applied))
}

func TestModification_TransposeInvertRoundTrips(t *testing.T) {
	bases := basesOf("AATTCCGG")
	m := NewTranspose(0, 4, 2)
	applied := m.Apply(bases)
	assert.Equal(t, basesOf("CCTTAAGG"), applied)
	assert.Equal(t, bases, m.Invert(applied))
}

func TestStack_RollbackBasesToRestoresBases(t *testing.T) {
	var s Stack
	bases := basesOf("ATGCA")
	mark := s.Mark()

	m1 := NewChange(bases, 0, basesOf("G"))
	bases = m1.Apply(bases)
	s.Push(m1)

	m2 := NewDelete(bases, 2, 2)
	bases = m2.Apply(bases)
	s.Push(m2)

	restored := s.RollbackBasesTo(mark, bases)
	assert.Equal(t, basesOf("ATGCA"), restored)
	assert.Equal(t, 0, s.Len())
}

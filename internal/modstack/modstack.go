// Package modstack implements the genome's modification stack: every base
// change a plan applies is recorded, together with enough of the bases it
// overwrote, so it can be rolled back individually or in batches and the
// genome's bases actually restored (spec.md §4.3).
package modstack

import "github.com/biologicinstitute/stylus/internal/acid"

// Kind tags which of the five modification shapes a Modification carries.
type Kind int

const (
	KindChange Kind = iota
	KindCopy
	KindDelete
	KindInsert
	KindTranspose
)

// RollbackType distinguishes why a batch of modifications is being undone,
// mirroring spec.md §4.3's three rollback scopes.
type RollbackType int

const (
	// RollbackAttempt undoes a single proposed-and-rejected mutation.
	RollbackAttempt RollbackType = iota
	// RollbackConsideration undoes every attempt made while evaluating one
	// mutation candidate (a candidate may apply several Modifications).
	RollbackConsideration
	// RollbackCombined undoes an entire accepted-then-reverted trial step.
	RollbackCombined
)

// Modification is a tagged union over the five ways a plan can edit a
// genome's bases. Exactly the fields relevant to Kind are meaningful; the
// others are zero. PrevBases is the pre-image of whatever bases the
// modification overwrote or removed, captured at construction time, so
// Invert can restore the genome's bases exactly rather than only unwinding
// the log.
type Modification struct {
	Kind Kind

	Pos    int // Change/Delete/Insert: base position
	Length int // Delete/Copy/Transpose: span length
	Src    int // Copy/Transpose: source position
	Dst    int // Copy/Transpose: destination position

	Bases     []acid.Base // Change/Insert: replacement/inserted bases
	PrevBases []acid.Base // Change/Delete/Copy: bases before the edit
}

// NewChange records an in-place base substitution at pos, capturing the
// bases it overwrites from bases for later inversion.
func NewChange(bases []acid.Base, pos int, replacement []acid.Base) Modification {
	prev := append([]acid.Base(nil), bases[pos:pos+len(replacement)]...)
	return Modification{
		Kind:      KindChange,
		Pos:       pos,
		Bases:     append([]acid.Base(nil), replacement...),
		PrevBases: prev,
	}
}

// NewDelete records the removal of length bases starting at pos, capturing
// the removed run for later re-insertion.
func NewDelete(bases []acid.Base, pos, length int) Modification {
	prev := append([]acid.Base(nil), bases[pos:pos+length]...)
	return Modification{Kind: KindDelete, Pos: pos, Length: length, PrevBases: prev}
}

// NewInsert records inserting the given bases at pos.
func NewInsert(pos int, inserted []acid.Base) Modification {
	return Modification{Kind: KindInsert, Pos: pos, Bases: append([]acid.Base(nil), inserted...)}
}

// NewCopy records overwriting the length bases at dst with the length
// bases currently at src, capturing dst's prior content for inversion.
func NewCopy(bases []acid.Base, src, dst, length int) Modification {
	prev := append([]acid.Base(nil), bases[dst:dst+length]...)
	return Modification{Kind: KindCopy, Src: src, Dst: dst, Length: length, PrevBases: prev}
}

// NewTranspose records exchanging the length-base runs at src and dst.
// Transposition is its own inverse, so no pre-image capture is needed.
func NewTranspose(src, dst, length int) Modification {
	return Modification{Kind: KindTranspose, Src: src, Dst: dst, Length: length}
}

// Apply returns bases with m performed.
func (m Modification) Apply(bases []acid.Base) []acid.Base {
	switch m.Kind {
	case KindChange:
		out := append([]acid.Base(nil), bases...)
		copy(out[m.Pos:m.Pos+len(m.Bases)], m.Bases)
		return out
	case KindDelete:
		out := append([]acid.Base(nil), bases[:m.Pos]...)
		return append(out, bases[m.Pos+m.Length:]...)
	case KindInsert:
		out := append([]acid.Base(nil), bases[:m.Pos]...)
		out = append(out, m.Bases...)
		return append(out, bases[m.Pos:]...)
	case KindCopy:
		out := append([]acid.Base(nil), bases...)
		copy(out[m.Dst:m.Dst+m.Length], bases[m.Src:m.Src+m.Length])
		return out
	case KindTranspose:
		return swapRuns(bases, m.Src, m.Dst, m.Length)
	default:
		return bases
	}
}

// Invert returns bases with m undone.
func (m Modification) Invert(bases []acid.Base) []acid.Base {
	switch m.Kind {
	case KindChange:
		out := append([]acid.Base(nil), bases...)
		copy(out[m.Pos:m.Pos+len(m.PrevBases)], m.PrevBases)
		return out
	case KindDelete:
		out := append([]acid.Base(nil), bases[:m.Pos]...)
		out = append(out, m.PrevBases...)
		return append(out, bases[m.Pos:]...)
	case KindInsert:
		out := append([]acid.Base(nil), bases[:m.Pos]...)
		return append(out, bases[m.Pos+len(m.Bases):]...)
	case KindCopy:
		out := append([]acid.Base(nil), bases...)
		copy(out[m.Dst:m.Dst+m.Length], m.PrevBases)
		return out
	case KindTranspose:
		return swapRuns(bases, m.Src, m.Dst, m.Length)
	default:
		return bases
	}
}

func swapRuns(bases []acid.Base, src, dst, length int) []acid.Base {
	out := append([]acid.Base(nil), bases...)
	tmp := append([]acid.Base(nil), out[src:src+length]...)
	copy(out[src:src+length], out[dst:dst+length])
	copy(out[dst:dst+length], tmp)
	return out
}

// Stack is an ordered, undoable log of Modifications applied to one
// genome's bases.
type Stack struct {
	entries []Modification
	marks   []int // stack depths at which a RollbackConsideration/Combined scope begins
}

// Push records m as applied.
func (s *Stack) Push(m Modification) {
	s.entries = append(s.entries, m)
}

// Mark records the current stack depth, to be paired with a later
// RollbackTo call — e.g. before proposing a mutation candidate, so a
// rejected candidate's Modifications can all be undone together.
func (s *Stack) Mark() int {
	depth := len(s.entries)
	s.marks = append(s.marks, depth)
	return depth
}

// Len reports how many Modifications are currently recorded.
func (s *Stack) Len() int { return len(s.entries) }

// Pop removes and returns the most recent Modification, for undoing a
// single-step RollbackAttempt.
func (s *Stack) Pop() (Modification, bool) {
	if len(s.entries) == 0 {
		return Modification{}, false
	}
	m := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return m, true
}

// PopBases undoes the single most recent Modification both in the log and
// on bases, the RollbackAttempt scope.
func (s *Stack) PopBases(bases []acid.Base) ([]acid.Base, bool) {
	m, ok := s.Pop()
	if !ok {
		return bases, false
	}
	return m.Invert(bases), true
}

// RollbackTo truncates the stack back to depth, the behavior
// RollbackConsideration and RollbackCombined both use (over however many
// Modifications accumulated since the matching Mark), and returns the
// undone entries in reverse (most-recent-first) application order so the
// caller can replay the inverse of each onto its genome bases.
func (s *Stack) RollbackTo(depth int) []Modification {
	if depth < 0 || depth > len(s.entries) {
		depth = 0
	}
	undone := make([]Modification, len(s.entries)-depth)
	for i := len(s.entries) - 1; i >= depth; i-- {
		undone[len(s.entries)-1-i] = s.entries[i]
	}
	s.entries = s.entries[:depth]
	return undone
}

// RollbackBasesTo is RollbackTo plus actually restoring bases: it replays
// each undone Modification's Invert, most-recent-first, onto bases and
// returns the result. This is what RollbackConsideration/RollbackCombined
// need in practice — the log alone doesn't move a single byte of the
// genome's sequence back.
func (s *Stack) RollbackBasesTo(depth int, bases []acid.Base) []acid.Base {
	for _, m := range s.RollbackTo(depth) {
		bases = m.Invert(bases)
	}
	return bases
}

// Entries returns the stack's current contents, oldest first.
func (s *Stack) Entries() []Modification {
	out := make([]Modification, len(s.entries))
	copy(out, s.entries)
	return out
}

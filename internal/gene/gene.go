// Package gene compiles a base range into acids, a polyline, strokes, and
// groups, and maps the result onto a reference Han glyph (spec.md §4.4).
package gene

import (
	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/geom"
	"github.com/biologicinstitute/stylus/internal/han"
)

// InvalidationFlag marks a gene's cached derived data as stale.
type InvalidationFlag int

const (
	FlagGeometry InvalidationFlag = 1 << iota
	FlagStrokes
	FlagOverlaps
	FlagScore
)

// InvalidationFlags is a bitset of InvalidationFlag values.
type InvalidationFlags int

// Set marks f as stale.
func (i *InvalidationFlags) Set(f InvalidationFlag) { *i |= InvalidationFlags(f) }

// Clear marks f as fresh.
func (i *InvalidationFlags) Clear(f InvalidationFlag) { *i &^= InvalidationFlags(f) }

// Has reports whether f is stale.
func (i InvalidationFlags) Has(f InvalidationFlag) bool { return i&InvalidationFlags(f) != 0 }

// ScaleFactors is the (sx, sy, sxy) scale-to-Han triple spec.md §4.5 names.
type ScaleFactors struct {
	SX, SY, SXY float64
	// InheritedX/InheritedY record whether a dimension was inherited from a
	// parent (group or gene) because the owner's own extent was
	// degenerate, excluding it from the group's scale-consistency penalty.
	InheritedX, InheritedY bool
}

// ExponentChannel names one of the weighted scoring channels spec.md §3/§4.9
// track at stroke-group or gene level.
type ExponentChannel int

const (
	ChanScale ExponentChannel = iota
	ChanPlacement
	ChanIllegalOverlaps
	ChanDeviation
	ChanExtraLength
	ChanMissingOverlaps
	ChanDropouts
	ChanMarks
)

// Stroke is a coherent run of acids within a gene, half-open over acid
// indices [Start, End).
type Stroke struct {
	Start, End  int
	GroupIndex  int
	HanStroke   int
	Scale       ScaleFactors
	DX, DY      float64
	Deviation   float64
	ExtraLength float64
	Dropouts    int
	Reversed    bool
	Exponents   map[ExponentChannel]float64
}

// Len returns the number of acids the stroke spans.
func (s Stroke) Len() int { return s.End - s.Start }

// Group is a Han-defined subset of strokes scored together.
type Group struct {
	StrokeIndices []int
	Scale         ScaleFactors
	DX, DY        float64
	Exponents     map[ExponentChannel]float64
}

// Gene is a named structural unit spanning [BaseFirst, BaseLast] (inclusive,
// 0-based) that compiles to a polyline and maps onto a Han reference glyph.
type Gene struct {
	Name      int
	BaseFirst int
	BaseLast  int

	Acids  []acid.AcidType
	Points []geom.Point

	Strokes []Stroke
	Marks   []Stroke // acid ranges excluded from stroke scoring
	Groups  []Group

	HanUnicode rune
	Han        *han.Han

	Scale ScaleFactors
	DX    float64
	DY    float64

	Exponents   map[ExponentChannel]float64
	Invalidated InvalidationFlags
}

// NonStopAcidCount returns the number of acids excluding the trailing STOP
// marker that always terminates a compiled gene's acid sequence.
func (g *Gene) NonStopAcidCount() int {
	if len(g.Acids) == 0 {
		return 0
	}
	return len(g.Acids) - 1
}

// Invalidate marks the gene (and by convention everything downstream of
// GEOMETRY) stale.
func (g *Gene) Invalidate(f InvalidationFlag) {
	g.Invalidated.Set(f)
	if f == FlagGeometry {
		g.Invalidated.Set(FlagStrokes)
		g.Invalidated.Set(FlagOverlaps)
		g.Invalidated.Set(FlagScore)
	}
	if f == FlagStrokes {
		g.Invalidated.Set(FlagOverlaps)
		g.Invalidated.Set(FlagScore)
	}
	if f == FlagOverlaps {
		g.Invalidated.Set(FlagScore)
	}
}

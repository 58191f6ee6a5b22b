package gene

import (
	"math"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/geom"
	"github.com/biologicinstitute/stylus/internal/han"
)

// Compile translates bases[baseFirst..baseLast] into a Gene: acids, a
// traced polyline, coherence-delimited strokes, mark classification, and a
// 1:1 mapping onto h's strokes (spec.md §4.4).
//
// The start codon itself (bases[baseFirst:baseFirst+3], which must be ATG)
// is consumed as a signal and does not contribute an entry to Acids: acid
// translation begins at the following codon and runs through the
// terminating STOP, which IS retained as the final entry of Acids. This
// matches the worked example in spec.md §8 scenario 1: bases "ATGTAA"
// (one codon after ATG, which is the stop) compiles to zero non-stop
// acids.
func Compile(name int, bases []acid.Base, baseFirst, baseLast int, table *acid.CodonTable, h *han.Han) (*Gene, error) {
	span := baseLast - baseFirst + 1
	if span < 6 || span%3 != 0 {
		return nil, ErrNotWholeCodons
	}
	if !acid.IsStart(acid.Codon{bases[baseFirst], bases[baseFirst+1], bases[baseFirst+2]}) {
		return nil, ErrNoStart
	}

	numCodons := span/3 - 1
	acids := make([]acid.AcidType, 0, numCodons)
	for i := 0; i < numCodons; i++ {
		base := baseFirst + 3 + 3*i
		codon := acid.Codon{bases[base], bases[base+1], bases[base+2]}
		at := table.Translate(codon)
		if at.IsStop() {
			if i != numCodons-1 {
				return nil, ErrPrematureStop
			}
			acids = append(acids, at)
			break
		}
		if i == numCodons-1 {
			return nil, ErrNoTerminalStop
		}
		acids = append(acids, at)
	}

	g := &Gene{
		Name:       name,
		BaseFirst:  baseFirst,
		BaseLast:   baseLast,
		Acids:      acids,
		HanUnicode: h.Unicode,
		Han:        h,
		Exponents:  make(map[ExponentChannel]float64),
	}
	g.tracePoints()
	if err := g.buildStrokes(h); err != nil {
		return nil, err
	}
	return g, nil
}

// tracePoints walks the acid vectors into a polyline: points[0] = origin,
// points[i+1] = points[i] + acids[i].Vector().
func (g *Gene) tracePoints() {
	g.Points = make([]geom.Point, len(g.Acids)+1)
	for i, at := range g.Acids {
		a := acid.Of(at)
		g.Points[i+1] = geom.Point{X: g.Points[i].X + a.DX, Y: g.Points[i].Y + a.DY}
	}
}

// nonStopAcids returns the acid sequence excluding the trailing STOP.
func (g *Gene) nonStopAcids() []acid.AcidType {
	if len(g.Acids) == 0 {
		return nil
	}
	return g.Acids[:len(g.Acids)-1]
}

// buildStrokes walks the gene's non-stop acids, breaking a new stroke
// whenever the trivector centered on the current acid is incoherent
// (spec.md §4.4 step 3), then classifies short strokes as marks (step 4)
// and maps the remainder 1:1 onto h's strokes (step 5).
func (g *Gene) buildStrokes(h *han.Han) error {
	nonStop := g.nonStopAcids()
	n := len(nonStop)
	if n == 0 {
		g.Strokes = nil
		g.Marks = nil
		if len(h.Strokes) != 0 {
			return ErrStrokeCountMismatch
		}
		return nil
	}

	var raw []Stroke
	segStart := 0
	for i := 1; i < n; i++ {
		prev := nonStop[i-1]
		cur := nonStop[i]
		// next is the acid following cur: either the next non-stop acid,
		// or (at the final position) the gene's real trailing STOP, which
		// pads the end and always forces a break per acid.IsCoherent's
		// STP rule.
		var next acid.AcidType
		if i+1 < n {
			next = nonStop[i+1]
		} else {
			next = g.Acids[len(g.Acids)-1]
		}
		if !acid.IsCoherent(prev, cur, next) {
			raw = append(raw, Stroke{Start: segStart, End: i})
			segStart = i
		}
	}
	raw = append(raw, Stroke{Start: segStart, End: n})

	// Gene-level scale approximation used only to classify marks: the
	// overall bounding box scale to the Han's overall bounding box, since
	// computing a fully mark-filtered scale first would require already
	// knowing which strokes are marks.
	geneBox := geom.BoundingBox(g.Points)
	sx, sy, sxy := scaleTo(geneBox, h.Bounds)

	var kept []Stroke
	var marks []Stroke
	for _, s := range raw {
		length := strokeVectorLength(nonStop[s.Start:s.End])
		scaledLength := scaledVectorLength(nonStop[s.Start:s.End], sx, sy, sxy)
		if scaledLength < h.MinimumStrokeLength || length == 0 {
			marks = append(marks, s)
			continue
		}
		kept = append(kept, s)
	}

	if len(kept) != len(h.Strokes) {
		return ErrStrokeCountMismatch
	}

	for idx := range kept {
		kept[idx].HanStroke = idx
		kept[idx].GroupIndex = h.GroupOf(idx)
		kept[idx].Exponents = make(map[ExponentChannel]float64)
	}

	g.Strokes = kept
	g.Marks = marks
	g.Scale = ScaleFactors{SX: sx, SY: sy, SXY: sxy}
	g.buildGroups(h)
	return nil
}

// buildGroups assigns gene strokes to groups mirroring the Han's group
// membership (spec.md §3 Group: "groups inherit stroke membership from the
// Han").
func (g *Gene) buildGroups(h *han.Han) {
	g.Groups = make([]Group, len(h.Groups))
	for gi, hg := range h.Groups {
		g.Groups[gi] = Group{
			StrokeIndices: append([]int(nil), hg.StrokeIndices...),
			Exponents:     make(map[ExponentChannel]float64),
		}
	}
}

// scaleTo computes the (sx, sy, sxy) scale mapping box onto target, per
// spec.md §4.5. Degenerate dimensions return 1.0 (the caller is
// responsible for dimension-level inheritance once a parent scale exists).
func scaleTo(box, target geom.Rect) (sx, sy, sxy float64) {
	w, h := box.Width(), box.Height()
	if w <= 0 {
		sx = 1
	} else {
		sx = target.Width() / w
	}
	if h <= 0 {
		sy = 1
	} else {
		sy = target.Height() / h
	}
	sxy = sxyFrom(sx, sy)
	return
}

func sxyFrom(sx, sy float64) float64 {
	return math.Sqrt(sx*sx + sy*sy)
}

func strokeVectorLength(acids []acid.AcidType) float64 {
	var dx, dy float64
	for _, at := range acids {
		a := acid.Of(at)
		dx += a.DX
		dy += a.DY
	}
	return math.Sqrt(dx*dx + dy*dy)
}

func scaledVectorLength(acids []acid.AcidType, sx, sy, sxy float64) float64 {
	var dxV, dyV, dxyV float64
	for _, at := range acids {
		a := acid.Of(at)
		if isDiagonal(a.Direction) {
			dxyV += a.DX
		} else {
			dxV += a.DX
			dyV += a.DY
		}
	}
	return math.Sqrt((dxV*sx)*(dxV*sx)+(dyV*sy)*(dyV*sy)) + dxyV*sxy
}

func isDiagonal(d acid.Direction) bool {
	switch d {
	case acid.DirNE, acid.DirSE, acid.DirSW, acid.DirNW:
		return true
	default:
		return false
	}
}

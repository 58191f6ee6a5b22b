// Package score classifies a gene's detected stroke overlaps against the
// Han's legal/required overlap list, and aggregates weighted-exponent
// scores at group and gene level (spec.md §4.8-§4.9).
package score

import (
	"sort"

	"github.com/biologicinstitute/stylus/internal/gene"
	"github.com/biologicinstitute/stylus/internal/han"
	"github.com/biologicinstitute/stylus/internal/overlap"
)

// Classification is the sorted-merge result of comparing a gene's detected
// stroke overlaps against its Han's overlap list.
type Classification struct {
	Illegal []overlap.StrokeOverlap // detected, not in the Han's overlap list
	Missing []han.HOverlap          // required by the Han, not detected
	Legal   []overlap.StrokeOverlap // detected and present (required or optional)
}

// Classify merges detected (sorted by stroke pair) against h.SortedOverlaps()
// in a single linear pass, per spec.md §4.8.
func Classify(detected []overlap.StrokeOverlap, h *han.Han) Classification {
	sortedDetected := make([]overlap.StrokeOverlap, len(detected))
	copy(sortedDetected, detected)
	sort.Slice(sortedDetected, func(i, j int) bool {
		if sortedDetected[i].FirstStroke != sortedDetected[j].FirstStroke {
			return sortedDetected[i].FirstStroke < sortedDetected[j].FirstStroke
		}
		return sortedDetected[i].SecondStroke < sortedDetected[j].SecondStroke
	})
	expected := h.SortedOverlaps()

	var out Classification
	i, j := 0, 0
	for i < len(sortedDetected) && j < len(expected) {
		d, e := sortedDetected[i], expected[j]
		switch {
		case d.FirstStroke == e.FirstStroke && d.SecondStroke == e.SecondStroke:
			out.Legal = append(out.Legal, d)
			i++
			j++
		case pairLess(d.FirstStroke, d.SecondStroke, e.FirstStroke, e.SecondStroke):
			out.Illegal = append(out.Illegal, d)
			i++
		default:
			if e.Required {
				out.Missing = append(out.Missing, e)
			}
			j++
		}
	}
	for ; i < len(sortedDetected); i++ {
		out.Illegal = append(out.Illegal, sortedDetected[i])
	}
	for ; j < len(expected); j++ {
		if expected[j].Required {
			out.Missing = append(out.Missing, expected[j])
		}
	}
	return out
}

func pairLess(a1, a2, b1, b2 int) bool {
	if a1 != b1 {
		return a1 < b1
	}
	return a2 < b2
}

// Apply records the classification's counts onto the gene's exponent
// channels (ChanIllegalOverlaps, ChanMissingOverlaps) so Aggregate can fold
// them into the final score. An overlap defect is a property of the pair
// of strokes it spans, not of either stroke alone: spec.md §4.9 scores it
// at the group level when both strokes belong to the same group, and at
// the gene level otherwise (a cross-group or ungrouped overlap has no
// single group it can be charged to).
func Apply(g *gene.Gene, c Classification) {
	for _, ov := range c.Illegal {
		bumpOverlap(g, ov.FirstStroke, ov.SecondStroke, gene.ChanIllegalOverlaps)
	}
	for _, m := range c.Missing {
		bumpOverlap(g, m.FirstStroke, m.SecondStroke, gene.ChanMissingOverlaps)
	}
}

// bumpOverlap charges ch against the group shared by first and second, or
// against the gene if they don't share one.
func bumpOverlap(g *gene.Gene, first, second int, ch gene.ExponentChannel) {
	if idx, ok := sharedGroup(g, first, second); ok {
		bumpGroup(g, idx, ch)
		return
	}
	bumpGene(g, ch)
}

// sharedGroup reports the group index first and second both belong to, if
// any. Strokes outside every Han-defined group carry GroupIndex -1
// (han.Han.GroupOf's sentinel) and never share a group with anything.
func sharedGroup(g *gene.Gene, first, second int) (int, bool) {
	if first < 0 || first >= len(g.Strokes) || second < 0 || second >= len(g.Strokes) {
		return 0, false
	}
	idx := g.Strokes[first].GroupIndex
	if idx < 0 || idx >= len(g.Groups) {
		return 0, false
	}
	if g.Strokes[second].GroupIndex != idx {
		return 0, false
	}
	return idx, true
}

func bumpGroup(g *gene.Gene, idx int, ch gene.ExponentChannel) {
	if idx < 0 || idx >= len(g.Groups) {
		return
	}
	if g.Groups[idx].Exponents == nil {
		g.Groups[idx].Exponents = make(map[gene.ExponentChannel]float64)
	}
	g.Groups[idx].Exponents[ch]++
}

func bumpGene(g *gene.Gene, ch gene.ExponentChannel) {
	if g.Exponents == nil {
		g.Exponents = make(map[gene.ExponentChannel]float64)
	}
	g.Exponents[ch]++
}

// Package segment tiles a genome's base string into HEAD, ORF, TAIL, and
// INTERGENIC runs ahead of per-gene compilation.
package segment

import "github.com/biologicinstitute/stylus/internal/acid"

// Kind names the four segment categories spec.md §3 defines.
type Kind int

const (
	Head Kind = iota
	ORF
	Tail
	Intergenic
)

func (k Kind) String() string {
	switch k {
	case Head:
		return "HEAD"
	case ORF:
		return "ORF"
	case Tail:
		return "TAIL"
	case Intergenic:
		return "INTERGENIC"
	default:
		return "UNKNOWN"
	}
}

// Segment is a half-open base range [Start, End) with a kind.
type Segment struct {
	Kind  Kind
	Start int
	End   int
}

// Len returns the number of bases the segment spans.
func (s Segment) Len() int { return s.End - s.Start }

// knownGene describes one already-identified gene's base range, used to
// tile the remaining bases into HEAD/TAIL/INTERGENIC around it.
type knownGene struct {
	First, Last int // inclusive, matching Gene.BaseFirst/BaseLast
}

// Tile partitions bases into an ordered, non-overlapping, gap-free list of
// segments given the already-known gene ranges (each [First,Last]
// inclusive, sorted and non-overlapping by construction of the genome).
// Every gene's range becomes an ORF-kind segment, with HEAD before the
// first and TAIL after the last; gaps between genes are INTERGENIC. With no
// genes, the whole sequence is one HEAD segment.
func Tile(numBases int, genes []knownGene) []Segment {
	var out []Segment
	cursor := 0
	for i, g := range genes {
		if g.First > cursor {
			kind := Intergenic
			if i == 0 {
				kind = Head
			}
			out = append(out, Segment{Kind: kind, Start: cursor, End: g.First})
		}
		out = append(out, Segment{Kind: ORF, Start: g.First, End: g.Last + 1})
		cursor = g.Last + 1
	}
	if cursor < numBases {
		kind := Tail
		if len(genes) == 0 {
			kind = Head
		}
		out = append(out, Segment{Kind: kind, Start: cursor, End: numBases})
	}
	return out
}

// GeneRange exports the knownGene range type for callers outside the
// package.
type GeneRange = knownGene

// ScanORFs finds every open reading frame in bases independent of any
// already-declared gene list: a START codon (in any of the three frames)
// through the first in-frame STOP. Used by exploratory/validation tooling;
// genes themselves are declared explicitly in the genome document and
// compiled via internal/gene.Compile.
func ScanORFs(bases []acid.Base) []Segment {
	var out []Segment
	n := len(bases)
	for i := 0; i+3 <= n; i++ {
		if !acid.IsStart(acid.Codon{bases[i], bases[i+1], bases[i+2]}) {
			continue
		}
		for j := i; j+3 <= n; j += 3 {
			codon := acid.Codon{bases[j], bases[j+1], bases[j+2]}
			if acid.IsStop(codon) {
				out = append(out, Segment{Kind: ORF, Start: i, End: j + 3})
				break
			}
		}
	}
	return out
}

package overlap

import (
	"container/heap"
	"math"
	"sort"

	"github.com/biologicinstitute/stylus/internal/geom"
)

type eventKind int

const (
	eventEnter eventKind = iota
	eventSwap
	eventExit
)

// event is one entry in the sweep's priority queue. ENTER/EXIT carry a
// single segment index; SWAP carries the pair of segments whose order in
// the active set is about to exchange, and the point at which they cross.
type event struct {
	x      float64
	kind   eventKind
	segIdx int
	other  int
	at     geom.Point
}

type eventQueue []event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].x != q[j].x {
		return q[i].x < q[j].x
	}
	return q[i].kind < q[j].kind
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)   { *q = append(*q, x.(event)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// lineStack is the sweep's active set: segment indices ordered by the
// segment's y-value at the current sweep position. The order only changes
// at ENTER, EXIT, and SWAP events; between events the ordering invariant
// holds because two non-adjacent segments cannot cross without first
// becoming adjacent. Adapted from the teacher's sorted-slice interval tree
// (internal/cache.IntervalTree): that structure answers "which intervals
// contain a point" via a sorted start array and a suffix-max end array;
// this one answers "which segments are adjacent in y right now" via a
// slice kept sorted by y-at-x and linear insert/remove, the same trade (no
// tree balancing machinery) applied to a dynamic rather than static
// interval set.
type lineStack struct {
	segs   []segment
	active []int
}

func newLineStack(segs []segment) *lineStack { return &lineStack{segs: segs} }

// yAt returns segment s's y-coordinate at sweep position x, linearly
// interpolated along the segment. Vertical segments (constant x) report
// their midpoint y since every point on them shares the same x.
func yAt(s segment, x float64) float64 {
	if s.a.X == s.b.X {
		return (s.a.Y + s.b.Y) / 2
	}
	t := (x - s.a.X) / (s.b.X - s.a.X)
	return s.a.Y + t*(s.b.Y-s.a.Y)
}

func (ls *lineStack) insert(segIdx int, x float64) int {
	y := yAt(ls.segs[segIdx], x)
	i := sort.Search(len(ls.active), func(i int) bool { return yAt(ls.segs[ls.active[i]], x) >= y })
	ls.active = append(ls.active, 0)
	copy(ls.active[i+1:], ls.active[i:])
	ls.active[i] = segIdx
	return i
}

func (ls *lineStack) positionOf(segIdx int) int {
	for i, s := range ls.active {
		if s == segIdx {
			return i
		}
	}
	return -1
}

func (ls *lineStack) remove(segIdx int) {
	i := ls.positionOf(segIdx)
	if i < 0 {
		return
	}
	ls.active = append(ls.active[:i], ls.active[i+1:]...)
}

func (ls *lineStack) swapAdjacent(i, j int) {
	ls.active[i], ls.active[j] = ls.active[j], ls.active[i]
}

// intersect returns the intersection point of segments (p1,p2) and
// (p3,p4), if they cross within both segments' bounds.
func intersect(p1, p2, p3, p4 geom.Point) (geom.Point, bool) {
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := p4.X-p3.X, p4.Y-p3.Y
	denom := d1x*d2y - d1y*d2x
	if math.Abs(denom) < 1e-12 {
		return geom.Point{}, false
	}
	t := ((p3.X-p1.X)*d2y - (p3.Y-p1.Y)*d2x) / denom
	u := ((p3.X-p1.X)*d1y - (p3.Y-p1.Y)*d1x) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return geom.Point{}, false
	}
	return geom.Point{X: p1.X + t*d1x, Y: p1.Y + t*d1y}, true
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// runSweep walks the segments left to right, maintaining the active set in
// y-order and recording a crossing whenever a SWAP event fires: the point
// at which two y-adjacent segments exchange order is exactly where their
// underlying lines cross (Bentley-Ottmann). ENTER/EXIT events seed the
// queue; each ENTER, EXIT, and SWAP checks its new neighbors for a future
// crossing and schedules a SWAP event for it.
func runSweep(segs []segment, found map[[2]int]StrokeOverlap) {
	if len(segs) == 0 {
		return
	}

	pq := &eventQueue{}
	heap.Init(pq)
	for i, s := range segs {
		lo, hi := s.a.X, s.b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		heap.Push(pq, event{x: lo, kind: eventEnter, segIdx: i})
		heap.Push(pq, event{x: hi, kind: eventExit, segIdx: i})
	}

	active := newLineStack(segs)
	scheduled := map[[2]int]bool{}

	scheduleSwap := func(i, j int, atX float64) {
		if i < 0 || j < 0 || segs[i].strokeIdx == segs[j].strokeIdx {
			return
		}
		key := pairKey(i, j)
		if scheduled[key] {
			return
		}
		pt, ok := intersect(segs[i].a, segs[i].b, segs[j].a, segs[j].b)
		if !ok || pt.X < atX-1e-9 {
			return
		}
		scheduled[key] = true
		heap.Push(pq, event{x: pt.X, kind: eventSwap, segIdx: i, other: j, at: pt})
	}

	checkNeighbors := func(pos int, x float64) {
		if pos > 0 {
			scheduleSwap(active.active[pos-1], active.active[pos], x)
		}
		if pos+1 < len(active.active) {
			scheduleSwap(active.active[pos], active.active[pos+1], x)
		}
	}

	for pq.Len() > 0 {
		ev := heap.Pop(pq).(event)
		switch ev.kind {
		case eventEnter:
			pos := active.insert(ev.segIdx, ev.x)
			checkNeighbors(pos, ev.x)
		case eventExit:
			pos := active.positionOf(ev.segIdx)
			if pos < 0 {
				continue
			}
			active.remove(ev.segIdx)
			if pos > 0 && pos < len(active.active) {
				scheduleSwap(active.active[pos-1], active.active[pos], ev.x)
			}
		case eventSwap:
			i := active.positionOf(ev.segIdx)
			j := active.positionOf(ev.other)
			if i < 0 || j < 0 || absInt(i-j) != 1 {
				continue // order already changed since this swap was scheduled
			}
			recordCrossing(segs[ev.segIdx], segs[ev.other], found)
			lo := i
			if j < lo {
				lo = j
			}
			hi := lo + 1
			active.swapAdjacent(lo, hi)
			checkNeighbors(lo, ev.x)
			checkNeighbors(hi, ev.x)
		}
	}
}

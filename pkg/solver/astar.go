package solver

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/ninelives/traintracks/pkg/grid"
	"github.com/ninelives/traintracks/pkg/piece"
)

// AStar is the A* path solver (AS): a best-first search over cloned-grid
// path states, keyed by (position, incoming direction, fixedHit, visited
// set) to prune duplicates.
type AStar struct {
	iterationCounter
	MaxStates int // 0 means unbounded
}

// NewAStar creates an AS reporting progress through sink.
func NewAStar(sink ProgressSink) *AStar {
	return &AStar{iterationCounter: newIterationCounter(sink)}
}

// state is one node of the open/closed sets.
type state struct {
	g        *grid.Grid
	pos      grid.Point
	incoming piece.Dir
	visited  map[grid.Point]bool
	fixedHit int
	steps    int // g-cost: path length so far
}

type queueItem struct {
	st       *state
	priority int
	index    int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index = i; pq[j].index = j }
func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// Solve runs A* starting from g's entry cell. On success, the winning
// state's grid is copied back into g so the caller observes the solution;
// on failure g is left unmodified.
func (as *AStar) Solve(g *grid.Grid) bool {
	entry, ok := g.Entry()
	if !ok {
		return false
	}
	exit, ok := g.Exit()
	if !ok {
		return false
	}
	existing := g.At(entry.Row, entry.Col)
	offGrid := offGridDirection(g, entry, existing)
	if offGrid == nil {
		return false
	}

	fixedPositions := g.FixedPoints()

	start := &state{
		g:        g.Clone(),
		pos:      entry,
		incoming: offGrid.Opposite(),
		visited:  map[grid.Point]bool{entry: true},
		fixedHit: 1,
		steps:    0,
	}

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &queueItem{st: start, priority: start.steps + as.heuristic(start, exit, fixedPositions)})

	closed := make(map[string]int)
	closed[signature(start)] = start.steps

	explored := 0
	for pq.Len() > 0 {
		if as.MaxStates > 0 && explored >= as.MaxStates {
			return false
		}
		item := heap.Pop(pq).(*queueItem)
		cur := item.st
		as.tick(cur.g)
		explored++

		if cur.fixedHit == len(fixedPositions) && cur.g.OnEdge(cur.pos.Row, cur.pos.Col) && cur.g.TrackCountsMatch() {
			cur.g.CopyTo(g)
			return true
		}

		for _, next := range as.expand(cur, fixedPositions) {
			sig := signature(next)
			if best, ok := closed[sig]; ok && best <= next.steps {
				continue
			}
			closed[sig] = next.steps
			heap.Push(pq, &queueItem{st: next, priority: next.steps + as.heuristic(next, exit, fixedPositions)})
		}
	}
	return false
}

// expand generates successor states reachable from cur in one step.
func (as *AStar) expand(cur *state, fixedPositions []grid.Point) []*state {
	existing := cur.g.At(cur.pos.Row, cur.pos.Col)
	var candidates []piece.Type
	if existing != piece.Empty {
		candidates = []piece.Type{existing}
	} else {
		for _, t := range piece.AllPieces {
			if cur.g.CanPlace(cur.pos.Row, cur.pos.Col, t) {
				candidates = append(candidates, t)
			}
		}
	}

	var out []*state
	for _, t := range candidates {
		clone := cur.g.Clone()
		if existing == piece.Empty {
			clone.Place(cur.pos.Row, cur.pos.Col, t)
		}
		if !clone.CanStillSatisfy() {
			continue
		}

		visited := make(map[grid.Point]bool, len(cur.visited)+1)
		for k := range cur.visited {
			visited[k] = true
		}
		visited[cur.pos] = true

		if !canReachAllFixed(clone, cur.pos, visited, fixedPositions) {
			continue
		}

		for _, d := range piece.Connections(t) {
			if d == cur.incoming.Opposite() {
				continue
			}
			next := grid.Point{Row: cur.pos.Row + d.DR, Col: cur.pos.Col + d.DC}
			if !clone.InBounds(next.Row, next.Col) || visited[next] {
				continue
			}
			// fixedHit accrues when a state arrives at a cell holding a
			// pre-placed piece, mirroring PB's bookkeeping; cur.fixedHit
			// already reflects cur.pos itself.
			fixedHit := cur.fixedHit
			if clone.At(next.Row, next.Col) != piece.Empty {
				fixedHit++
			}
			out = append(out, &state{
				g:        clone,
				pos:      next,
				incoming: d,
				visited:  visited,
				fixedHit: fixedHit,
				steps:    cur.steps + 1,
			})
		}
	}
	return out
}

// canReachAllFixed is a cheap reachability lower bound: BFS from pos
// treating every cell as passable, checking every fixed position not yet
// visited can still be reached.
func canReachAllFixed(g *grid.Grid, pos grid.Point, visited map[grid.Point]bool, fixedPositions []grid.Point) bool {
	need := make(map[grid.Point]bool)
	for _, p := range fixedPositions {
		if !visited[p] {
			need[p] = true
		}
	}
	if len(need) == 0 {
		return true
	}

	seen := map[grid.Point]bool{pos: true}
	queue := []grid.Point{pos}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		delete(need, cur)
		if len(need) == 0 {
			return true
		}
		for _, d := range piece.AllDirections {
			np := grid.Point{Row: cur.Row + d.DR, Col: cur.Col + d.DC}
			if !g.InBounds(np.Row, np.Col) || seen[np] {
				continue
			}
			seen[np] = true
			queue = append(queue, np)
		}
	}
	return len(need) == 0
}

// heuristic computes mst + exitDist + mismatch, per spec.
func (as *AStar) heuristic(s *state, exit grid.Point, fixedPositions []grid.Point) int {
	var remaining []grid.Point
	for _, p := range fixedPositions {
		if !s.visited[p] {
			remaining = append(remaining, p)
		}
	}

	mst := 0
	if len(remaining) > 0 {
		mst = primMST(append([]grid.Point{s.pos}, remaining...))
	}

	var exitDist int
	if len(remaining) > 0 {
		exitDist = remaining[0].ManhattanDistance(exit)
		for _, p := range remaining[1:] {
			if d := p.ManhattanDistance(exit); d < exitDist {
				exitDist = d
			}
		}
	} else {
		exitDist = s.pos.ManhattanDistance(exit)
	}

	mismatch := 0
	for r := 0; r < s.g.Rows(); r++ {
		mismatch += absInt(s.g.RowCount(r) - s.g.TrackCountInRow(r))
	}
	for c := 0; c < s.g.Cols(); c++ {
		mismatch += absInt(s.g.ColCount(c) - s.g.TrackCountInCol(c))
	}

	return mst + exitDist + mismatch
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// primMST computes a greedy nearest-in-tree (Prim-style) MST cost over pts
// under Manhattan distance.
func primMST(pts []grid.Point) int {
	if len(pts) < 2 {
		return 0
	}
	inTree := make([]bool, len(pts))
	inTree[0] = true
	total := 0
	for added := 1; added < len(pts); added++ {
		best := -1
		bestDist := 0
		for i, p := range pts {
			if inTree[i] {
				continue
			}
			d := minDistToTree(p, pts, inTree)
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}
		inTree[best] = true
		total += bestDist
	}
	return total
}

func minDistToTree(p grid.Point, pts []grid.Point, inTree []bool) int {
	best := -1
	for i, q := range pts {
		if !inTree[i] {
			continue
		}
		d := p.ManhattanDistance(q)
		if best == -1 || d < best {
			best = d
		}
	}
	return best
}

// signature builds a stable state-signature string for closed-set keying,
// sorting the visited set before folding so the hash is order-independent.
func signature(s *state) string {
	pts := make([]grid.Point, 0, len(s.visited))
	for p := range s.visited {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Row != pts[j].Row {
			return pts[i].Row < pts[j].Row
		}
		return pts[i].Col < pts[j].Col
	})

	var h uint64 = 14695981039346656037 // FNV-1a offset basis
	fold := func(n int) {
		h ^= uint64(n)
		h *= 1099511628211 // FNV-1a prime
	}
	for _, p := range pts {
		fold(p.Row)
		fold(p.Col)
	}

	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", s.pos.Row, s.pos.Col, s.incoming.DR, s.incoming.DC, s.fixedHit, h)
}

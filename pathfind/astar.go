// Package pathfind implements the A* search over (GridPoint, Direction)
// successors described in spec.md §4.3: a Chebyshev-like Manhattan
// heuristic, a per-direction cost table that favors forward vehicle motion,
// and the tile pedestrian cost for soldiers on foot.
package pathfind

import (
	"container/heap"

	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/geometry"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

// node is a single A* search state: a grid position plus the heading the
// searcher arrived with (headings matter for vehicles, whose turn cost
// depends on the direction they are already facing).
type node struct {
	point   geometry.GridPoint
	heading worldmap.Direction
}

// Find runs A* from (start, startHeading) to goal under the given path
// mode, returning an ordered list of grid points (the start tile included)
// or ok=false if no path exists or the start/goal fall outside the map.
//
// Per §9's defect-to-fix (not §9's "preserve" items), the open-set
// expansion is capped at cfg.PathfindMaxExpansions: the original exhausts
// its entire open set when the goal is a vehicle-unreachable tile, which
// this bounds instead of reproducing.
func Find(m *worldmap.Map, start geometry.GridPoint, startHeading worldmap.Direction, goal geometry.GridPoint, mode worldmap.PathMode, cfg *config.Config) ([]geometry.GridPoint, bool) {
	if !m.Contains(start) || !m.Contains(goal) {
		return nil, false
	}
	if start == goal {
		return []geometry.GridPoint{start}, true
	}

	startNode := node{point: start, heading: startHeading}

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &queueItem{node: startNode, priority: heuristic(start, goal)})

	gScore := map[node]int{startNode: 0}
	cameFrom := map[node]node{}

	expansions := 0
	for open.Len() > 0 {
		if expansions >= cfg.PathfindMaxExpansions {
			return nil, false
		}
		expansions++

		current := heap.Pop(open).(*queueItem).node
		if current.point == goal {
			return reconstruct(cameFrom, current, start), true
		}

		for _, succ := range m.Successors(current.point, current.heading, mode) {
			next := node{point: succ.Point, heading: succ.Direction}
			tentative := gScore[current] + succ.Cost
			if existing, ok := gScore[next]; ok && existing <= tentative {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current
			heap.Push(open, &queueItem{node: next, priority: tentative + heuristic(next.point, goal)})
		}
	}
	return nil, false
}

// heuristic is the Chebyshev-like |dx| + |dy| estimate spec.md §4.3 calls
// for (despite the name, it sums rather than maxes — matching the
// original's actual implementation, not the more common Chebyshev max).
func heuristic(a, b geometry.GridPoint) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstruct(cameFrom map[node]node, goal node, start geometry.GridPoint) []geometry.GridPoint {
	path := []geometry.GridPoint{goal.point}
	current := goal
	for current.point != start {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev.point)
		current = prev
	}
	// reverse into start->goal order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// DropStart removes the first point from a found path, for callers that
// don't want the searcher's own current tile included as a waypoint.
func DropStart(path []geometry.GridPoint) []geometry.GridPoint {
	if len(path) == 0 {
		return path
	}
	return path[1:]
}

type queueItem struct {
	node     node
	priority int
	index    int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}
func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

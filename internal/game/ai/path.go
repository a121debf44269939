package ai

import (
	"container/heap"

	"github.com/cory-johannsen/tombs/internal/game/world"
)

// Movement costs. Diagonal steps cost more so paths prefer straight lines;
// a cell occupied by a blocking actor is passable at a premium so that
// monsters queue around each other instead of giving up.
const (
	cardinalCost    = 2
	diagonalCost    = 3
	occupiedPenalty = 10
)

// PathTo returns the cells to step through from (fromX, fromY) to (toX, toY),
// excluding the start and including the destination. It returns nil when no
// route exists.
//
// Precondition: m must not be nil.
func PathTo(m *world.GameMap, fromX, fromY, toX, toY int) []world.Point {
	if !m.InBounds(fromX, fromY) || !m.InBounds(toX, toY) {
		return nil
	}
	if fromX == toX && fromY == toY {
		return nil
	}

	idx := func(x, y int) int { return y*m.Width + x }
	dist := make([]int, m.Width*m.Height)
	prev := make([]int, m.Width*m.Height)
	for i := range dist {
		dist[i] = -1
		prev[i] = -1
	}

	start, goal := idx(fromX, fromY), idx(toX, toY)
	dist[start] = 0
	pq := &pathQueue{{cell: start, cost: 0}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pathNode)
		if cur.cost > dist[cur.cell] {
			continue
		}
		if cur.cell == goal {
			break
		}
		cx, cy := cur.cell%m.Width, cur.cell/m.Width
		for _, d := range world.StandardDirections {
			dx, dy := d.Delta()
			nx, ny := cx+dx, cy+dy
			if !m.InBounds(nx, ny) || !m.Walkable(nx, ny) {
				continue
			}
			step := cardinalCost
			if dx != 0 && dy != 0 {
				step = diagonalCost
			}
			n := idx(nx, ny)
			if n != goal && m.BlockingActorAt(nx, ny) != nil {
				step *= occupiedPenalty
			}
			cost := cur.cost + step
			if dist[n] == -1 || cost < dist[n] {
				dist[n] = cost
				prev[n] = cur.cell
				heap.Push(pq, pathNode{cell: n, cost: cost})
			}
		}
	}

	if dist[goal] == -1 {
		return nil
	}
	var path []world.Point
	for c := goal; c != start; c = prev[c] {
		path = append(path, world.Point{X: c % m.Width, Y: c / m.Width})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pathNode struct {
	cell, cost int
}

type pathQueue []pathNode

func (q pathQueue) Len() int           { return len(q) }
func (q pathQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q pathQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *pathQueue) Push(x any)        { *q = append(*q, x.(pathNode)) }
func (q *pathQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// chebyshev is the number of king moves between two cells.
func chebyshev(ax, ay, bx, by int) int {
	return max(abs(ax-bx), abs(ay-by))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package domain

import (
	"math"

	"github.com/gammazero/deque"
)

// hex neighbours on a parallelogram board
var directions = [6][2]int{
	{-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0},
}

// Neighbors returns the in-bounds hex neighbours of a cell.
func (b *Board) Neighbors(row, col int) []Move {
	out := make([]Move, 0, len(directions))
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if b.InBounds(r, c) {
			out = append(out, Move{Row: r, Col: c})
		}
	}
	return out
}

// startCells lists the cells of side's starting edge (col 0 for blue, row 0 for red).
func (b *Board) startCells(side Mark) []Move {
	cells := make([]Move, b.size)
	for i := range cells {
		if side == Blue {
			cells[i] = Move{Row: i, Col: 0}
		} else {
			cells[i] = Move{Row: 0, Col: i}
		}
	}
	return cells
}

func (b *Board) onTargetEdge(side Mark, row, col int) bool {
	if side == Blue {
		return col == b.size-1
	}
	return row == b.size-1
}

// HasConnected reports whether side has a chain of its own stones joining
// its two edges.
func HasConnected(b *Board, side Mark) bool {
	if !side.IsSide() {
		return false
	}
	visited := make([]bool, b.size*b.size)
	stack := make([]Move, 0, b.size*b.size)

	for _, s := range b.startCells(side) {
		idx := s.Row*b.size + s.Col
		if b.at(s.Row, s.Col) != side || visited[idx] {
			continue
		}
		visited[idx] = true
		stack = append(stack, s)

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if b.onTargetEdge(side, cur.Row, cur.Col) {
				return true
			}
			for _, d := range directions {
				r, c := cur.Row+d[0], cur.Col+d[1]
				if !b.InBounds(r, c) || b.at(r, c) != side {
					continue
				}
				n := r*b.size + c
				if visited[n] {
					continue
				}
				visited[n] = true
				stack = append(stack, Move{Row: r, Col: c})
			}
		}
	}
	return false
}

// CheckWinner returns the connected side, or Empty when nobody has won yet.
// Alternating play can never connect both sides at once, so a board where
// both are connected is reported as ErrBothConnected.
func CheckWinner(b *Board) (Mark, error) {
	blue := HasConnected(b, Blue)
	red := HasConnected(b, Red)
	switch {
	case blue && red:
		return Empty, ErrBothConnected
	case blue:
		return Blue, nil
	case red:
		return Red, nil
	}
	return Empty, nil
}

// IsTerminal reports whether either side has connected.
func IsTerminal(b *Board) bool {
	return HasConnected(b, Blue) || HasConnected(b, Red)
}

type frontier struct {
	idx  int
	dist int
}

// Distance is the number of empty cells side still has to claim to join its
// edges: own stones cost 0, empty cells cost 1 and opponent stones block.
// Every start-edge cell not held by the opponent is a source at distance 0.
// Returns 2*size when no path exists.
func Distance(b *Board, side Mark) int {
	unreachable := 2 * b.size
	if !side.IsSide() {
		return unreachable
	}
	opponent := side.Opponent()

	dist := make([]int, b.size*b.size)
	for i := range dist {
		dist[i] = math.MaxInt32
	}

	// 0-1 BFS: zero-cost steps go to the front so cells leave the deque in
	// non-decreasing distance order.
	q := deque.New[frontier](b.size * b.size)
	for _, s := range b.startCells(side) {
		if b.at(s.Row, s.Col) == opponent {
			continue
		}
		idx := s.Row*b.size + s.Col
		dist[idx] = 0
		q.PushBack(frontier{idx: idx, dist: 0})
	}

	for q.Len() > 0 {
		cur := q.PopFront()
		if cur.dist > dist[cur.idx] {
			continue
		}
		row, col := cur.idx/b.size, cur.idx%b.size
		if b.onTargetEdge(side, row, col) {
			return cur.dist
		}
		for _, d := range directions {
			r, c := row+d[0], col+d[1]
			if !b.InBounds(r, c) {
				continue
			}
			var cost int
			switch b.at(r, c) {
			case side:
				cost = 0
			case Empty:
				cost = 1
			default:
				continue
			}
			n := r*b.size + c
			nd := cur.dist + cost
			if nd >= dist[n] {
				continue
			}
			dist[n] = nd
			if cost == 0 {
				q.PushFront(frontier{idx: n, dist: nd})
			} else {
				q.PushBack(frontier{idx: n, dist: nd})
			}
		}
	}
	return unreachable
}

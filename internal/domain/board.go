package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board is a square grid of marks stored row-major.
type Board struct {
	size  int
	cells []Mark
}

func NewBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Board{size: size, cells: make([]Mark, size*size)}, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

func (b *Board) Get(row, col int) (Mark, error) {
	if !b.InBounds(row, col) {
		return Empty, ErrOutOfBounds
	}
	return b.cells[row*b.size+col], nil
}

// Set claims an empty cell for a side. Occupied cells are never overwritten.
func (b *Board) Set(row, col int, mark Mark) error {
	if !mark.IsSide() {
		return ErrInvalidMark
	}
	if !b.InBounds(row, col) {
		return ErrOutOfBounds
	}
	idx := row*b.size + col
	if b.cells[idx] != Empty {
		return ErrCellOccupied
	}
	b.cells[idx] = mark
	return nil
}

// at is the unchecked accessor used by the graph code.
func (b *Board) at(row, col int) Mark {
	return b.cells[row*b.size+col]
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([]Mark, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// CopyFrom overwrites b with src, reusing b's storage when the sizes match.
func (b *Board) CopyFrom(src *Board) {
	if cap(b.cells) < len(src.cells) {
		b.cells = make([]Mark, len(src.cells))
	}
	b.cells = b.cells[:len(src.cells)]
	copy(b.cells, src.cells)
	b.size = src.size
}

// LegalMoves lists every empty cell in row-major order. The order matters:
// the search keeps the first of several equally scored moves.
func (b *Board) LegalMoves() []Move {
	moves := make([]Move, 0, len(b.cells))
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.at(row, col) == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

func (b *Board) EmptyCount() int {
	n := 0
	for _, c := range b.cells {
		if c == Empty {
			n++
		}
	}
	return n
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, c := range b.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// String encodes the board as rows of '.', 'B' and 'R' joined by '/'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(b.cells) + b.size)
	for r := 0; r < b.size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < b.size; c++ {
			switch b.at(r, c) {
			case Blue:
				sb.WriteByte('B')
			case Red:
				sb.WriteByte('R')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseBoard is the inverse of Board.String.
func ParseBoard(s string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	b, err := NewBoard(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != b.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), b.size)
		}
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case '.':
			case 'B', 'b':
				b.cells[r*b.size+c] = Blue
			case 'R', 'r':
				b.cells[r*b.size+c] = Red
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %d,%d", ErrInvalidBoard, row[c], r, c)
			}
		}
	}
	return b, nil
}

// BoardFromRows builds a board from a square [][]int grid (0 empty, 1 blue, 2 red).
func BoardFromRows(rows [][]int) (*Board, error) {
	b, err := NewBoard(len(rows))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != b.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), b.size)
		}
		for c, v := range row {
			m := Mark(v)
			if m != Empty && !m.IsSide() {
				return nil, fmt.Errorf("%w: unexpected mark %d at %d,%d", ErrInvalidBoard, v, r, c)
			}
			b.cells[r*b.size+c] = m
		}
	}
	return b, nil
}

func (b *Board) MarshalJSON() ([]byte, error) {
	rows := make([][]int, b.size)
	for r := range rows {
		rows[r] = make([]int, b.size)
		for c := range rows[r] {
			rows[r][c] = int(b.at(r, c))
		}
	}
	return json.Marshal(rows)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := BoardFromRows(rows)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}

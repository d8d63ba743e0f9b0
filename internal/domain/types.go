package domain

import (
	"errors"
	"strings"
)

// Mark is the occupancy of a single cell.
type Mark int

const (
	Empty Mark = 0
	// Blue connects the left edge (col 0) to the right edge (col N-1).
	Blue Mark = 1
	// Red connects the top edge (row 0) to the bottom edge (row N-1).
	Red Mark = 2
)

const (
	DefaultSize = 5
	MinSize     = 2
	MaxSize     = 11
)

// IsSide reports whether m is one of the two players.
func (m Mark) IsSide() bool {
	return m == Blue || m == Red
}

// Opponent returns the other side. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case Blue:
		return Red
	case Red:
		return Blue
	}
	return Empty
}

func (m Mark) String() string {
	switch m {
	case Blue:
		return "blue"
	case Red:
		return "red"
	}
	return "empty"
}

// ParseSide accepts "blue"/"red" or the single letters, in any case.
func ParseSide(s string) (Mark, error) {
	switch strings.ToLower(s) {
	case "blue", "b":
		return Blue, nil
	case "red", "r":
		return Red, nil
	}
	return Empty, ErrInvalidSide
}

// Move addresses a cell by row and column, 0-indexed.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Phase is the controller state of a game.
type Phase string

const (
	PhaseAwaitingHuman Phase = "awaiting_human"
	PhaseAutomatedTurn Phase = "automated_turn"
	PhaseGameOver      Phase = "game_over"
)

// errors returned by board and game operations
var (
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrCellOccupied  = errors.New("cell occupied")
	ErrGameOver      = errors.New("game over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrInvalidMark   = errors.New("invalid mark")
	ErrInvalidSide   = errors.New("invalid side")
	ErrInvalidSize   = errors.New("invalid board size")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrBothConnected = errors.New("both sides connected")
)

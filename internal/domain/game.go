package domain

type Game struct {
	Board     *Board
	ToMove    Mark
	Winner    Mark
	Phase     Phase
	MoveCount int
	Human     Mark
	LastMove  *Move
}

// GameState is a read-only snapshot of a game handed to callers.
type GameState struct {
	Board         *Board `json:"board"`
	ToMove        Mark   `json:"toMove"`
	Winner        Mark   `json:"winner"`
	Phase         Phase  `json:"phase"`
	MoveCount     int    `json:"moveCount"`
	HumanSide     Mark   `json:"humanSide"`
	AutomatedSide Mark   `json:"automatedSide"`
	LastMove      *Move  `json:"lastMove,omitempty"`
}

// NewGame starts an empty board. human is the side played by the caller and
// first is the side that moves first.
func NewGame(size int, human, first Mark) (*Game, error) {
	if !human.IsSide() || !first.IsSide() {
		return nil, ErrInvalidSide
	}
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Board:  board,
		ToMove: first,
		Winner: Empty,
		Human:  human,
	}
	g.Phase = g.phaseFor(first)
	return g, nil
}

func (g *Game) Automated() Mark {
	return g.Human.Opponent()
}

func (g *Game) phaseFor(side Mark) Phase {
	if side == g.Human {
		return PhaseAwaitingHuman
	}
	return PhaseAutomatedTurn
}

// Play places a stone for side. Every check runs before the board is
// touched, so a rejected move leaves the game exactly as it was.
func (g *Game) Play(side Mark, row, col int) error {
	if g.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if !side.IsSide() {
		return ErrInvalidSide
	}
	if side != g.ToMove {
		return ErrNotYourTurn
	}
	current, err := g.Board.Get(row, col)
	if err != nil {
		return err
	}
	if current != Empty {
		return ErrCellOccupied
	}

	idx := row*g.Board.size + col
	g.Board.cells[idx] = side

	winner, err := CheckWinner(g.Board)
	if err != nil {
		g.Board.cells[idx] = Empty
		return err
	}

	g.MoveCount++
	g.LastMove = &Move{Row: row, Col: col}

	if winner != Empty {
		g.Winner = winner
		g.Phase = PhaseGameOver
		return nil
	}

	g.ToMove = side.Opponent()
	g.Phase = g.phaseFor(g.ToMove)
	return nil
}

func (g *Game) IsFinished() bool {
	return g.Phase == PhaseGameOver
}

func (g *Game) Snapshot() GameState {
	st := GameState{
		Board:         g.Board.Clone(),
		ToMove:        g.ToMove,
		Winner:        g.Winner,
		Phase:         g.Phase,
		MoveCount:     g.MoveCount,
		HumanSide:     g.Human,
		AutomatedSide: g.Automated(),
	}
	if g.LastMove != nil {
		m := *g.LastMove
		st.LastMove = &m
	}
	return st
}

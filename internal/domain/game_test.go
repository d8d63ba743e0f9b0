package domain

import (
	"errors"
	"reflect"
	"testing"
)

// helper to apply a sequence of moves, alternating from the side to move
func playMoves(t *testing.T, g *Game, moves [][2]int) {
	t.Helper()
	for i, m := range moves {
		if err := g.Play(g.ToMove, m[0], m[1]); err != nil {
			t.Fatalf("move %d (%v) failed: %v", i, m, err)
		}
	}
}

func TestNewGameInitialState(t *testing.T) {
	g, err := NewGame(5, Blue, Blue)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if g.ToMove != Blue || g.Phase != PhaseAwaitingHuman {
		t.Fatalf("expected blue human to move first, got toMove=%v phase=%v", g.ToMove, g.Phase)
	}
	if g.Winner != Empty || g.MoveCount != 0 || g.Board.EmptyCount() != 25 {
		t.Fatalf("expected fresh game, got winner=%v moves=%d", g.Winner, g.MoveCount)
	}
	if g.Automated() != Red {
		t.Fatalf("expected red automated side, got %v", g.Automated())
	}

	g, _ = NewGame(5, Blue, Red)
	if g.Phase != PhaseAutomatedTurn {
		t.Fatalf("expected automated turn when red starts, got %v", g.Phase)
	}

	if _, err := NewGame(5, Empty, Blue); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
}

func TestPlayAlternatesTurns(t *testing.T) {
	g, _ := NewGame(5, Blue, Blue)
	if err := g.Play(Blue, 2, 2); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.ToMove != Red || g.Phase != PhaseAutomatedTurn || g.MoveCount != 1 {
		t.Fatalf("unexpected state after blue: toMove=%v phase=%v moves=%d", g.ToMove, g.Phase, g.MoveCount)
	}
	if err := g.Play(Blue, 1, 1); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if err := g.Play(Red, 1, 1); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.ToMove != Blue || g.Phase != PhaseAwaitingHuman {
		t.Fatalf("expected blue to move again, got %v/%v", g.ToMove, g.Phase)
	}
	if g.LastMove == nil || *g.LastMove != (Move{Row: 1, Col: 1}) {
		t.Fatalf("unexpected last move %v", g.LastMove)
	}
}

func TestRejectedMovesLeaveStateUnchanged(t *testing.T) {
	g, _ := NewGame(5, Blue, Blue)
	playMoves(t, g, [][2]int{{2, 2}, {1, 1}})
	before := g.Snapshot()

	cases := []struct {
		side     Mark
		row, col int
		want     error
	}{
		{Blue, 2, 2, ErrCellOccupied},
		{Blue, 1, 1, ErrCellOccupied},
		{Blue, 5, 0, ErrOutOfBounds},
		{Blue, 0, -1, ErrOutOfBounds},
		{Red, 0, 0, ErrNotYourTurn},
		{Empty, 0, 0, ErrInvalidSide},
	}
	for _, tc := range cases {
		if err := g.Play(tc.side, tc.row, tc.col); !errors.Is(err, tc.want) {
			t.Fatalf("Play(%v,%d,%d): expected %v, got %v", tc.side, tc.row, tc.col, tc.want, err)
		}
		if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
			t.Fatalf("rejected move mutated state: before=%+v after=%+v", before, after)
		}
	}
}

func TestWinEndsGame(t *testing.T) {
	g, _ := NewGame(5, Blue, Blue)
	// blue builds row 2, red answers on row 0
	playMoves(t, g, [][2]int{
		{2, 0}, {0, 0},
		{2, 1}, {0, 1},
		{2, 2}, {0, 2},
		{2, 3}, {0, 3},
		{2, 4},
	})
	if g.Phase != PhaseGameOver || g.Winner != Blue {
		t.Fatalf("expected blue win, got phase=%v winner=%v", g.Phase, g.Winner)
	}
	if g.MoveCount != 9 {
		t.Fatalf("expected 9 moves, got %d", g.MoveCount)
	}
	if err := g.Play(Red, 4, 4); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if err := g.Play(Blue, 4, 4); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g, _ := NewGame(5, Red, Blue)
	st := g.Snapshot()
	if err := g.Play(Blue, 0, 0); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if m, _ := st.Board.Get(0, 0); m != Empty {
		t.Fatalf("snapshot board follows the live game")
	}
	if st.HumanSide != Red || st.AutomatedSide != Blue {
		t.Fatalf("unexpected sides in snapshot: %+v", st)
	}
}

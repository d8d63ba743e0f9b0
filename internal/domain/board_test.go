package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustBoard(t *testing.T, s string) *Board {
	t.Helper()
	b, err := ParseBoard(s)
	if err != nil {
		t.Fatalf("ParseBoard(%q): %v", s, err)
	}
	return b
}

func TestNewBoardSize(t *testing.T) {
	for _, size := range []int{-1, 0, 1, MaxSize + 1} {
		if _, err := NewBoard(size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewBoard(%d): expected ErrInvalidSize, got %v", size, err)
		}
	}
	b, err := NewBoard(DefaultSize)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	if b.Size() != 5 || b.EmptyCount() != 25 {
		t.Fatalf("expected empty 5x5 board, got size=%d empty=%d", b.Size(), b.EmptyCount())
	}
}

func TestGetOutOfBounds(t *testing.T) {
	b, _ := NewBoard(5)
	cases := [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {7, 7}}
	for _, m := range cases {
		if _, err := b.Get(m[0], m[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%v): expected ErrOutOfBounds, got %v", m, err)
		}
		if err := b.Set(m[0], m[1], Blue); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%v): expected ErrOutOfBounds, got %v", m, err)
		}
	}
}

func TestSetRejectsOccupiedAndEmptyMark(t *testing.T) {
	b, _ := NewBoard(5)
	if err := b.Set(2, 3, Red); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Set(2, 3, Blue); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
	if m, _ := b.Get(2, 3); m != Red {
		t.Fatalf("occupied cell was overwritten: %v", m)
	}
	if err := b.Set(0, 0, Empty); !errors.Is(err, ErrInvalidMark) {
		t.Fatalf("expected ErrInvalidMark, got %v", err)
	}
}

func TestLegalMovesRowMajor(t *testing.T) {
	b := mustBoard(t, "B.R/.../R..")
	got := b.LegalMoves()
	want := []Move{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %d moves, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("move %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := mustBoard(t, "...../...../...../...../.....")
	cp := b.Clone()
	if err := cp.Set(1, 1, Blue); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if m, _ := b.Get(1, 1); m != Empty {
		t.Fatalf("clone mutation leaked into original")
	}

	var dst Board
	dst.CopyFrom(cp)
	if !dst.Equal(cp) {
		t.Fatalf("CopyFrom produced %s, want %s", dst.String(), cp.String())
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	s := "B...R/.B.R./..B../.R.B./R...B"
	b := mustBoard(t, s)
	if b.String() != s {
		t.Fatalf("expected %q, got %q", s, b.String())
	}
	if _, err := ParseBoard("B../.."); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard for ragged rows, got %v", err)
	}
	if _, err := ParseBoard("BX/.."); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard for unknown mark, got %v", err)
	}
}

func TestBoardJSON(t *testing.T) {
	b := mustBoard(t, "B./.R")
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[[1,0],[0,2]]" {
		t.Fatalf("unexpected JSON %s", data)
	}
	var back Board
	if err := json.Unmarshal([]byte("[[1,0],[0,3]]"), &back); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
}

func TestNeighborsClipped(t *testing.T) {
	b, _ := NewBoard(5)
	if n := len(b.Neighbors(2, 2)); n != 6 {
		t.Fatalf("interior cell should have 6 neighbours, got %d", n)
	}
	// (0,0) keeps only (0,1) and (1,0)
	if n := len(b.Neighbors(0, 0)); n != 2 {
		t.Fatalf("corner (0,0) should have 2 neighbours, got %d", n)
	}
	// (0,4) keeps (0,3), (1,3), (1,4)
	if n := len(b.Neighbors(0, 4)); n != 3 {
		t.Fatalf("corner (0,4) should have 3 neighbours, got %d", n)
	}
}

func TestParseSideIgnoresCase(t *testing.T) {
	cases := map[string]Mark{"blue": Blue, "bLue": Blue, "B": Blue, "RED": Red, "rEd": Red, "r": Red}
	for in, want := range cases {
		got, err := ParseSide(in)
		if err != nil || got != want {
			t.Fatalf("ParseSide(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"", "green", "bl", "empty"} {
		if _, err := ParseSide(in); !errors.Is(err, ErrInvalidSide) {
			t.Fatalf("ParseSide(%q): expected ErrInvalidSide, got %v", in, err)
		}
	}
}

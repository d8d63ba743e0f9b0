package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/iamasit07/hex/backend/internal/domain"
)

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	root := Root()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestRenderBoard(t *testing.T) {
	color.NoColor = true
	b, _ := domain.ParseBoard("B./.R")
	var out bytes.Buffer
	renderBoard(&out, b, nil)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, two edges and two rows, got %q", out.String())
	}
	if !strings.Contains(lines[2], "B") || !strings.HasPrefix(lines[3], " ") || !strings.Contains(lines[3], "R") {
		t.Fatalf("unexpected rows %q", lines[2:4])
	}
}

func TestBestMoveCommand(t *testing.T) {
	out, err := runCLI(t, "", "bestmove", "--board", "..R../..R../...../..R../..R..", "--side", "red", "--depth", "2", "--compare")
	if err != nil {
		t.Fatalf("bestmove: %v", err)
	}
	if !strings.Contains(out, "Red plays (2,2)") {
		t.Fatalf("expected the winning move, got:\n%s", out)
	}
	if !strings.Contains(out, "without pruning: (2,2)") || !strings.Contains(out, "with pruning:    (2,2)") {
		t.Fatalf("expected both searches to agree, got:\n%s", out)
	}
}

func TestBestMoveCommandErrors(t *testing.T) {
	if _, err := runCLI(t, "", "bestmove", "--board", "..x"); err == nil {
		t.Fatalf("expected a board parse error")
	}
	if _, err := runCLI(t, "", "bestmove", "--side", "green"); err == nil {
		t.Fatalf("expected a side error")
	}
	if _, err := runCLI(t, "", "bestmove", "--depth", "0"); err == nil {
		t.Fatalf("expected a depth error")
	}
	out, err := runCLI(t, "", "bestmove", "--board", "BB/..")
	if err != nil {
		t.Fatalf("bestmove: %v", err)
	}
	if !strings.Contains(out, "Blue has already connected") {
		t.Fatalf("expected finished position notice, got:\n%s", out)
	}
}

func TestPlayCommand(t *testing.T) {
	out, err := runCLI(t, "2 2\n9 9\nhelp\nquit\n", "play")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "You play Blue") {
		t.Fatalf("missing intro:\n%s", out)
	}
	if !strings.Contains(out, "Red plays") {
		t.Fatalf("engine never replied:\n%s", out)
	}
	if !strings.Contains(out, "illegal move: out of bounds") {
		t.Fatalf("out of bounds move not reported:\n%s", out)
	}
}

func TestPlayToTheEnd(t *testing.T) {
	// A 2x2 game is decided within these three inputs, illegal ones included.
	out, err := runCLI(t, "1 0\n1 1\n0 1\n", "play", "--size", "2", "--ai-first")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "Red plays") {
		t.Fatalf("engine did not open:\n%s", out)
	}
	if !strings.Contains(out, "You win!") && !strings.Contains(out, "Red wins.") {
		t.Fatalf("game never finished:\n%s", out)
	}
}

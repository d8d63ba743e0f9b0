package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/iamasit07/hex/backend/internal/domain"
)

var (
	blueStone = color.New(color.FgBlue, color.Bold).SprintFunc()
	redStone  = color.New(color.FgRed, color.Bold).SprintFunc()
	lastStone = color.New(color.Underline).SprintFunc()
)

func sideName(m domain.Mark) string {
	switch m {
	case domain.Blue:
		return blueStone("Blue")
	case domain.Red:
		return redStone("Red")
	}
	return "nobody"
}

// renderBoard draws the board as a rhombus, each row shifted one step
// right so that the six hex neighbours line up visually. last, when not
// nil, is underlined.
func renderBoard(w io.Writer, b *domain.Board, last *domain.Move) {
	n := b.Size()

	var header strings.Builder
	header.WriteString("   ")
	for c := 0; c < n; c++ {
		fmt.Fprintf(&header, " %-2d", c)
	}
	fmt.Fprintln(w, header.String())
	fmt.Fprintf(w, "    %s\n", redStone(strings.Repeat("-  ", n)))

	for r := 0; r < n; r++ {
		var line strings.Builder
		line.WriteString(strings.Repeat(" ", r))
		fmt.Fprintf(&line, "%2d %s", r, blueStone("\\"))
		for c := 0; c < n; c++ {
			m, _ := b.Get(r, c)
			cell := "."
			switch m {
			case domain.Blue:
				cell = blueStone("B")
			case domain.Red:
				cell = redStone("R")
			}
			if last != nil && last.Row == r && last.Col == c {
				cell = lastStone(cell)
			}
			line.WriteString(" " + cell + " ")
		}
		line.WriteString(blueStone("\\"))
		fmt.Fprintln(w, line.String())
	}
	fmt.Fprintf(w, "%s    %s\n", strings.Repeat(" ", n), redStone(strings.Repeat("-  ", n)))
}

package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/service/bot"
)

func BestMove() *cobra.Command {
	var (
		boardText string
		sideText  string
		depth     int
		prune     bool
		compare   bool
	)

	cmd := &cobra.Command{
		Use:   "bestmove",
		Short: "Prints the engine's move for a position",
		Long: heredoc.Doc(`
			bestmove searches the given position and prints the chosen move,
			its score and the number of nodes visited.

			The board is written row by row, rows separated by '/', with
			'.' for an empty cell, 'B' for blue and 'R' for red.
		`),
		Example: heredoc.Doc(`
			$ hex bestmove --board "..R../..R../...../..R../..R.." --side red --depth 2
			$ hex bestmove --board "B..../...../...../...../....." --side red --depth 3 --compare
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := domain.ParseBoard(boardText)
			if err != nil {
				return err
			}
			side, err := domain.ParseSide(sideText)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderBoard(out, board, nil)

			winner, err := domain.CheckWinner(board)
			if err != nil {
				return err
			}
			if winner != domain.Empty {
				fmt.Fprintf(out, "%s has already connected.\n", sideName(winner))
				return nil
			}

			res, err := bot.BestMove(board, bot.SearchConfig{Depth: depth, UsePruning: prune}, side)
			if err != nil {
				return err
			}
			if !res.Found {
				fmt.Fprintln(out, "No legal moves.")
				return nil
			}
			fmt.Fprintf(out, "%s plays (%d,%d)  score %d  nodes %d\n",
				sideName(side), res.Move.Row, res.Move.Col, res.Score, res.Nodes)

			if compare {
				other, err := bot.BestMove(board, bot.SearchConfig{Depth: depth, UsePruning: !prune}, side)
				if err != nil {
					return err
				}
				full, pruned := res, other
				if prune {
					full, pruned = other, res
				}
				fmt.Fprintf(out, "without pruning: (%d,%d) score %d, %d nodes\n",
					full.Move.Row, full.Move.Col, full.Score, full.Nodes)
				fmt.Fprintf(out, "with pruning:    (%d,%d) score %d, %d nodes\n",
					pruned.Move.Row, pruned.Move.Col, pruned.Score, pruned.Nodes)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&boardText, "board", "b", "...../...../...../...../.....", "position to search")
	flags.StringVarP(&sideText, "side", "s", "red", "side to move (blue or red)")
	flags.IntVarP(&depth, "depth", "d", 2, "search depth in plies")
	flags.BoolVarP(&prune, "prune", "p", false, "enable alpha-beta pruning")
	flags.BoolVar(&compare, "compare", false, "also run the search with pruning toggled")

	return cmd
}

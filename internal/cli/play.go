package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/service/bot"
	"github.com/iamasit07/hex/backend/internal/service/game"
)

const SPIN = 14

var playHelp = heredoc.Doc(`
	Commands:
	  <row> <col>   place a stone, e.g. "2 3" or "2,3"
	  new [size]    start over, optionally on another board size
	  help          show this message
	  quit          leave the game
`)

func Play() *cobra.Command {
	var (
		size       int
		depth      int
		prune      bool
		aiFirst    bool
		humanSide  string
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game in the terminal",
		Long: heredoc.Doc(`
			play starts a game against the engine. By default you play Blue
			and move first on a 5x5 board while the engine searches one ply.
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			settings := game.DefaultSettings()
			settings.Size = size
			if difficulty != "" {
				settings.Search = bot.ConfigFor(difficulty)
			}
			if cmd.Flags().Changed("depth") || difficulty == "" {
				settings.Search.Depth = depth
			}
			if cmd.Flags().Changed("prune") || difficulty == "" {
				settings.Search.UsePruning = prune
			}

			side, err := domain.ParseSide(humanSide)
			if err != nil {
				return err
			}
			settings.HumanSide = side
			settings.FirstSide = side
			if aiFirst {
				settings.FirstSide = side.Opponent()
			}

			controller, err := game.NewController(settings, game.NewService(nil, 0, 0))
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"size":  settings.Size,
				"depth": settings.Search.Depth,
				"prune": settings.Search.UsePruning,
			}).Debug("starting game")

			s := &session{
				controller: controller,
				in:         bufio.NewScanner(cmd.InOrStdin()),
				out:        cmd.OutOrStdout(),
			}
			return s.run()
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&size, "size", "n", domain.DefaultSize, "board size")
	flags.IntVarP(&depth, "depth", "d", 1, "engine search depth in plies")
	flags.BoolVarP(&prune, "prune", "p", false, "enable alpha-beta pruning")
	flags.BoolVar(&aiFirst, "ai-first", false, "let the engine move first")
	flags.StringVar(&humanSide, "side", "blue", "side you play (blue or red)")
	flags.StringVar(&difficulty, "difficulty", "", "easy, medium or hard (overridden by --depth/--prune)")

	return cmd
}

// session is one terminal game
type session struct {
	controller *game.Controller
	in         *bufio.Scanner
	out        io.Writer
}

func (s *session) run() error {
	st := s.controller.State()
	fmt.Fprintf(s.out, "You play %s. %s\n", sideName(st.HumanSide), edgeHint(st.HumanSide))
	fmt.Fprint(s.out, playHelp)

	for {
		st = s.controller.State()
		fmt.Fprintln(s.out)
		renderBoard(s.out, st.Board, st.LastMove)

		switch st.Phase {
		case domain.PhaseGameOver:
			if st.Winner == st.HumanSide {
				fmt.Fprintln(s.out, "You win!")
			} else {
				fmt.Fprintf(s.out, "%s wins.\n", sideName(st.Winner))
			}
			fmt.Fprintln(s.out, `Type "new" to play again or "quit" to leave.`)

		case domain.PhaseAutomatedTurn:
			if err := s.automatedTurn(); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(s.out, "%s> ", sideName(st.HumanSide))
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if quit := s.handle(strings.TrimSpace(s.in.Text())); quit {
			return nil
		}
	}
}

func (s *session) automatedTurn() error {
	spin := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(s.out))
	spin.Suffix = " thinking..."
	spin.Start()
	move, st, err := s.controller.PlayAutomatedMove(context.Background())
	spin.Stop()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s plays %d %d\n", sideName(st.AutomatedSide), move.Row, move.Col)
	return nil
}

// handle runs one line of input and reports whether the player quit.
func (s *session) handle(line string) bool {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(s.out, playHelp)
		return false
	case "new":
		size := 0
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(s.out, "bad size %q\n", fields[1])
				return false
			}
			size = n
		}
		if _, err := s.controller.NewGame(size); err != nil {
			fmt.Fprintf(s.out, "cannot start: %v\n", err)
		}
		return false
	}

	if len(fields) != 2 {
		fmt.Fprintln(s.out, `expected "<row> <col>", type "help" for commands`)
		return false
	}
	row, errRow := strconv.Atoi(fields[0])
	col, errCol := strconv.Atoi(fields[1])
	if errRow != nil || errCol != nil {
		fmt.Fprintln(s.out, `expected "<row> <col>", type "help" for commands`)
		return false
	}
	if _, err := s.controller.ApplyHumanMove(row, col); err != nil {
		fmt.Fprintf(s.out, "illegal move: %v\n", err)
	}
	return false
}

func edgeHint(side domain.Mark) string {
	if side == domain.Red {
		return "Connect the top and bottom edges."
	}
	return "Connect the left and right edges."
}

package bot

import (
	"math"
	"time"

	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	scoreInf = math.MaxInt32
)

// Result of a root search. Found is false when the board has no empty cell.
type Result struct {
	Move  domain.Move `json:"move"`
	Score int         `json:"score"`
	Found bool        `json:"found"`
	Nodes int         `json:"nodes"`
}

// searcher owns one board snapshot per ply. The node at ply p reads
// arena[p] and builds each child in arena[p+1], so a subtree only ever
// writes below its own ply and siblings never see each other's stones.
type searcher struct {
	perspective domain.Mark
	usePruning  bool
	arena       []*domain.Board
	nodes       int
}

func newSearcher(root *domain.Board, plies int, perspective domain.Mark, usePruning bool) *searcher {
	arena := make([]*domain.Board, plies+1)
	for i := range arena {
		arena[i] = root.Clone()
	}
	return &searcher{
		perspective: perspective,
		usePruning:  usePruning,
		arena:       arena,
	}
}

// BestMove places a stone for side on every empty cell and keeps the move
// with the strictly highest minimax score, so ties go to the first cell in
// row-major order.
func BestMove(board *domain.Board, cfg SearchConfig, side domain.Mark) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if !side.IsSide() {
		return Result{}, domain.ErrInvalidSide
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return Result{}, nil
	}

	start := time.Now()
	s := newSearcher(board, cfg.Depth, side, cfg.UsePruning)
	best := Result{Score: -scoreInf}

	for _, m := range moves {
		child := s.arena[1]
		child.CopyFrom(board)
		if err := child.Set(m.Row, m.Col, side); err != nil {
			return Result{}, err
		}

		score := s.minimax(1, cfg.Depth-1, false, -scoreInf, scoreInf)
		if !best.Found || score > best.Score {
			best.Move = m
			best.Score = score
			best.Found = true
		}
	}
	best.Nodes = s.nodes

	logrus.WithFields(logrus.Fields{
		"component": "bot",
		"side":      side,
		"depth":     cfg.Depth,
		"pruning":   cfg.UsePruning,
		"nodes":     best.Nodes,
		"score":     best.Score,
		"elapsed":   time.Since(start),
	}).Debug("search finished")

	return best, nil
}

// Minimax scores board from perspective with a full alpha-beta window.
// It also returns the number of nodes visited.
func Minimax(board *domain.Board, depth int, maximizing bool, perspective domain.Mark, usePruning bool) (int, int) {
	if depth < 0 {
		depth = 0
	}
	s := newSearcher(board, depth, perspective, usePruning)
	score := s.minimax(0, depth, maximizing, -scoreInf, scoreInf)
	return score, s.nodes
}

func (s *searcher) minimax(ply, depth int, maximizing bool, alpha, beta int) int {
	s.nodes++
	board := s.arena[ply]

	// Terminal conditions
	if depth == 0 || domain.IsTerminal(board) {
		return Evaluate(board, s.perspective)
	}
	moves := board.LegalMoves()
	if len(moves) == 0 {
		return Evaluate(board, s.perspective)
	}

	mover := s.perspective
	best := -scoreInf
	if !maximizing {
		mover = s.perspective.Opponent()
		best = scoreInf
	}

	child := s.arena[ply+1]
	for _, m := range moves {
		child.CopyFrom(board)
		// m comes from board.LegalMoves, so the cell is in range and empty
		_ = child.Set(m.Row, m.Col, mover)

		score := s.minimax(ply+1, depth-1, !maximizing, alpha, beta)

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}

		if s.usePruning {
			if maximizing {
				alpha = max(alpha, best)
			} else {
				beta = min(beta, best)
			}
			if beta <= alpha {
				break
			}
		}
	}
	return best
}

package bot

import (
	"github.com/iamasit07/hex/backend/internal/domain"
)

// Evaluate scores board for perspective: positive when perspective is closer
// to joining its edges than the opponent is. The perspective never flips
// inside a search.
func Evaluate(board *domain.Board, perspective domain.Mark) int {
	return domain.Distance(board, perspective.Opponent()) - domain.Distance(board, perspective)
}

package bot

import (
	"errors"
	"fmt"
)

var ErrInvalidDepth = errors.New("search depth must be positive")

// SearchConfig is fixed for the duration of one search.
type SearchConfig struct {
	Depth      int  `json:"depth"`
	UsePruning bool `json:"usePruning"`
}

func (c SearchConfig) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.Depth)
	}
	return nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ConfigFor maps a named difficulty onto a search configuration.
// Unknown names fall back to medium.
func ConfigFor(difficulty string) SearchConfig {
	switch Difficulty(difficulty) {
	case DifficultyEasy:
		return SearchConfig{Depth: 1}
	case DifficultyHard:
		return SearchConfig{Depth: 3, UsePruning: true}
	default:
		return SearchConfig{Depth: 2, UsePruning: true}
	}
}

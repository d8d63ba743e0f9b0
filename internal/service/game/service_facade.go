package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/service/bot"
	"github.com/sirupsen/logrus"
)

// MoveCache memoises search results. Any error from Get is treated as a miss.
type MoveCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Service is the entry point for engine requests (facade)
type Service struct {
	cache    MoveCache
	cacheTTL time.Duration
	maxDepth int
}

// NewService builds the facade. cache may be nil; maxDepth <= 0 disables
// the depth ceiling.
func NewService(cache MoveCache, cacheTTL time.Duration, maxDepth int) *Service {
	return &Service{
		cache:    cache,
		cacheTTL: cacheTTL,
		maxDepth: maxDepth,
	}
}

// MaxDepth is the deepest search a client may ask for.
func (s *Service) MaxDepth() int {
	return s.maxDepth
}

// CheckConfig validates cfg against the engine and the configured ceiling.
func (s *Service) CheckConfig(cfg bot.SearchConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if s.maxDepth > 0 && cfg.Depth > s.maxDepth {
		return fmt.Errorf("%w: %d > %d", ErrDepthTooLarge, cfg.Depth, s.maxDepth)
	}
	return nil
}

// RequestAutomatedMove computes the engine's move for side on board. The
// result depends only on the arguments, which is what makes caching safe.
func (s *Service) RequestAutomatedMove(ctx context.Context, board *domain.Board, cfg bot.SearchConfig, side domain.Mark) (bot.Result, error) {
	if err := s.CheckConfig(cfg); err != nil {
		return bot.Result{}, err
	}
	if !side.IsSide() {
		return bot.Result{}, domain.ErrInvalidSide
	}

	key := cacheKey(board, cfg, side)
	if res, ok := s.lookup(ctx, key); ok {
		return res, nil
	}

	res, err := bot.BestMove(board, cfg, side)
	if err != nil {
		return bot.Result{}, err
	}
	s.store(ctx, key, res)
	return res, nil
}

// Winner reports the connected side of an arbitrary board.
func (s *Service) Winner(board *domain.Board) (domain.Mark, error) {
	return domain.CheckWinner(board)
}

func cacheKey(board *domain.Board, cfg bot.SearchConfig, side domain.Mark) string {
	return fmt.Sprintf("hex:bestmove:%s:%s:%d:%t", board.String(), side, cfg.Depth, cfg.UsePruning)
}

func (s *Service) lookup(ctx context.Context, key string) (bot.Result, bool) {
	if s.cache == nil {
		return bot.Result{}, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return bot.Result{}, false
	}
	var res bot.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		logrus.WithField("component", "cache").Warnf("dropping unreadable entry %s: %v", key, err)
		return bot.Result{}, false
	}
	return res, true
}

func (s *Service) store(ctx context.Context, key string, res bot.Result) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		logrus.WithField("component", "cache").Debugf("cache write failed: %v", err)
	}
}

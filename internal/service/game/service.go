package game

import (
	"context"
	"errors"
	"sync"

	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/service/bot"
)

var (
	ErrAutomatedMovePending = errors.New("automated move already in progress")
	ErrGameReset            = errors.New("game was reset during the search")
	ErrNoLegalMoves         = errors.New("no legal moves")
	ErrDepthTooLarge        = errors.New("search depth exceeds the configured maximum")
	ErrSessionNotFound      = errors.New("session not found")
)

// MoveFinder computes the automated side's move. *Service implements it.
type MoveFinder interface {
	RequestAutomatedMove(ctx context.Context, board *domain.Board, cfg bot.SearchConfig, side domain.Mark) (bot.Result, error)
}

// Settings describe a game: board size, who the human plays, who starts
// and how deep the engine searches.
type Settings struct {
	Size      int              `json:"size"`
	HumanSide domain.Mark      `json:"humanSide"`
	FirstSide domain.Mark      `json:"firstSide"`
	Search    bot.SearchConfig `json:"search"`
}

// DefaultSettings mirror the classic setup: 5x5, human plays blue and
// moves first, depth 1 without pruning.
func DefaultSettings() Settings {
	return Settings{
		Size:      domain.DefaultSize,
		HumanSide: domain.Blue,
		FirstSide: domain.Blue,
		Search:    bot.SearchConfig{Depth: 1},
	}
}

// Controller is the only writer of a game's authoritative state. It lets
// at most one automated search run at a time and rejects human input while
// that search is pending.
type Controller struct {
	mu       sync.Mutex
	game     *domain.Game
	settings Settings
	finder   MoveFinder
	// pending gates the current game; inflight is closed by the running
	// search when it returns, even if a reset made it stale.
	pending  bool
	inflight chan struct{}
	epoch    int
}

func NewController(settings Settings, finder MoveFinder) (*Controller, error) {
	if err := settings.Search.Validate(); err != nil {
		return nil, err
	}
	g, err := domain.NewGame(settings.Size, settings.HumanSide, settings.FirstSide)
	if err != nil {
		return nil, err
	}
	return &Controller{game: g, settings: settings, finder: finder}, nil
}

// NewGame discards the current game and starts an empty board of size.
// A size of 0 keeps the current size.
func (c *Controller) NewGame(size int) (domain.GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if size == 0 {
		size = c.settings.Size
	}
	g, err := domain.NewGame(size, c.settings.HumanSide, c.settings.FirstSide)
	if err != nil {
		return domain.GameState{}, err
	}
	c.game = g
	c.settings.Size = size
	c.pending = false
	c.epoch++
	return g.Snapshot(), nil
}

// ApplyHumanMove plays the human side at (row, col).
func (c *Controller) ApplyHumanMove(row, col int) (domain.GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game.IsFinished() {
		return c.game.Snapshot(), domain.ErrGameOver
	}
	if c.pending || c.game.Phase != domain.PhaseAwaitingHuman {
		return c.game.Snapshot(), domain.ErrNotYourTurn
	}
	if err := c.game.Play(c.game.Human, row, col); err != nil {
		return c.game.Snapshot(), err
	}
	return c.game.Snapshot(), nil
}

// PlayAutomatedMove asks the finder for the automated side's move and
// applies it. The search runs without holding the lock; a reset that lands
// meanwhile makes the result stale and it is dropped.
func (c *Controller) PlayAutomatedMove(ctx context.Context) (domain.Move, domain.GameState, error) {
	return c.playAutomated(ctx, -1)
}

// Epoch identifies the current game. It changes on every NewGame.
func (c *Controller) Epoch() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// PlayAutomatedMoveFor is PlayAutomatedMove for a move scheduled during the
// game identified by epoch. It fails with ErrGameReset once that game is gone.
func (c *Controller) PlayAutomatedMoveFor(ctx context.Context, epoch int) (domain.Move, domain.GameState, error) {
	return c.playAutomated(ctx, epoch)
}

func (c *Controller) playAutomated(ctx context.Context, want int) (domain.Move, domain.GameState, error) {
	c.mu.Lock()
	for {
		if want >= 0 && want != c.epoch {
			defer c.mu.Unlock()
			return domain.Move{}, c.game.Snapshot(), ErrGameReset
		}
		if c.game.IsFinished() {
			defer c.mu.Unlock()
			return domain.Move{}, c.game.Snapshot(), domain.ErrGameOver
		}
		if c.pending {
			defer c.mu.Unlock()
			return domain.Move{}, c.game.Snapshot(), ErrAutomatedMovePending
		}
		if c.game.Phase != domain.PhaseAutomatedTurn {
			defer c.mu.Unlock()
			return domain.Move{}, c.game.Snapshot(), domain.ErrNotYourTurn
		}
		if c.inflight == nil {
			break
		}

		// a search from before the last reset is still running
		stale := c.inflight
		c.mu.Unlock()
		select {
		case <-stale:
		case <-ctx.Done():
			c.mu.Lock()
			defer c.mu.Unlock()
			return domain.Move{}, c.game.Snapshot(), ctx.Err()
		}
		c.mu.Lock()
	}

	c.pending = true
	done := make(chan struct{})
	c.inflight = done
	board := c.game.Board.Clone()
	cfg := c.settings.Search
	side := c.game.Automated()
	epoch := c.epoch
	c.mu.Unlock()

	res, err := c.finder.RequestAutomatedMove(ctx, board, cfg, side)

	c.mu.Lock()
	defer c.mu.Unlock()
	close(done)
	c.inflight = nil
	if epoch != c.epoch {
		return domain.Move{}, c.game.Snapshot(), ErrGameReset
	}
	c.pending = false
	if err != nil {
		return domain.Move{}, c.game.Snapshot(), err
	}
	if !res.Found {
		return domain.Move{}, c.game.Snapshot(), ErrNoLegalMoves
	}
	if err := c.game.Play(side, res.Move.Row, res.Move.Col); err != nil {
		return domain.Move{}, c.game.Snapshot(), err
	}
	return res.Move, c.game.Snapshot(), nil
}

// Winner returns the recorded winner, or Empty while the game is running.
func (c *Controller) Winner() domain.Mark {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.Winner
}

func (c *Controller) State() domain.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.Snapshot()
}

// Pending reports whether a search is running, stale or not.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending || c.inflight != nil
}

func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetSearchConfig changes the engine configuration used from the next
// automated move on.
func (c *Controller) SetSearchConfig(cfg bot.SearchConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.Search = cfg
	return nil
}

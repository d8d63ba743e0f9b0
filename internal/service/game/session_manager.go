package game

import (
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/pkg/uid"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "session")

type GameSession struct {
	GameID     string
	Controller *Controller
	CreatedAt  time.Time

	mu         sync.Mutex
	lastActive time.Time
}

func (gs *GameSession) Touch() {
	gs.mu.Lock()
	gs.lastActive = time.Now()
	gs.mu.Unlock()
}

func (gs *GameSession) LastActive() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.lastActive
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session map[string]*GameSession // gameID → GameSession
	mu      sync.RWMutex
	service *Service
}

func NewSessionManager(service *Service) *SessionManager {
	return &SessionManager{
		Session: make(map[string]*GameSession),
		service: service,
	}
}

func (sm *SessionManager) Service() *Service {
	return sm.service
}

func (sm *SessionManager) CreateSession(settings Settings) (*GameSession, error) {
	if err := sm.service.CheckConfig(settings.Search); err != nil {
		return nil, err
	}
	controller, err := NewController(settings, sm.service)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &GameSession{
		GameID:     uid.GenerateGameID(),
		Controller: controller,
		CreatedAt:  now,
		lastActive: now,
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.WithFields(logrus.Fields{
		"game":  session.GameID,
		"size":  settings.Size,
		"human": settings.HumanSide,
		"depth": settings.Search.Depth,
		"prune": settings.Search.UsePruning,
	}).Info("created session")
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	session, exists := sm.Session[gameID]
	sm.mu.RUnlock()
	if exists {
		session.Touch()
	}
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return ErrSessionNotFound
	}
	delete(sm.Session, gameID)
	log.WithField("game", gameID).Info("removed session")
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupOldSessions drops sessions idle for longer than maxAge, skipping
// any with an automated move still in flight.
func (sm *SessionManager) CleanupOldSessions(maxAge time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()
	for gameID, session := range sm.Session {
		if now.Sub(session.LastActive()) <= maxAge || session.Controller.Pending() {
			continue
		}
		delete(sm.Session, gameID)
		count++
	}

	if count > 0 {
		log.Infof("memory cleanup: removed %d stale game sessions", count)
	}
	return count
}

// LiveGame summarises one session for listings.
type LiveGame struct {
	GameID    string       `json:"gameId"`
	Size      int          `json:"size"`
	Phase     domain.Phase `json:"phase"`
	MoveCount int          `json:"moveCount"`
	Winner    domain.Mark  `json:"winner"`
	StartedAt string       `json:"startedAt"`
}

// ActiveGames lists every session, oldest first.
func (sm *SessionManager) ActiveGames() []LiveGame {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, s := range sm.Session {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	games := make([]LiveGame, 0, len(sessions))
	for _, s := range sessions {
		st := s.Controller.State()
		games = append(games, LiveGame{
			GameID:    s.GameID,
			Size:      st.Board.Size(),
			Phase:     st.Phase,
			MoveCount: st.MoveCount,
			Winner:    st.Winner,
			StartedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return games
}

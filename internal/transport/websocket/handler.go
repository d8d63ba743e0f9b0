package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/service/game"
	"github.com/iamasit07/hex/backend/pkg/auth"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "ws")

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	JWTSecret      string
	// BotDelay is how long the automated reply waits after bot_thinking.
	BotDelay time.Duration
	Upgrader websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string, botDelay time.Duration) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		JWTSecret:      jwtSecret,
		BotDelay:       botDelay,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the connection and runs its message loop
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// 1. Wait for initialization
	session, ok := h.initialize(conn)
	if !ok {
		conn.Close()
		return
	}
	gameID := session.GameID
	entry := log.WithField("game", gameID)
	entry.Info("connection initialized")

	h.ConnManager.AddConnection(gameID, conn)
	defer func() {
		entry.Info("connection closed")
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(gameID, conn, done)

	st := session.Controller.State()
	h.send(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, State: &st})
	if st.Phase == domain.PhaseAutomatedTurn {
		h.scheduleAutomatedMove(session)
	}

	// 2. Main message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				entry.Warnf("disconnected unexpectedly: %v", err)
			}
			return
		}
		if !h.ConnManager.IsCurrentConnection(gameID, conn) {
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			entry.Debugf("invalid message format: %v", err)
			h.sendError(gameID, "Invalid message format")
			continue
		}
		h.processMessage(session, msg)
	}
}

// initialize reads the init message and resolves the session it names.
func (h *Handler) initialize(conn *websocket.Conn) (*game.GameSession, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Debugf("read error during init: %v", err)
		return nil, false
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.Token == "" {
		log.Debug("missing initialization or token")
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "First message must be init with a token"})
		return nil, false
	}

	claims, err := auth.ValidateSessionToken(h.JWTSecret, message.Token)
	if err != nil {
		log.Debugf("invalid token during init: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid token"})
		return nil, false
	}
	if message.GameID != "" && message.GameID != claims.GameID {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Token does not belong to this game"})
		return nil, false
	}

	session, exists := h.SessionManager.GetSession(claims.GameID)
	if !exists {
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Game not found"})
		return nil, false
	}
	return session, true
}

func (h *Handler) keepAlive(gameID string, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.ConnManager.Ping(gameID, conn); err != nil {
				return
			}
		}
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(session *game.GameSession, msg domain.ClientMessage) {
	gameID := session.GameID
	session.Touch()

	switch msg.Type {
	case "make_move":
		st, err := session.Controller.ApplyHumanMove(msg.Row, msg.Col)
		if err != nil {
			h.sendError(gameID, err.Error())
			return
		}
		h.announceMove(gameID, domain.Move{Row: msg.Row, Col: msg.Col}, st.HumanSide, st)
		if st.Phase == domain.PhaseAutomatedTurn {
			h.scheduleAutomatedMove(session)
		}

	case "new_game":
		if msg.Depth != 0 || msg.Pruning != nil {
			cfg := session.Controller.Settings().Search
			if msg.Depth != 0 {
				cfg.Depth = msg.Depth
			}
			if msg.Pruning != nil {
				cfg.UsePruning = *msg.Pruning
			}
			if err := h.SessionManager.Service().CheckConfig(cfg); err != nil {
				h.sendError(gameID, err.Error())
				return
			}
			if err := session.Controller.SetSearchConfig(cfg); err != nil {
				h.sendError(gameID, err.Error())
				return
			}
		}
		st, err := session.Controller.NewGame(msg.Size)
		if err != nil {
			h.sendError(gameID, err.Error())
			return
		}
		h.send(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, State: &st})
		if st.Phase == domain.PhaseAutomatedTurn {
			h.scheduleAutomatedMove(session)
		}

	case "get_state":
		st := session.Controller.State()
		h.send(gameID, domain.ServerMessage{Type: "game_state", GameID: gameID, State: &st})

	default:
		h.sendError(gameID, "Unknown message type")
	}
}

// scheduleAutomatedMove tells the client the engine is thinking and plays
// its reply after BotDelay.
func (h *Handler) scheduleAutomatedMove(session *game.GameSession) {
	gameID := session.GameID
	epoch := session.Controller.Epoch()
	h.send(gameID, domain.ServerMessage{Type: "bot_thinking", GameID: gameID})

	// the timer belongs to the game it was scheduled in
	time.AfterFunc(h.BotDelay, func() {
		move, st, err := session.Controller.PlayAutomatedMoveFor(context.Background(), epoch)
		switch {
		case errors.Is(err, game.ErrGameReset), errors.Is(err, game.ErrAutomatedMovePending):
			return
		case err != nil:
			log.WithField("game", gameID).Errorf("automated move failed: %v", err)
			h.sendError(gameID, err.Error())
			return
		}
		h.announceMove(gameID, move, st.AutomatedSide, st)
	})
}

func (h *Handler) announceMove(gameID string, move domain.Move, player domain.Mark, st domain.GameState) {
	h.send(gameID, domain.ServerMessage{
		Type:   "move_made",
		GameID: gameID,
		Move:   &move,
		Player: player.String(),
		State:  &st,
	})
	if st.Phase == domain.PhaseGameOver {
		log.WithFields(logrus.Fields{"game": gameID, "winner": st.Winner}).Info("game over")
		h.send(gameID, domain.ServerMessage{
			Type:   "game_over",
			GameID: gameID,
			Winner: st.Winner.String(),
			State:  &st,
		})
	}
}

func (h *Handler) send(gameID string, msg domain.ServerMessage) {
	if err := h.ConnManager.SendMessage(gameID, msg); err != nil {
		log.WithField("game", gameID).Debugf("send %s failed: %v", msg.Type, err)
	}
}

func (h *Handler) sendError(gameID, message string) {
	h.send(gameID, domain.ServerMessage{Type: "error", GameID: gameID, Message: message})
}

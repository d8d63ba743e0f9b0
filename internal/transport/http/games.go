package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/service/bot"
	"github.com/iamasit07/hex/backend/internal/service/game"
	"github.com/iamasit07/hex/backend/internal/transport/http/middleware"
	"github.com/iamasit07/hex/backend/pkg/auth"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "http")

// Defaults fill in whatever a create request leaves out.
type Defaults struct {
	Settings game.Settings
	TokenTTL time.Duration
}

type GameHandler struct {
	Sessions  *game.SessionManager
	JWTSecret string
	Defaults  Defaults
}

type createGameRequest struct {
	Size       int    `json:"size"`
	Depth      int    `json:"depth"`
	Pruning    *bool  `json:"pruning"`
	Difficulty string `json:"difficulty"`
	HumanSide  string `json:"humanSide"`
	HumanFirst *bool  `json:"humanFirst"`
}

type gameResponse struct {
	GameID   string           `json:"gameId"`
	Token    string           `json:"token,omitempty"`
	Settings game.Settings    `json:"settings"`
	State    domain.GameState `json:"state"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type automatedMoveResponse struct {
	Move  domain.Move      `json:"move"`
	State domain.GameState `json:"state"`
}

type resetRequest struct {
	Size    int   `json:"size"`
	Depth   int   `json:"depth"`
	Pruning *bool `json:"pruning"`
}

type winnerResponse struct {
	Winner   string       `json:"winner"`
	Finished bool         `json:"finished"`
	Phase    domain.Phase `json:"phase"`
}

type bestMoveRequest struct {
	Board   *domain.Board `json:"board"`
	Side    string        `json:"side"`
	Depth   int           `json:"depth"`
	Pruning bool          `json:"pruning"`
}

type bestMoveResponse struct {
	bot.Result
	Winner string `json:"winner"`
}

func (req createGameRequest) settings(defaults game.Settings) (game.Settings, error) {
	s := defaults
	if req.Size != 0 {
		s.Size = req.Size
	}
	if req.Difficulty != "" {
		s.Search = bot.ConfigFor(req.Difficulty)
	}
	if req.Depth != 0 {
		s.Search.Depth = req.Depth
	}
	if req.Pruning != nil {
		s.Search.UsePruning = *req.Pruning
	}
	if req.HumanSide != "" {
		side, err := domain.ParseSide(req.HumanSide)
		if err != nil {
			return s, err
		}
		s.HumanSide = side
		s.FirstSide = side
	}
	if req.HumanFirst != nil {
		if *req.HumanFirst {
			s.FirstSide = s.HumanSide
		} else {
			s.FirstSide = s.HumanSide.Opponent()
		}
	}
	return s, nil
}

// CreateGame starts a session and hands back the token needed to play in it
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	settings, err := req.settings(h.Defaults.Settings)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := h.Sessions.CreateSession(settings)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := auth.GenerateSessionToken(h.JWTSecret, session.GameID, settings.HumanSide.String(), h.Defaults.TokenTTL)
	if err != nil {
		_ = h.Sessions.RemoveSession(session.GameID)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, gameResponse{
		GameID:   session.GameID,
		Token:    token,
		Settings: session.Controller.Settings(),
		State:    session.Controller.State(),
	})
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*game.GameSession, bool) {
	session, ok := h.Sessions.GetSession(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, game.ErrSessionNotFound)
	}
	return session, ok
}

// playerSession is session for routes behind SessionAuth. The token must
// also name the side the human plays.
func (h *GameHandler) playerSession(w http.ResponseWriter, r *http.Request) (*game.GameSession, bool) {
	session, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok || claims.Side != session.Controller.Settings().HumanSide.String() {
		writeError(w, errWrongSide)
		return nil, false
	}
	return session, true
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gameResponse{
		GameID:   session.GameID,
		Settings: session.Controller.Settings(),
		State:    session.Controller.State(),
	})
}

func (h *GameHandler) PlayMove(w http.ResponseWriter, r *http.Request) {
	session, ok := h.playerSession(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Row == nil || req.Col == nil {
		writeError(w, errBadPayload)
		return
	}

	st, err := session.Controller.ApplyHumanMove(*req.Row, *req.Col)
	if err != nil {
		writeError(w, err)
		return
	}
	log.WithFields(logrus.Fields{"game": session.GameID, "row": *req.Row, "col": *req.Col}).Debug("human move")
	writeJSON(w, http.StatusOK, st)
}

func (h *GameHandler) PlayAutomatedMove(w http.ResponseWriter, r *http.Request) {
	session, ok := h.playerSession(w, r)
	if !ok {
		return
	}
	move, st, err := session.Controller.PlayAutomatedMove(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, automatedMoveResponse{Move: move, State: st})
}

func (h *GameHandler) ResetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.playerSession(w, r)
	if !ok {
		return
	}
	var req resetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Depth != 0 || req.Pruning != nil {
		cfg := session.Controller.Settings().Search
		if req.Depth != 0 {
			cfg.Depth = req.Depth
		}
		if req.Pruning != nil {
			cfg.UsePruning = *req.Pruning
		}
		if err := h.Sessions.Service().CheckConfig(cfg); err != nil {
			writeError(w, err)
			return
		}
		if err := session.Controller.SetSearchConfig(cfg); err != nil {
			writeError(w, err)
			return
		}
	}

	st, err := session.Controller.NewGame(req.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gameResponse{
		GameID:   session.GameID,
		Settings: session.Controller.Settings(),
		State:    st,
	})
}

func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.RemoveSession(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	st := session.Controller.State()
	resp := winnerResponse{Finished: st.Phase == domain.PhaseGameOver, Phase: st.Phase}
	if st.Winner.IsSide() {
		resp.Winner = st.Winner.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// BestMove runs the engine on an arbitrary board without creating a session
func (h *GameHandler) BestMove(w http.ResponseWriter, r *http.Request) {
	var req bestMoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Board == nil {
		writeError(w, errBadPayload)
		return
	}
	side, err := domain.ParseSide(req.Side)
	if err != nil {
		writeError(w, err)
		return
	}

	svc := h.Sessions.Service()
	winner, err := svc.Winner(req.Board)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := bestMoveResponse{}
	if winner.IsSide() {
		resp.Winner = winner.String()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	res, err := svc.RequestAutomatedMove(r.Context(), req.Board, bot.SearchConfig{Depth: req.Depth, UsePruning: req.Pruning}, side)
	if err != nil {
		writeError(w, err)
		return
	}
	resp.Result = res
	writeJSON(w, http.StatusOK, resp)
}

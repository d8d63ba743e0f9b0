package http

import (
	"net/http"

	"github.com/iamasit07/hex/backend/internal/service/game"
)

type WatchHandler struct {
	SessionManager *game.SessionManager
}

func NewWatchHandler(sm *game.SessionManager) *WatchHandler {
	return &WatchHandler{SessionManager: sm}
}

// GetLiveGames returns every session currently held in memory
func (h *WatchHandler) GetLiveGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.SessionManager.ActiveGames())
}

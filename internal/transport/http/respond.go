package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/iamasit07/hex/backend/internal/domain"
	"github.com/iamasit07/hex/backend/internal/service/bot"
	"github.com/iamasit07/hex/backend/internal/service/game"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithField("component", "http").Errorf("request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errWrongSide):
		return http.StatusForbidden
	case errors.Is(err, errBadPayload),
		errors.Is(err, domain.ErrOutOfBounds),
		errors.Is(err, domain.ErrInvalidSize),
		errors.Is(err, domain.ErrInvalidBoard),
		errors.Is(err, domain.ErrInvalidSide),
		errors.Is(err, domain.ErrInvalidMark),
		errors.Is(err, bot.ErrInvalidDepth),
		errors.Is(err, game.ErrDepthTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCellOccupied),
		errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, domain.ErrGameOver),
		errors.Is(err, game.ErrAutomatedMovePending),
		errors.Is(err, game.ErrGameReset),
		errors.Is(err, game.ErrNoLegalMoves):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decodeBody decodes an optional JSON body into v. An empty body is fine.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return nil
}

var (
	errBadPayload = errors.New("invalid payload")
	errWrongSide  = errors.New("token does not belong to the human side")
)

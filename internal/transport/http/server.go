package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/iamasit07/hex/backend/internal/service/game"
	"github.com/iamasit07/hex/backend/internal/transport/http/middleware"
)

type ServerOptions struct {
	Sessions       *game.SessionManager
	JWTSecret      string
	AllowedOrigins []string
	Defaults       Defaults
	// WebSocket is mounted at /ws when set.
	WebSocket http.Handler
	// Connections reports live websocket connections on /healthz.
	Connections func() int
}

// NewServer wires routes and returns an http.Handler.
func NewServer(opts ServerOptions) http.Handler {
	games := &GameHandler{
		Sessions:  opts.Sessions,
		JWTSecret: opts.JWTSecret,
		Defaults:  opts.Defaults,
	}
	watch := NewWatchHandler(opts.Sessions)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"ok":       true,
			"sessions": opts.Sessions.Count(),
			"maxDepth": opts.Sessions.Service().MaxDepth(),
		}
		if opts.Connections != nil {
			body["connections"] = opts.Connections()
		}
		writeJSON(w, http.StatusOK, body)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/bestmove", games.BestMove)
		r.Get("/games", watch.GetLiveGames)
		r.Post("/games", games.CreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", games.GetGame)
			r.Get("/winner", games.GetWinner)

			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionAuth(opts.JWTSecret))
				r.Post("/moves", games.PlayMove)
				r.Post("/automated-move", games.PlayAutomatedMove)
				r.Post("/reset", games.ResetGame)
				r.Delete("/", games.DeleteGame)
			})
		})
	})

	if opts.WebSocket != nil {
		r.Handle("/ws", opts.WebSocket)
	}
	return r
}

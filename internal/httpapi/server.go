// Package httpapi exposes cuttle sessions over HTTP+JSON (spec.md §6.2),
// grounded on original_source/server/app.py's route layout and adapted to
// Go's stdlib router: no complete example repo in the corpus ships an
// importable HTTP router framework, so net/http.ServeMux's Go 1.22
// method+pattern matching is used directly rather than inventing an
// ungrounded third-party dependency.
package httpapi

import (
	"net/http"
	"time"

	"github.com/cuttlegame/cuttle/internal/store"
	"github.com/cuttlegame/cuttle/pkg/cuttle"
	"github.com/cuttlegame/cuttle/pkg/opponent"
	"github.com/decred/slog"
)

// humanSeat and aiSeat fix the two-player assignment for sessions created
// through this surface: the caller is always seat 0, the automated
// opponent is always seat 1.
const (
	humanSeat = 0
	aiSeat    = 1
)

// Server serves the session API over HTTP.
type Server struct {
	store     *store.Store
	log       slog.Logger
	startedAt time.Time
	newConfig func() cuttle.Config
}

// NewServer builds an httpapi.Server backed by st. newConfig is called once
// per created session to get a fresh, seeded cuttle.Config.
func NewServer(st *store.Store, log slog.Logger, newConfig func() cuttle.Config) *Server {
	return &Server{
		store:     st,
		log:       log,
		startedAt: time.Now(),
		newConfig: newConfig,
	}
}

// Handler builds the routed mux for this server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /api/sessions/{id}/actions", s.handleLegalActions)
	mux.HandleFunc("POST /api/sessions/{id}/actions", s.handleApplyAction)
	mux.HandleFunc("GET /api/sessions/{id}/history", s.handleHistory)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Server) newOpponent(cfg cuttle.Config) cuttle.OpponentPort {
	return opponent.NewRandom(cfg.Rng)
}

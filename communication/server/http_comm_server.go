package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"banqi/agent"
	"banqi/communication"
	"banqi/game"
)

// Server exposes one agent over HTTP. Requests are searched one at a time
// since the agent keeps per-game state.
type Server struct {
	mu     sync.Mutex
	agent  agent.Agent
	router chi.Router
}

func NewServer(a agent.Agent) *Server {
	s := &Server{agent: a}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/move", s.handleMove)
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var request communication.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: "invalid payload"})
		return
	}
	position, err := game.ParsePosition(request.Position)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	move, metric, err := s.agent.FindMove(r.Context(), position)
	s.mu.Unlock()
	switch {
	case errors.Is(err, agent.ErrNoLegalMoves):
		writeJSON(w, http.StatusConflict, communication.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		log.Error().Err(err).Str("position", request.Position).Msg("search failed")
		writeJSON(w, http.StatusInternalServerError, communication.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, communication.NewMoveResponse(move, metric))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

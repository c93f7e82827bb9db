/* handlers.go
 * Contains the HTTP routes and their handlers
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"lck-pickems/api/api"
	"lck-pickems/api/bracket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// maxBodyBytes bounds the size of a request body
const maxBodyBytes = 1 << 16

// Router builds the chi router for every route
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/bracket", s.HandleBracket)
		r.Get("/leaderboard", s.HandleLeaderboard)
		r.Get("/survivors", s.HandleSurvivors)
		r.Get("/next", s.HandleNextMatch)
		r.Get("/stats/{match}", s.HandlePickStats)
		r.Post("/results", s.HandleSetResult)
		r.Delete("/results/{match}", s.HandleClearResult)
	})
	return r
}

// logRequests logs every request once it has been served
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.api.Logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}

// matchParam returns the {match} url parameter. chi leaves it escaped when the request carried a raw path.
func matchParam(r *http.Request) string {
	raw := chi.URLParam(r, "match")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps api errors onto status codes: bad input is 400, a result that conflicts with the stored
// results is 409 and everything else is 500
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var unknown *bracket.UnknownMatchError
	var inconsistent *bracket.InconsistentResultError
	switch {
	case errors.As(err, &unknown), errors.Is(err, api.ErrUnknownTeam), errors.Is(err, api.ErrInvalidPrediction):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, api.ErrResultAlreadyRecorded), errors.As(err, &inconsistent):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		s.api.Logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// HandleBracket returns the resolved bracket
func (s *Server) HandleBracket(w http.ResponseWriter, r *http.Request) {
	view, err := s.api.GetBracket(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleLeaderboard returns the latest leaderboard snapshot
func (s *Server) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := s.api.GetLeaderboard(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboard)
}

// HandleSurvivors returns the live standings
func (s *Server) HandleSurvivors(w http.ResponseWriter, r *http.Request) {
	standings, err := s.api.GetStandings(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

// HandleNextMatch returns the next key waiting for a result
func (s *Server) HandleNextMatch(w http.ResponseWriter, r *http.Request) {
	next, err := s.api.GetNextMatch(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

// HandlePickStats returns how everyone picked one key
func (s *Server) HandlePickStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.api.GetPickStats(r.Context(), matchParam(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleSetResult records a result and refreshes the leaderboard snapshot
func (s *Server) HandleSetResult(w http.ResponseWriter, r *http.Request) {
	var req ResultRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Match) == "" || strings.TrimSpace(req.Winner) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "match and winner are required"})
		return
	}

	key, winner, err := s.api.SetMatchResult(r.Context(), req.Match, req.Winner)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.refreshLeaderboard(r)
	writeJSON(w, http.StatusOK, ResultResponse{Match: key, Winner: winner})
}

// HandleClearResult removes a recorded result
func (s *Server) HandleClearResult(w http.ResponseWriter, r *http.Request) {
	key, err := s.api.ClearMatchResult(r.Context(), matchParam(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.refreshLeaderboard(r)
	writeJSON(w, http.StatusOK, ResultResponse{Match: key})
}

func (s *Server) refreshLeaderboard(r *http.Request) {
	if _, err := s.api.GenerateLeaderboard(r.Context()); err != nil {
		s.api.Logger.Warn("leaderboard refresh failed", zap.Error(err))
	}
}

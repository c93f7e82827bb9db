/* models.go
 * Contains the configuration and request/response bodies of the HTTP server
 */

package web

import (
	"lck-pickems/api/api"
	"lck-pickems/api/bracket"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server is the HTTP server that exposes the bracket and the leaderboard as JSON
type Server struct {
	api *api.API
}

// NewServer returns a Server for apiPtr
func NewServer(apiPtr *api.API) *Server {
	return &Server{api: apiPtr}
}

// ResultRequest is the body of POST /api/results
type ResultRequest struct {
	Match  string `json:"match"`
	Winner string `json:"winner"`
}

// ResultResponse echoes the canonical key and team of a stored or cleared result
type ResultResponse struct {
	Match  bracket.MatchID `json:"match"`
	Winner bracket.Team    `json:"winner,omitempty"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

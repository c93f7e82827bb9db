/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	StoreUserPrediction(ctx context.Context, prediction logic.Prediction) error
	ReplaceImportedPredictions(ctx context.Context, predictions []logic.Prediction) error
	GetUserPrediction(ctx context.Context, userID string) (logic.Prediction, error)
	GetAllUserPredictions(ctx context.Context) ([]logic.Prediction, error)

	FetchMatchResults(ctx context.Context) (bracket.ResultMap, error)
	StoreMatchResult(ctx context.Context, id bracket.MatchID, winner bracket.Team) error
	ClearMatchResult(ctx context.Context, id bracket.MatchID) error

	StoreLeaderboard(ctx context.Context, leaderboard Leaderboard) error
	FetchLeaderboard(ctx context.Context) (Leaderboard, error)

	GetTournament() string
	Disconnect(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetTournament returns the tournament every document is keyed by
func (s *Store) GetTournament() string {
	return s.Tournament
}

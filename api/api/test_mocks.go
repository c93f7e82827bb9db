/* test_mocks.go
 * Contains mock structures for testing the API package and its consumers
 */

package api

import (
	"context"

	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"
	"lck-pickems/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the store.Interface in memory for testing
type MockStore struct {
	// Storage for mock data
	Predictions map[string]logic.Prediction
	Imported    []logic.Prediction
	Results     bracket.ResultMap
	Leaderboard *store.Leaderboard
	Tournament  string

	// Error injection for testing error paths
	StoreUserPredictionError        error
	ReplaceImportedPredictionsError error
	GetUserPredictionError          error
	GetAllUserPredictionsError      error
	FetchMatchResultsError          error
	StoreMatchResultError           error
	ClearMatchResultError           error
	StoreLeaderboardError           error
	FetchLeaderboardError           error

	Disconnected bool
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates a new MockStore with no data
func NewMockStore(tournament string) *MockStore {
	return &MockStore{
		Predictions: make(map[string]logic.Prediction),
		Results:     make(bracket.ResultMap),
		Tournament:  tournament,
	}
}

// StoreUserPrediction mock implementation
func (m *MockStore) StoreUserPrediction(ctx context.Context, prediction logic.Prediction) error {
	if m.StoreUserPredictionError != nil {
		return m.StoreUserPredictionError
	}
	m.Predictions[prediction.UserID] = prediction
	return nil
}

// ReplaceImportedPredictions mock implementation
func (m *MockStore) ReplaceImportedPredictions(ctx context.Context, predictions []logic.Prediction) error {
	if m.ReplaceImportedPredictionsError != nil {
		return m.ReplaceImportedPredictionsError
	}
	m.Imported = predictions
	return nil
}

// GetUserPrediction mock implementation
func (m *MockStore) GetUserPrediction(ctx context.Context, userID string) (logic.Prediction, error) {
	if m.GetUserPredictionError != nil {
		return logic.Prediction{}, m.GetUserPredictionError
	}
	pred, ok := m.Predictions[userID]
	if !ok {
		return logic.Prediction{}, mongo.ErrNoDocuments
	}
	return pred, nil
}

// GetAllUserPredictions mock implementation. Imported predictions come first.
func (m *MockStore) GetAllUserPredictions(ctx context.Context) ([]logic.Prediction, error) {
	if m.GetAllUserPredictionsError != nil {
		return nil, m.GetAllUserPredictionsError
	}
	predictions := append([]logic.Prediction{}, m.Imported...)
	for _, pred := range m.Predictions {
		predictions = append(predictions, pred)
	}
	return predictions, nil
}

// FetchMatchResults mock implementation
func (m *MockStore) FetchMatchResults(ctx context.Context) (bracket.ResultMap, error) {
	if m.FetchMatchResultsError != nil {
		return nil, m.FetchMatchResultsError
	}
	return m.Results.Clone(), nil
}

// StoreMatchResult mock implementation
func (m *MockStore) StoreMatchResult(ctx context.Context, id bracket.MatchID, winner bracket.Team) error {
	if m.StoreMatchResultError != nil {
		return m.StoreMatchResultError
	}
	m.Results[id] = winner
	return nil
}

// ClearMatchResult mock implementation
func (m *MockStore) ClearMatchResult(ctx context.Context, id bracket.MatchID) error {
	if m.ClearMatchResultError != nil {
		return m.ClearMatchResultError
	}
	delete(m.Results, id)
	return nil
}

// StoreLeaderboard mock implementation
func (m *MockStore) StoreLeaderboard(ctx context.Context, leaderboard store.Leaderboard) error {
	if m.StoreLeaderboardError != nil {
		return m.StoreLeaderboardError
	}
	m.Leaderboard = &leaderboard
	return nil
}

// FetchLeaderboard mock implementation
func (m *MockStore) FetchLeaderboard(ctx context.Context) (store.Leaderboard, error) {
	if m.FetchLeaderboardError != nil {
		return store.Leaderboard{}, m.FetchLeaderboardError
	}
	if m.Leaderboard == nil {
		return store.Leaderboard{}, mongo.ErrNoDocuments
	}
	return *m.Leaderboard, nil
}

// GetTournament mock implementation
func (m *MockStore) GetTournament() string {
	return m.Tournament
}

// Disconnect mock implementation
func (m *MockStore) Disconnect(ctx context.Context) error {
	m.Disconnected = true
	return nil
}

// SetResults replaces the stored results, used to set up test scenarios
func (m *MockStore) SetResults(results bracket.ResultMap) {
	m.Results = results.Clone()
}

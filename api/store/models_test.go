/* models_test.go
 * Contains unit tests for models.go
 */

package store

import (
	"testing"

	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"

	"github.com/stretchr/testify/assert"
)

func TestPredictionDoc_Conversion(t *testing.T) {
	p := logic.Prediction{
		Name:   "faker",
		UserID: "user1",
		Picks:  map[bracket.MatchID]bracket.Team{bracket.R1M1: "T1", bracket.GENChoice: "KT"},
	}

	doc := NewPredictionDoc(p, testTournament, SourceDiscord, 1700000000)

	assert.Equal(t, testTournament, doc.Tournament)
	assert.Equal(t, "user1", doc.UserID)
	assert.Equal(t, "faker", doc.Username)
	assert.Equal(t, SourceDiscord, doc.Source)
	assert.Equal(t, map[string]string{"R1 M1": "T1", "GEN Choice": "KT"}, doc.Picks)
	assert.Equal(t, p, doc.ToPrediction())
}

func TestResultsDoc_ToResultMapDropsBlanks(t *testing.T) {
	doc := ResultsDoc{Results: map[string]string{"R1 M1": "T1", "R1 M2": ""}}

	assert.Equal(t, bracket.ResultMap{bracket.R1M1: "T1"}, doc.ToResultMap())
}

func TestNewLeaderboard_SharedRanks(t *testing.T) {
	ranked := []logic.ScoredPrediction{
		{Name: "A", WrongCount: 0, Accuracy: 1},
		{Name: "B", WrongCount: 0, Accuracy: 1},
		{Name: "C", WrongCount: 2, Eliminated: true, EvaluatedCount: 4, Accuracy: 0.5},
	}

	lb := NewLeaderboard(testTournament, ranked, 1700000000)

	assert.Equal(t, testTournament, lb.Tournament)
	assert.Equal(t, int64(1700000000), lb.GeneratedAt)
	assert.Len(t, lb.Entries, 3)
	assert.Equal(t, 1, lb.Entries[0].Rank)
	assert.Equal(t, 1, lb.Entries[1].Rank)
	assert.Equal(t, 3, lb.Entries[2].Rank)
	assert.True(t, lb.Entries[2].Eliminated)
	assert.Equal(t, "C", lb.Entries[2].Username)
}

func TestNewLeaderboard_Empty(t *testing.T) {
	lb := NewLeaderboard(testTournament, nil, 1)

	assert.Empty(t, lb.Entries)
}

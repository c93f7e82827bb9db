/* models.go
 * This file contain the structs and helper functions that relate to DB objects
 */

package store

import (
	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Where a stored prediction came from
const (
	SourceDiscord = "discord"
	SourceImport  = "import"
)

// PredictionDoc is the way a prediction is stored in the DB. Imported predictions have no user id and several can
// share a username.
type PredictionDoc struct {
	Id         primitive.ObjectID `bson:"_id,omitempty"`
	Tournament string             `bson:"tournament"`
	UserID     string             `bson:"userid,omitempty"`
	Username   string             `bson:"username"`
	Source     string             `bson:"source"`
	Picks      map[string]string  `bson:"picks"`
	UpdatedAt  int64              `bson:"updated_at,omitempty"`
}

// ResultsDoc holds every recorded result of a tournament, keyed by entry key
type ResultsDoc struct {
	Tournament string            `bson:"tournament"`
	Results    map[string]string `bson:"results"`
	UpdatedAt  int64             `bson:"updated_at,omitempty"`
}

// LeaderboardEntry is one ranked row of a leaderboard snapshot
type LeaderboardEntry struct {
	Rank           int     `bson:"rank" json:"rank"`
	UserID         string  `bson:"userid,omitempty" json:"userId,omitempty"`
	Username       string  `bson:"username" json:"username"`
	WrongCount     int     `bson:"wrong_count" json:"wrongCount"`
	EvaluatedCount int     `bson:"evaluated_count" json:"evaluatedCount"`
	Eliminated     bool    `bson:"eliminated" json:"eliminated"`
	Accuracy       float64 `bson:"accuracy" json:"accuracy"`
}

// Leaderboard is a stored snapshot of the ranking
type Leaderboard struct {
	Tournament  string             `bson:"tournament" json:"tournament"`
	GeneratedAt int64              `bson:"generated_at" json:"generatedAt"`
	Entries     []LeaderboardEntry `bson:"entries" json:"entries"`
}

// ToPrediction converts a stored document into a logic.Prediction
func (d PredictionDoc) ToPrediction() logic.Prediction {
	p := logic.Prediction{
		Name:   d.Username,
		UserID: d.UserID,
		Picks:  make(map[bracket.MatchID]bracket.Team, len(d.Picks)),
	}
	for key, team := range d.Picks {
		p.Picks[bracket.MatchID(key)] = bracket.Team(team)
	}
	return p
}

// NewPredictionDoc converts a logic.Prediction into the document stored for tournament
func NewPredictionDoc(p logic.Prediction, tournament string, source string, updatedAt int64) PredictionDoc {
	picks := make(map[string]string, len(p.Picks))
	for key, team := range p.Picks {
		picks[string(key)] = string(team)
	}
	return PredictionDoc{
		Tournament: tournament,
		UserID:     p.UserID,
		Username:   p.Name,
		Source:     source,
		Picks:      picks,
		UpdatedAt:  updatedAt,
	}
}

// ToResultMap converts the stored results, dropping blank values
func (d ResultsDoc) ToResultMap() bracket.ResultMap {
	results := make(bracket.ResultMap, len(d.Results))
	for key, team := range d.Results {
		if team != "" {
			results[bracket.MatchID(key)] = bracket.Team(team)
		}
	}
	return results
}

// NewLeaderboard builds a snapshot from ranked scores. Entries sharing a wrong count share a rank.
func NewLeaderboard(tournament string, ranked []logic.ScoredPrediction, generatedAt int64) Leaderboard {
	lb := Leaderboard{Tournament: tournament, GeneratedAt: generatedAt, Entries: make([]LeaderboardEntry, 0, len(ranked))}
	rank := 0
	for i, s := range ranked {
		if i == 0 || ranked[i-1].WrongCount != s.WrongCount {
			rank = i + 1
		}
		lb.Entries = append(lb.Entries, LeaderboardEntry{
			Rank:           rank,
			UserID:         s.UserID,
			Username:       s.Name,
			WrongCount:     s.WrongCount,
			EvaluatedCount: s.EvaluatedCount,
			Eliminated:     s.Eliminated,
			Accuracy:       s.Accuracy,
		})
	}
	return lb
}

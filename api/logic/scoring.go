/* scoring.go
 * Contains the logic for scoring a participant's bracket prediction against the recorded results
 */

package logic

import (
	"lck-pickems/api/bracket"
)

// Prediction is one participant's full bracket. Name is a display key and is not guaranteed to be unique.
type Prediction struct {
	Name   string
	UserID string
	Picks  map[bracket.MatchID]bracket.Team
}

// Pick returns the team predicted for id. A missing or empty pick is reported as not predicted.
func (p Prediction) Pick(id bracket.MatchID) (bracket.Team, bool) {
	team, ok := p.Picks[id]
	if !ok || !team.Determined() {
		return bracket.Undetermined, false
	}
	return team, true
}

// Outcome is the state of a single pick
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomePending Outcome = "pending"
	OutcomeNoPick  Outcome = "no-pick"
)

// PickResult is the evaluation of one pick against the results
type PickResult struct {
	Match     bracket.MatchID `json:"match"`
	Predicted bracket.Team    `json:"predicted,omitempty"`
	Actual    bracket.Team    `json:"actual,omitempty"`
	Outcome   Outcome         `json:"outcome"`
}

// ScoredPrediction is the derived score of a Prediction for one snapshot of results
type ScoredPrediction struct {
	Name           string  `json:"name"`
	UserID         string  `json:"userId,omitempty"`
	WrongCount     int     `json:"wrongCount"`
	EvaluatedCount int     `json:"evaluatedCount"`
	Eliminated     bool    `json:"eliminated"`
	Accuracy       float64 `json:"accuracy"`
}

// Evaluate compares every pick in ids with the results.
// Preconditions: ids are catalog match ids; choice keys are never scored
// Postconditions: Returns one PickResult per id in the same order
func Evaluate(prediction Prediction, results bracket.ResultMap, ids []bracket.MatchID) []PickResult {
	out := make([]PickResult, 0, len(ids))
	for _, id := range ids {
		predicted, picked := prediction.Pick(id)
		actual, decided := results.Winner(id)

		res := PickResult{Match: id, Predicted: predicted, Actual: actual}
		switch {
		case !picked:
			res.Outcome = OutcomeNoPick
		case !decided:
			res.Outcome = OutcomePending
		case predicted == actual:
			res.Outcome = OutcomeCorrect
		default:
			res.Outcome = OutcomeWrong
		}
		out = append(out, res)
	}
	return out
}

// Score counts the wrong picks among the decided matches in ids. Undecided matches never count, and neither does a
// decided match the participant made no pick for. A participant is eliminated by a single wrong pick.
func Score(prediction Prediction, results bracket.ResultMap, ids []bracket.MatchID) ScoredPrediction {
	scored := ScoredPrediction{Name: prediction.Name, UserID: prediction.UserID}

	for _, pick := range Evaluate(prediction, results, ids) {
		switch pick.Outcome {
		case OutcomeWrong:
			scored.WrongCount++
			scored.EvaluatedCount++
		case OutcomeCorrect:
			scored.EvaluatedCount++
		}
	}

	scored.Eliminated = scored.WrongCount > 0
	// Nobody is wrong on zero evidence
	scored.Accuracy = 1.0
	if scored.EvaluatedCount > 0 {
		scored.Accuracy = float64(scored.EvaluatedCount-scored.WrongCount) / float64(scored.EvaluatedCount)
	}
	return scored
}

// Scorer scores predictions against a fixed catalog
type Scorer struct {
	catalog *bracket.Catalog
}

// NewScorer returns a Scorer for catalog
func NewScorer(catalog *bracket.Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score scores one prediction over every catalog match
func (s *Scorer) Score(prediction Prediction, results bracket.ResultMap) ScoredPrediction {
	return Score(prediction, results, s.catalog.MatchIDs())
}

// Evaluate evaluates one prediction over every catalog match
func (s *Scorer) Evaluate(prediction Prediction, results bracket.ResultMap) []PickResult {
	return Evaluate(prediction, results, s.catalog.MatchIDs())
}

// ScoreAll scores every prediction. Participants sharing a name are scored separately.
func (s *Scorer) ScoreAll(predictions []Prediction, results bracket.ResultMap) []ScoredPrediction {
	ids := s.catalog.MatchIDs()
	out := make([]ScoredPrediction, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, Score(p, results, ids))
	}
	return out
}

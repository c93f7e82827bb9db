/* prediction.go
 * Contains the logic for generating predictions and checking them against the bracket
 */

package logic

import (
	"fmt"

	"lck-pickems/api/bracket"
	"lck-pickems/api/shared"
)

// GeneratePrediction builds a Prediction from picks listed in the same order as keys
// Preconditions: teams are valid catalog teams, keys are the catalog's entry keys
// Postconditions: Returns the prediction, or an error if the number of picks is wrong
func GeneratePrediction(user shared.User, teams []bracket.Team, keys []bracket.MatchID) (Prediction, error) {
	if len(teams) != len(keys) {
		return Prediction{}, fmt.Errorf("this bracket requires %d picks but input was %d", len(keys), len(teams))
	}

	prediction := Prediction{
		Name:   user.Username,
		UserID: user.UserID,
		Picks:  make(map[bracket.MatchID]bracket.Team, len(keys)),
	}
	for i, key := range keys {
		prediction.Picks[key] = teams[i]
	}
	return prediction, nil
}

// MissingPicks lists the keys the prediction holds no pick for
func MissingPicks(prediction Prediction, keys []bracket.MatchID) []bracket.MatchID {
	var missing []bracket.MatchID
	for _, key := range keys {
		if _, ok := prediction.Pick(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// CheckConsistency plays the prediction through the bracket as if every pick had happened and returns the picks
// that contradict each other, e.g. a winner predicted for a match that team could not reach
func CheckConsistency(resolver *bracket.Resolver, prediction Prediction) []*bracket.InconsistentResultError {
	results := make(bracket.ResultMap, len(prediction.Picks))
	for id, team := range prediction.Picks {
		results[id] = team
	}
	_, err := resolver.Resolve(results)
	return bracket.Inconsistencies(err)
}

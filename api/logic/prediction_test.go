/* prediction_test.go
 * Contains unit tests for prediction.go functions
 */

package logic

import (
	"testing"

	"lck-pickems/api/bracket"
	"lck-pickems/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region GeneratePrediction tests

func TestGeneratePrediction(t *testing.T) {
	user := shared.User{UserID: "user123", Username: "testuser"}
	keys := bracket.LCKPlayoffs().EntryKeys()
	picks := fullPicks()
	teams := make([]bracket.Team, 0, len(keys))
	for _, key := range keys {
		teams = append(teams, picks[key])
	}

	prediction, err := GeneratePrediction(user, teams, keys)

	require.NoError(t, err)
	assert.Equal(t, "user123", prediction.UserID)
	assert.Equal(t, "testuser", prediction.Name)
	assert.Equal(t, picks, prediction.Picks)
}

func TestGeneratePrediction_WrongCount(t *testing.T) {
	user := shared.User{UserID: "user123", Username: "testuser"}
	keys := bracket.LCKPlayoffs().EntryKeys()

	_, err := GeneratePrediction(user, []bracket.Team{"T1", "KT"}, keys)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires 11 picks but input was 2")
}

// endregion

// region MissingPicks tests

func TestMissingPicks(t *testing.T) {
	keys := bracket.LCKPlayoffs().EntryKeys()
	prediction := Prediction{Name: "A", Picks: fullPicks()}
	delete(prediction.Picks, bracket.GENChoice)
	prediction.Picks[bracket.R4LF] = ""

	missing := MissingPicks(prediction, keys)

	assert.Equal(t, []bracket.MatchID{bracket.GENChoice, bracket.R4LF}, missing)
}

// endregion

// region CheckConsistency tests

func TestCheckConsistency_ValidBracket(t *testing.T) {
	resolver := bracket.NewResolver(bracket.LCKPlayoffs())

	issues := CheckConsistency(resolver, Prediction{Name: "A", Picks: fullPicks()})

	assert.Empty(t, issues)
}

func TestCheckConsistency_ImpossiblePick(t *testing.T) {
	resolver := bracket.NewResolver(bracket.LCKPlayoffs())
	prediction := Prediction{Name: "A", Picks: map[bracket.MatchID]bracket.Team{
		bracket.R1M1:      "T1",
		bracket.R1M2:      "KT",
		bracket.GENChoice: "KT",
		// DK lost R1 M1 in this prediction
		bracket.R2M1: "DK",
	}}

	issues := CheckConsistency(resolver, prediction)

	require.Len(t, issues, 1)
	assert.Equal(t, bracket.R2M1, issues[0].ID)
	assert.Equal(t, bracket.Team("DK"), issues[0].Winner)
}

// endregion

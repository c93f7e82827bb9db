/* views_test.go
 * Contains unit tests for views.go
 */

package api

import (
	"testing"

	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewDeps() (*bracket.Resolver, *logic.TeamMatcher) {
	catalog := bracket.LCKPlayoffs()
	return bracket.NewResolver(catalog), logic.NewTeamMatcher(catalog.Teams(), logic.DefaultTeamAliases)
}

// region ApplyResult tests

func TestApplyResult_AddsResult(t *testing.T) {
	resolver, matcher := newViewDeps()
	results := bracket.ResultMap{}

	key, team, changed, err := ApplyResult(resolver, matcher, results, "R1 M2", "bnk fearx")

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, bracket.R1M2, key)
	assert.Equal(t, bracket.Team("BFX"), team)
	assert.Equal(t, bracket.ResultMap{bracket.R1M2: "BFX"}, results)
}

func TestApplyResult_Idempotent(t *testing.T) {
	resolver, matcher := newViewDeps()
	results := bracket.ResultMap{bracket.R1M1: "T1"}
	before := results.Clone()

	_, _, changed, err := ApplyResult(resolver, matcher, results, "R1 M1", "T1")

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, cmp.Diff(before, results))
}

func TestApplyResult_RejectedLeavesResults(t *testing.T) {
	resolver, matcher := newViewDeps()
	results := bracket.ResultMap{bracket.R1M1: "T1", bracket.R1M2: "KT", bracket.GENChoice: "KT"}
	before := results.Clone()

	tests := []struct {
		name  string
		match string
		team  string
		check func(t *testing.T, err error)
	}{
		{"unknown match", "Semi", "T1", func(t *testing.T, err error) {
			var unknown *bracket.UnknownMatchError
			assert.ErrorAs(t, err, &unknown)
		}},
		{"unknown team", "R2 M1", "Fnatic", func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrUnknownTeam)
			assert.Contains(t, err.Error(), "valid teams are T1, DK, KT, BFX, GEN, HLE")
		}},
		{"changed result", "R1 M1", "DK", func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrResultAlreadyRecorded)
		}},
		{"not a participant", "R2 M2", "KT", func(t *testing.T, err error) {
			var inconsistent *bracket.InconsistentResultError
			require.ErrorAs(t, err, &inconsistent)
			assert.Equal(t, bracket.R2M2, inconsistent.ID)
		}},
		{"participants unknown", "Grand Final", "GEN", func(t *testing.T, err error) {
			var inconsistent *bracket.InconsistentResultError
			assert.ErrorAs(t, err, &inconsistent)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, changed, err := ApplyResult(resolver, matcher, results, tt.match, tt.team)
			require.Error(t, err)
			assert.False(t, changed)
			tt.check(t, err)
			assert.Empty(t, cmp.Diff(before, results))
		})
	}
}

func TestApplyResult_ChoiceWaitsForPool(t *testing.T) {
	resolver, matcher := newViewDeps()
	results := bracket.ResultMap{}

	_, _, changed, err := ApplyResult(resolver, matcher, results, "GEN Choice", "HLE")
	var inconsistent *bracket.InconsistentResultError
	require.ErrorAs(t, err, &inconsistent)
	assert.Equal(t, bracket.GENChoice, inconsistent.ID)
	assert.Contains(t, inconsistent.Reason, "must be decided before GEN Choice")
	assert.False(t, changed)
	assert.Empty(t, results)

	// A team that may still win its pool match is refused too while the pool is open
	_, _, _, err = ApplyResult(resolver, matcher, results, "R1 M1", "T1")
	require.NoError(t, err)
	_, _, _, err = ApplyResult(resolver, matcher, results, "GEN Choice", "T1")
	require.ErrorAs(t, err, &inconsistent)

	// The rest of the first round is still accepted
	_, _, _, err = ApplyResult(resolver, matcher, results, "R1 M2", "KT")
	require.NoError(t, err)

	_, _, _, err = ApplyResult(resolver, matcher, results, "GEN Choice", "HLE")
	require.ErrorAs(t, err, &inconsistent)
	assert.Contains(t, inconsistent.Reason, `"HLE" is neither T1 nor KT`)

	_, team, changed, err := ApplyResult(resolver, matcher, results, "GEN Choice", "kt")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, bracket.Team("KT"), team)

	_, _, _, err = ApplyResult(resolver, matcher, results, "R2 M1", "KT")
	require.NoError(t, err)
	assert.Equal(t, bracket.ResultMap{
		bracket.R1M1: "T1", bracket.R1M2: "KT", bracket.GENChoice: "KT", bracket.R2M1: "KT",
	}, results)
}

// endregion

// region BuildStandings tests

func TestBuildStandings_Empty(t *testing.T) {
	catalog := bracket.LCKPlayoffs()

	standings := BuildStandings(logic.NewScorer(catalog), catalog, nil, bracket.ResultMap{})

	assert.Empty(t, standings.Ranked)
	assert.Empty(t, standings.Groups)
	assert.Equal(t, 0, standings.Survivors.Total)
	assert.Equal(t, logic.TierExtreme, standings.Survivors.Tier)
	assert.Equal(t, 0.0, standings.MeanAccuracy)
	assert.Equal(t, bracket.Progress{Decided: 0, Total: 11}, standings.Progress)
}

func TestBuildStandings_DuplicateNames(t *testing.T) {
	catalog := bracket.LCKPlayoffs()
	predictions := []logic.Prediction{
		{Name: "페이커", Picks: map[bracket.MatchID]bracket.Team{bracket.R1M1: "T1"}},
		{Name: "페이커", Picks: map[bracket.MatchID]bracket.Team{bracket.R1M1: "DK"}},
	}

	standings := BuildStandings(logic.NewScorer(catalog), catalog, predictions, bracket.ResultMap{bracket.R1M1: "T1"})

	require.Len(t, standings.Ranked, 2)
	assert.Equal(t, []logic.WrongCountGroup{
		{WrongCount: 0, Names: []string{"페이커"}},
		{WrongCount: 1, Names: []string{"페이커"}},
	}, standings.Groups)
	assert.InDelta(t, 0.5, standings.MeanAccuracy, 1e-9)
}

// endregion

// region BuildPickStats tests

func TestBuildPickStats_MatchNotEntryKey(t *testing.T) {
	catalog := bracket.LCKPlayoffs()

	_, err := BuildPickStats(catalog, nil, "R9 M9")

	var unknown *bracket.UnknownMatchError
	assert.ErrorAs(t, err, &unknown)
}

// endregion

// region FindNextMatch tests

func TestFindNextMatch_AwaitingMatchHasParticipants(t *testing.T) {
	resolver, _ := newViewDeps()
	results := bracket.ResultMap{bracket.R1M1: "T1", bracket.R1M2: "KT", bracket.GENChoice: "T1"}

	next := FindNextMatch(resolver, results, nil)

	assert.Equal(t, bracket.R2M1, next.Key)
	require.NotNil(t, next.Match)
	assert.Equal(t, [2]bracket.Team{"GEN", "T1"}, next.Match.Participants())
	assert.Empty(t, next.Schedule)
}

// endregion

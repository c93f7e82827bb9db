/* leaderboard_test.go
 * Contains unit tests for leaderboard.go functions
 */

package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scoredWith(name string, wrong int) ScoredPrediction {
	return ScoredPrediction{Name: name, WrongCount: wrong, Eliminated: wrong > 0}
}

// region Rank tests

func TestRank_WrongCountThenName(t *testing.T) {
	scored := []ScoredPrediction{scoredWith("C", 1), scoredWith("B", 0), scoredWith("A", 0)}

	ranked := Rank(scored)

	assert.Equal(t, []string{"A", "B", "C"}, names(ranked))
	// Input untouched
	assert.Equal(t, "C", scored[0].Name)
}

func TestRank_KoreanNames(t *testing.T) {
	scored := []ScoredPrediction{scoredWith("다람쥐", 0), scoredWith("가나다", 0), scoredWith("나비", 0)}

	ranked := Rank(scored)

	assert.Equal(t, []string{"가나다", "나비", "다람쥐"}, names(ranked))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

// endregion

// region GroupByWrongCount tests

func TestGroupByWrongCount(t *testing.T) {
	scored := []ScoredPrediction{scoredWith("A", 0), scoredWith("B", 0), scoredWith("C", 1)}

	groups := GroupByWrongCount(scored)

	assert.Equal(t, []WrongCountGroup{
		{WrongCount: 0, Names: []string{"A", "B"}},
		{WrongCount: 1, Names: []string{"C"}},
	}, groups)
}

func TestGroupByWrongCount_DuplicateNames(t *testing.T) {
	scored := []ScoredPrediction{scoredWith("dup", 2), scoredWith("dup", 2)}

	groups := GroupByWrongCount(scored)

	assert.Equal(t, []WrongCountGroup{{WrongCount: 2, Names: []string{"dup", "dup"}}}, groups)
}

func TestGroupByWrongCount_Empty(t *testing.T) {
	assert.Empty(t, GroupByWrongCount(nil))
}

// endregion

// region SummarizeSurvivors tests

func TestSummarizeSurvivors(t *testing.T) {
	scored := []ScoredPrediction{scoredWith("A", 0), scoredWith("B", 0), scoredWith("C", 1)}

	summary := SummarizeSurvivors(scored)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Surviving)
	assert.Equal(t, 1, summary.Eliminated)
	assert.InDelta(t, 66.67, summary.SurvivalRatePercent, 0.01)
	assert.Equal(t, TierCaution, summary.Tier)
}

func TestSummarizeSurvivors_NoParticipants(t *testing.T) {
	summary := SummarizeSurvivors(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.SurvivalRatePercent)
	assert.Equal(t, TierExtreme, summary.Tier)
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierSafe, TierFor(100))
	assert.Equal(t, TierSafe, TierFor(70.1))
	assert.Equal(t, TierCaution, TierFor(70))
	assert.Equal(t, TierDanger, TierFor(40))
	assert.Equal(t, TierExtreme, TierFor(20))
	assert.Equal(t, TierExtreme, TierFor(0))
}

// endregion

// region Stats tests

func TestTopPredictors(t *testing.T) {
	scored := []ScoredPrediction{scoredWith("C", 1), scoredWith("B", 1), scoredWith("A", 3)}

	top := TopPredictors(scored)

	assert.Equal(t, []string{"B", "C"}, names(top))
	assert.Nil(t, TopPredictors(nil))
}

func TestWrongCountHistogram(t *testing.T) {
	scored := []ScoredPrediction{scoredWith("A", 0), scoredWith("B", 2), scoredWith("C", 2)}

	assert.Equal(t, []int{1, 0, 2}, WrongCountHistogram(scored))
	assert.Nil(t, WrongCountHistogram(nil))
}

func TestMeanAccuracy(t *testing.T) {
	scored := []ScoredPrediction{{Name: "A", Accuracy: 1}, {Name: "B", Accuracy: 0.5}}

	assert.InDelta(t, 0.75, MeanAccuracy(scored), 1e-9)
	assert.Equal(t, 0.0, MeanAccuracy(nil))
}

// endregion

func names(scored []ScoredPrediction) []string {
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Name)
	}
	return out
}

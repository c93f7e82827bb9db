/* leaderboard.go
 * Contains the logic for ranking scored predictions and summarising who is still alive
 */

package logic

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rank orders scored predictions by wrong count, then by name using Korean collation.
// Preconditions: none, the input slice is not modified
// Postconditions: Returns a new sorted slice
func Rank(scored []ScoredPrediction) []ScoredPrediction {
	ranked := slices.Clone(scored)
	// A Collator keeps internal buffers, so each call gets its own
	col := collate.New(language.Korean)
	slices.SortStableFunc(ranked, func(a, b ScoredPrediction) int {
		if a.WrongCount != b.WrongCount {
			return a.WrongCount - b.WrongCount
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ranked
}

// WrongCountGroup is every participant sharing the same wrong count
type WrongCountGroup struct {
	WrongCount int      `json:"wrongCount"`
	Names      []string `json:"names"`
}

// GroupByWrongCount buckets participants by wrong count, in ascending wrong count order. Names inside a group
// follow Rank order, and duplicate names are kept.
func GroupByWrongCount(scored []ScoredPrediction) []WrongCountGroup {
	var groups []WrongCountGroup
	for _, s := range Rank(scored) {
		if len(groups) == 0 || groups[len(groups)-1].WrongCount != s.WrongCount {
			groups = append(groups, WrongCountGroup{WrongCount: s.WrongCount})
		}
		last := &groups[len(groups)-1]
		last.Names = append(last.Names, s.Name)
	}
	return groups
}

// SurvivalTier is a coarse label for the survival rate
type SurvivalTier string

const (
	TierSafe    SurvivalTier = "safe"
	TierCaution SurvivalTier = "caution"
	TierDanger  SurvivalTier = "danger"
	TierExtreme SurvivalTier = "extreme"
)

// TierFor maps a survival rate percentage onto a tier
func TierFor(ratePercent float64) SurvivalTier {
	switch {
	case ratePercent > 70:
		return TierSafe
	case ratePercent > 40:
		return TierCaution
	case ratePercent > 20:
		return TierDanger
	default:
		return TierExtreme
	}
}

// SurvivorSummary counts survivors and eliminated participants
type SurvivorSummary struct {
	Total               int          `json:"total"`
	Surviving           int          `json:"surviving"`
	Eliminated          int          `json:"eliminated"`
	SurvivalRatePercent float64      `json:"survivalRatePercent"`
	Tier                SurvivalTier `json:"tier"`
}

// SummarizeSurvivors counts survivors. The survival rate is 0 when there are no participants.
func SummarizeSurvivors(scored []ScoredPrediction) SurvivorSummary {
	summary := SurvivorSummary{Total: len(scored)}
	for _, s := range scored {
		if s.Eliminated {
			summary.Eliminated++
		}
	}
	summary.Surviving = summary.Total - summary.Eliminated
	if summary.Total > 0 {
		summary.SurvivalRatePercent = float64(summary.Surviving) / float64(summary.Total) * 100
	}
	summary.Tier = TierFor(summary.SurvivalRatePercent)
	return summary
}

// TopPredictors returns every participant tied at the lowest wrong count, in Rank order
func TopPredictors(scored []ScoredPrediction) []ScoredPrediction {
	ranked := Rank(scored)
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0].WrongCount
	end := 0
	for end < len(ranked) && ranked[end].WrongCount == best {
		end++
	}
	return ranked[:end]
}

// WrongCountHistogram returns how many participants have 0, 1, ... max wrong picks
func WrongCountHistogram(scored []ScoredPrediction) []int {
	if len(scored) == 0 {
		return nil
	}
	most := 0
	for _, s := range scored {
		most = max(most, s.WrongCount)
	}
	hist := make([]int, most+1)
	for _, s := range scored {
		hist[s.WrongCount]++
	}
	return hist
}

// MeanAccuracy averages the accuracy of every participant, 0 when there are none
func MeanAccuracy(scored []ScoredPrediction) float64 {
	if len(scored) == 0 {
		return 0
	}
	var total float64
	for _, s := range scored {
		total += s.Accuracy
	}
	return total / float64(len(scored))
}

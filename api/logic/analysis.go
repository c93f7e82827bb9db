/* analysis.go
 * Contains the logic for summarising what the participants predicted
 */

package logic

import (
	"fmt"
	"slices"
	"strings"

	"lck-pickems/api/bracket"
)

// PickShare is how many participants picked a team
type PickShare struct {
	Team    bracket.Team `json:"team"`
	Count   int          `json:"count"`
	Percent float64      `json:"percent"`
}

// shares turns counts into PickShares, most popular first and ties by team name
func shares(counts map[bracket.Team]int) ([]PickShare, int) {
	total := 0
	for _, n := range counts {
		total += n
	}
	out := make([]PickShare, 0, len(counts))
	for team, n := range counts {
		out = append(out, PickShare{Team: team, Count: n, Percent: float64(n) / float64(total) * 100})
	}
	slices.SortFunc(out, func(a, b PickShare) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(string(a.Team), string(b.Team))
	})
	return out, total
}

// PickDistribution counts the picks for one key. Participants without a pick are left out.
func PickDistribution(predictions []Prediction, key bracket.MatchID) ([]PickShare, int) {
	counts := make(map[bracket.Team]int)
	for _, p := range predictions {
		if team, ok := p.Pick(key); ok {
			counts[team]++
		}
	}
	return shares(counts)
}

// ChoiceScenario groups the participants that predicted the same pool winners and counts what they think the
// choosing team will pick
type ChoiceScenario struct {
	Pool        [2]bracket.Team `json:"pool"`
	Respondents int             `json:"respondents"`
	Choices     []PickShare     `json:"choices"`
}

// Label renders the scenario as "A vs B"
func (s ChoiceScenario) Label() string {
	return fmt.Sprintf("%s vs %s", s.Pool[0], s.Pool[1])
}

// ChoiceScenarios breaks the predicted choice for key down by the predicted pool winners
func ChoiceScenarios(predictions []Prediction, catalog *bracket.Catalog, key bracket.MatchID) ([]ChoiceScenario, error) {
	pool, err := catalog.ChoicePool(key)
	if err != nil {
		return nil, err
	}

	var order [][2]bracket.Team
	counts := make(map[[2]bracket.Team]map[bracket.Team]int)
	for _, p := range predictions {
		a, okA := p.Pick(pool[0])
		b, okB := p.Pick(pool[1])
		choice, okC := p.Pick(key)
		if !okA || !okB || !okC {
			continue
		}
		scenario := [2]bracket.Team{a, b}
		if _, seen := counts[scenario]; !seen {
			counts[scenario] = make(map[bracket.Team]int)
			order = append(order, scenario)
		}
		counts[scenario][choice]++
	}

	slices.SortFunc(order, func(x, y [2]bracket.Team) int {
		if c := strings.Compare(string(x[0]), string(y[0])); c != 0 {
			return c
		}
		return strings.Compare(string(x[1]), string(y[1]))
	})

	out := make([]ChoiceScenario, 0, len(order))
	for _, scenario := range order {
		choices, total := shares(counts[scenario])
		out = append(out, ChoiceScenario{Pool: scenario, Respondents: total, Choices: choices})
	}
	return out, nil
}

// TeamPickTotals counts how often each team was picked over every catalog match. Choice picks are not included.
func TeamPickTotals(predictions []Prediction, catalog *bracket.Catalog) ([]PickShare, int) {
	counts := make(map[bracket.Team]int)
	ids := catalog.MatchIDs()
	for _, p := range predictions {
		for _, id := range ids {
			if team, ok := p.Pick(id); ok {
				counts[team]++
			}
		}
	}
	return shares(counts)
}

// MatchBreakdown is the pick distribution of one match
type MatchBreakdown struct {
	Match       bracket.MatchID `json:"match"`
	Respondents int             `json:"respondents"`
	Shares      []PickShare     `json:"shares"`
}

// StageAnalysis returns the pick distribution of every match in stage
func StageAnalysis(predictions []Prediction, catalog *bracket.Catalog, stage string) ([]MatchBreakdown, error) {
	ids := catalog.MatchesInStage(stage)
	if len(ids) == 0 {
		return nil, fmt.Errorf("unknown stage %q, valid stages are %s", stage, strings.Join(catalog.Stages(), ", "))
	}
	out := make([]MatchBreakdown, 0, len(ids))
	for _, id := range ids {
		s, total := PickDistribution(predictions, id)
		out = append(out, MatchBreakdown{Match: id, Respondents: total, Shares: s})
	}
	return out, nil
}

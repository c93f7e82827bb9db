/* views.go
 * Contains the functions that build the views returned by the API from predictions and results. They do no I/O so
 * the cli can use them on files without a database.
 */

package api

import (
	"fmt"
	"slices"
	"strings"

	"lck-pickems/api/bracket"
	"lck-pickems/api/external"
	"lck-pickems/api/logic"
)

// BuildBracket resolves results and collects the problems found on the way
func BuildBracket(resolver *bracket.Resolver, results bracket.ResultMap) BracketView {
	catalog := resolver.Catalog()
	matches, err := resolver.Ordered(results)

	view := BracketView{Matches: matches, Progress: catalog.ProgressOf(results)}
	for _, issue := range bracket.Inconsistencies(err) {
		view.Problems = append(view.Problems, issue.Error())
	}
	for _, key := range catalog.ChoiceKeys() {
		state, err := catalog.ChoiceStatus(key, results)
		if err != nil {
			continue
		}
		view.Choices = append(view.Choices, state)
	}
	return view
}

// FindNextMatch returns the first key without a result, with its participants when it is a match and its state when it
// is a choice
func FindNextMatch(resolver *bracket.Resolver, results bracket.ResultMap, schedule map[bracket.MatchID]string) NextMatch {
	catalog := resolver.Catalog()
	key, ok := catalog.NextEntry(results)
	if !ok {
		return NextMatch{Done: true}
	}

	next := NextMatch{Key: key, Schedule: schedule[key]}
	if catalog.Contains(key) {
		match, _ := resolver.ResolveMatch(results, key)
		next.Match = &match
		return next
	}
	if state, err := catalog.ChoiceStatus(key, results); err == nil {
		next.Choice = &state
	}
	return next
}

// BuildStandings scores every prediction and builds the leaderboard views
func BuildStandings(scorer *logic.Scorer, catalog *bracket.Catalog, predictions []logic.Prediction, results bracket.ResultMap) Standings {
	scored := scorer.ScoreAll(predictions, results)
	ranked := logic.Rank(scored)
	return Standings{
		Ranked:       ranked,
		Groups:       logic.GroupByWrongCount(scored),
		Survivors:    logic.SummarizeSurvivors(scored),
		Top:          logic.TopPredictors(scored),
		Histogram:    logic.WrongCountHistogram(scored),
		MeanAccuracy: logic.MeanAccuracy(scored),
		Progress:     catalog.ProgressOf(results),
	}
}

// BuildPickStats returns the pick distribution for key, which must already be canonical
func BuildPickStats(catalog *bracket.Catalog, predictions []logic.Prediction, key bracket.MatchID) (PickStats, error) {
	if !catalog.IsEntryKey(key) {
		return PickStats{}, &bracket.UnknownMatchError{ID: key}
	}

	shares, total := logic.PickDistribution(predictions, key)
	stats := PickStats{Key: key, Respondents: total, Shares: shares}
	if slices.Contains(catalog.ChoiceKeys(), key) {
		scenarios, err := logic.ChoiceScenarios(predictions, catalog, key)
		if err != nil {
			return PickStats{}, err
		}
		stats.Scenarios = scenarios
	}
	return stats, nil
}

// BuildAnalysis summarises every prediction: the championship picks, the choice scenarios, team totals and every stage
func BuildAnalysis(catalog *bracket.Catalog, predictions []logic.Prediction) Analysis {
	ids := catalog.MatchIDs()
	analysis := Analysis{Participants: len(predictions)}

	// The last match in topological order is the final
	analysis.Championship, _ = logic.PickDistribution(predictions, ids[len(ids)-1])

	for _, key := range catalog.ChoiceKeys() {
		scenarios, err := logic.ChoiceScenarios(predictions, catalog, key)
		if err != nil {
			continue
		}
		analysis.Choices = append(analysis.Choices, scenarios...)
	}

	analysis.TeamTotals, _ = logic.TeamPickTotals(predictions, catalog)

	for _, stage := range catalog.Stages() {
		breakdown, err := logic.StageAnalysis(predictions, catalog, stage)
		if err != nil {
			continue
		}
		analysis.Stages = append(analysis.Stages, StageBreakdown{Stage: stage, Matches: breakdown})
	}
	return analysis
}

// ApplyResult validates recording team as the result for match and adds it to results.
// Preconditions: results is the current non-nil result map, it is modified only when the result is new
// Postconditions: Returns the canonical key and team and whether results changed. Recording the same winner twice
// leaves results as they are. A choice is only accepted once both of its pool matches are recorded. Returns ErrUnknownTeam, ErrResultAlreadyRecorded, a *bracket.UnknownMatchError or
// the *bracket.InconsistentResultError the new result would introduce.
func ApplyResult(resolver *bracket.Resolver, matcher *logic.TeamMatcher, results bracket.ResultMap, match string, team string) (bracket.MatchID, bracket.Team, bool, error) {
	catalog := resolver.Catalog()
	key, err := catalog.Canonical(match)
	if err != nil {
		return "", "", false, err
	}
	winner, ok := matcher.Match(team)
	if !ok {
		return "", "", false, fmt.Errorf("%w: %q, valid teams are %s", ErrUnknownTeam, team, joinTeams(catalog.Teams()))
	}

	if existing, ok := results.Winner(key); ok {
		if existing == winner {
			return key, winner, false, nil
		}
		return "", "", false, fmt.Errorf("%w: %s is already set to %s, clear it first", ErrResultAlreadyRecorded, key, existing)
	}

	if slices.Contains(catalog.ChoiceKeys(), key) {
		if err := checkChoiceEntry(catalog, results, key, winner); err != nil {
			return "", "", false, err
		}
	}

	candidate := results.Clone()
	candidate[key] = winner
	if err := newInconsistency(resolver, results, candidate); err != nil {
		return "", "", false, err
	}
	results[key] = winner
	return key, winner, true, nil
}

// newInconsistency returns the first problem candidate has that results did not already have. Problems that were
// already stored do not block unrelated results.
func newInconsistency(resolver *bracket.Resolver, results, candidate bracket.ResultMap) error {
	_, beforeErr := resolver.Resolve(results)
	before := make(map[bracket.MatchID]bool)
	for _, issue := range bracket.Inconsistencies(beforeErr) {
		before[issue.ID] = true
	}

	_, afterErr := resolver.Resolve(candidate)
	for _, issue := range bracket.Inconsistencies(afterErr) {
		if !before[issue.ID] {
			return issue
		}
	}
	return nil
}

// checkChoiceEntry only accepts a choice once both pool matches are recorded, and only for one of their winners
func checkChoiceEntry(catalog *bracket.Catalog, results bracket.ResultMap, key bracket.MatchID, choice bracket.Team) error {
	state, err := catalog.ChoiceStatus(key, results)
	if err != nil {
		return err
	}
	if state.Phase != bracket.ChoiceAvailable {
		pool, _ := catalog.ChoicePool(key)
		return &bracket.InconsistentResultError{
			ID:     key,
			Winner: choice,
			Reason: fmt.Sprintf("%s and %s must be decided before %s", pool[0], pool[1], key),
		}
	}
	if !slices.Contains(state.Options, choice) {
		return &bracket.InconsistentResultError{
			ID:     key,
			Winner: choice,
			Reason: fmt.Sprintf("%s %q is neither %s nor %s", key, choice, state.Options[0], state.Options[1]),
		}
	}
	return nil
}

func joinTeams(teams []bracket.Team) string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// ExtractPredictions pulls the predictions out of a comment dump and normalizes their team names. Records with a
// name that cannot be matched are reported as failed.
func ExtractPredictions(extractor *external.Extractor, matcher *logic.TeamMatcher, catalog *bracket.Catalog, text string) (ImportReport, []logic.Prediction) {
	extraction := extractor.Extract(text)
	predictions, unmatched := external.Normalize(extraction.Extracted, matcher, catalog.EntryKeys())
	report := ImportReport{
		Users:    extraction.Users,
		Imported: len(predictions),
		Failed:   append(extraction.Failed, unmatched...),
		Missing:  extraction.Missing(),
		Debug:    extraction.Debug,
	}
	return report, predictions
}

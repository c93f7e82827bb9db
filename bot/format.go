/* format.go
 * Contains the functions that render api results as discord messages
 */

package bot

import (
	"fmt"
	"strings"
	"time"

	"lck-pickems/api/api"
	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"
	"lck-pickems/api/store"
)

// maxMessageLength is the discord limit for one message
const maxMessageLength = 2000

// chunkMessage splits content on line boundaries into pieces no longer than limit. A single line longer than limit
// is cut.
func chunkMessage(content string, limit int) []string {
	if len(content) <= limit {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(content, "\n") {
		for len(line) > limit {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, line[:limit])
			line = line[limit:]
		}
		if current.Len()+len(line) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func joinKeys(keys []bracket.MatchID) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func displayTeam(t bracket.Team) string {
	if !t.Determined() {
		return "TBD"
	}
	return string(t)
}

// formatReport renders the $check reply
func formatReport(username string, report api.PredictionReport) string {
	var res strings.Builder
	score := report.Score
	status := "still perfect"
	if score.Eliminated {
		status = "eliminated"
	}
	res.WriteString(fmt.Sprintf("%s's Pickems: %d wrong out of %d decided (%.1f%% accuracy), %s\n",
		username, score.WrongCount, score.EvaluatedCount, score.Accuracy*100, status))

	for _, pick := range report.Picks {
		switch pick.Outcome {
		case logic.OutcomeCorrect:
			res.WriteString(fmt.Sprintf("[O] %s: %s\n", pick.Match, pick.Predicted))
		case logic.OutcomeWrong:
			res.WriteString(fmt.Sprintf("[X] %s: %s (winner %s)\n", pick.Match, pick.Predicted, pick.Actual))
		case logic.OutcomePending:
			res.WriteString(fmt.Sprintf("[ ] %s: %s\n", pick.Match, pick.Predicted))
		default:
			res.WriteString(fmt.Sprintf("[-] %s: no pick\n", pick.Match))
		}
	}
	if len(report.Missing) > 0 {
		res.WriteString(fmt.Sprintf("Missing picks: %s\n", joinKeys(report.Missing)))
	}
	return res.String()
}

// formatLeaderboard renders the $leaderboard reply
func formatLeaderboard(leaderboard store.Leaderboard) string {
	if len(leaderboard.Entries) == 0 {
		return "No Pickems have been set yet"
	}

	var res strings.Builder
	generated := time.Unix(leaderboard.GeneratedAt, 0).UTC().Format("2006-01-02 15:04 MST")
	res.WriteString(fmt.Sprintf("Leaderboard for %s (updated %s)\n", leaderboard.Tournament, generated))
	for _, entry := range leaderboard.Entries {
		res.WriteString(fmt.Sprintf("%d. %s: %d wrong (%d/%d)\n",
			entry.Rank, entry.Username, entry.WrongCount, entry.EvaluatedCount-entry.WrongCount, entry.EvaluatedCount))
	}
	return res.String()
}

// formatSurvivors renders the $survivors reply
func formatSurvivors(standings api.Standings) string {
	summary := standings.Survivors
	if summary.Total == 0 {
		return "No Pickems have been set yet"
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Survivors: %d of %d (%.1f%%, %s), eliminated: %d\n",
		summary.Surviving, summary.Total, summary.SurvivalRatePercent, summary.Tier, summary.Eliminated))
	res.WriteString(fmt.Sprintf("Bracket progress: %d/%d\n", standings.Progress.Decided, standings.Progress.Total))
	for _, group := range standings.Groups {
		res.WriteString(fmt.Sprintf("%d wrong (%d): %s\n", group.WrongCount, len(group.Names), strings.Join(group.Names, ", ")))
	}
	return res.String()
}

// formatMatch renders one resolved match on a single line
func formatMatch(match bracket.ResolvedMatch) string {
	line := fmt.Sprintf("%s: %s vs %s", match.Title, displayTeam(match.Team1), displayTeam(match.Team2))
	switch match.Status {
	case bracket.StatusCompleted:
		if match.Winner.Determined() {
			return line + fmt.Sprintf(", winner %s", match.Winner)
		}
		return line + ", result does not fit the bracket"
	case bracket.StatusScheduled:
		return line + ", scheduled"
	default:
		return line + ", awaiting earlier results"
	}
}

// formatBracket renders the $bracket reply
func formatBracket(view api.BracketView) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("Bracket progress: %d/%d (%.1f%%)\n", view.Progress.Decided, view.Progress.Total, view.Progress.Percent()))
	for _, match := range view.Matches {
		res.WriteString(formatMatch(match) + "\n")
	}
	for _, choice := range view.Choices {
		res.WriteString(choice.String() + "\n")
	}
	if len(view.Problems) > 0 {
		res.WriteString("Problems with the recorded results:\n")
		for _, problem := range view.Problems {
			res.WriteString(fmt.Sprintf("- %s\n", problem))
		}
	}
	return res.String()
}

// formatNextMatch renders the $next reply
func formatNextMatch(next api.NextMatch) string {
	if next.Done {
		return "Every result has been recorded"
	}

	var line string
	switch {
	case next.Match != nil:
		line = fmt.Sprintf("Next up: %s: %s vs %s", next.Match.Title, displayTeam(next.Match.Team1), displayTeam(next.Match.Team2))
	case next.Choice != nil:
		line = fmt.Sprintf("Next up: %s", next.Choice)
	default:
		line = fmt.Sprintf("Next up: %s", next.Key)
	}
	if next.Schedule != "" {
		line += fmt.Sprintf(" (%s)", next.Schedule)
	}
	return line
}

// formatPickStats renders the $stats reply
func formatPickStats(stats api.PickStats) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("Picks for %s (%d respondents)\n", stats.Key, stats.Respondents))
	for _, share := range stats.Shares {
		res.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", share.Team, share.Count, share.Percent))
	}
	for _, scenario := range stats.Scenarios {
		res.WriteString(fmt.Sprintf("If %s (%d):", scenario.Label(), scenario.Respondents))
		for _, choice := range scenario.Choices {
			res.WriteString(fmt.Sprintf(" %s %d (%.1f%%)", choice.Team, choice.Count, choice.Percent))
		}
		res.WriteString("\n")
	}
	return res.String()
}

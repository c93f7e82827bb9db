/* output.go
 * Contains the functions that print command results to the terminal
 */

package main

import (
	"fmt"
	"io"
	"strings"

	"lck-pickems/api/api"
	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"
)

func newResolver(catalog *bracket.Catalog) *bracket.Resolver {
	return bracket.NewResolver(catalog)
}

func newMatcher(catalog *bracket.Catalog) *logic.TeamMatcher {
	return logic.NewTeamMatcher(catalog.Teams(), logic.DefaultTeamAliases)
}

func teamOrTBD(t bracket.Team) string {
	if !t.Determined() {
		return "TBD"
	}
	return string(t)
}

func printBracket(w io.Writer, view api.BracketView) {
	fmt.Fprintf(w, "Progress: %d/%d (%.1f%%)\n", view.Progress.Decided, view.Progress.Total, view.Progress.Percent())
	for _, m := range view.Matches {
		winner := "-"
		if m.Winner.Determined() {
			winner = string(m.Winner)
		}
		fmt.Fprintf(w, "%-28s %-4s vs %-4s  %-16s %s\n", m.Title, teamOrTBD(m.Team1), teamOrTBD(m.Team2), m.Status, winner)
	}
	for _, choice := range view.Choices {
		fmt.Fprintln(w, choice)
	}
	if len(view.Problems) > 0 {
		fmt.Fprintln(w, "Problems:")
		for _, p := range view.Problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	}
}

func printStandings(w io.Writer, standings api.Standings) {
	s := standings.Survivors
	fmt.Fprintf(w, "Matches decided: %d/%d\n", standings.Progress.Decided, standings.Progress.Total)
	fmt.Fprintf(w, "Participants: %d, surviving: %d, eliminated: %d (survival rate %.1f%%, %s)\n",
		s.Total, s.Surviving, s.Eliminated, s.SurvivalRatePercent, s.Tier)
	fmt.Fprintf(w, "Mean accuracy: %.1f%%\n\n", standings.MeanAccuracy*100)

	for _, group := range standings.Groups {
		label := "survivors"
		if group.WrongCount > 0 {
			label = fmt.Sprintf("%d wrong", group.WrongCount)
		}
		fmt.Fprintf(w, "%s (%d): %s\n", label, len(group.Names), strings.Join(group.Names, ", "))
	}

	if len(standings.Histogram) > 0 {
		fmt.Fprintln(w, "\nWrong count distribution:")
		for wrong, count := range standings.Histogram {
			fmt.Fprintf(w, "  %2d: %s %d\n", wrong, strings.Repeat("#", count), count)
		}
	}
}

func printShares(w io.Writer, indent string, shares []logic.PickShare) {
	for _, share := range shares {
		fmt.Fprintf(w, "%s%-4s %4d (%.1f%%)\n", indent, share.Team, share.Count, share.Percent)
	}
}

func printAnalysis(w io.Writer, analysis api.Analysis) {
	fmt.Fprintf(w, "Participants: %d\n\nChampionship picks:\n", analysis.Participants)
	printShares(w, "  ", analysis.Championship)

	if len(analysis.Choices) > 0 {
		fmt.Fprintln(w, "\nChoice scenarios:")
		for _, scenario := range analysis.Choices {
			fmt.Fprintf(w, "  %s (%d):\n", scenario.Label(), scenario.Respondents)
			printShares(w, "    ", scenario.Choices)
		}
	}

	fmt.Fprintln(w, "\nTeam pick totals:")
	printShares(w, "  ", analysis.TeamTotals)

	for _, stage := range analysis.Stages {
		fmt.Fprintf(w, "\nStage %s:\n", stage.Stage)
		for _, match := range stage.Matches {
			fmt.Fprintf(w, "  %s:\n", match.Match)
			printShares(w, "    ", match.Shares)
		}
	}
}

func printImportReport(w io.Writer, report api.ImportReport) {
	fmt.Fprintf(w, "Users found: %d, imported: %d, failed: %d, missing: %d\n",
		report.Users, report.Imported, len(report.Failed), report.Missing)
	for _, failed := range report.Failed {
		fmt.Fprintf(w, "  - %s: %s\n", failed.Nickname, failed.Reason)
	}
}

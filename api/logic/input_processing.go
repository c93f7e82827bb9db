/* input_processing.go
 * Contains the logic for processing user input and validating team names
 */

package logic

import (
	"sort"
	"strings"

	"lck-pickems/api/bracket"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultTeamAliases maps common long or sponsor names onto the short names used by the catalog
var DefaultTeamAliases = map[string]bracket.Team{
	"skt":                 "T1",
	"dplus":               "DK",
	"dplus kia":           "DK",
	"damwon":              "DK",
	"kt rolster":          "KT",
	"bnk fearx":           "BFX",
	"fearx":               "BFX",
	"gen.g":               "GEN",
	"geng":                "GEN",
	"hanwha":              "HLE",
	"hanwha life":         "HLE",
	"hanwha life esports": "HLE",
}

// TeamMatcher turns free-form team names into catalog teams
type TeamMatcher struct {
	lookup  map[string]bracket.Team
	targets []string
	aliases map[string]bracket.Team
}

// NewTeamMatcher builds a matcher for teams. Alias keys are compared case-insensitively.
func NewTeamMatcher(teams []bracket.Team, aliases map[string]bracket.Team) *TeamMatcher {
	m := &TeamMatcher{
		lookup:  make(map[string]bracket.Team, len(teams)),
		aliases: make(map[string]bracket.Team, len(aliases)),
	}
	for _, t := range teams {
		lower := strings.ToLower(string(t))
		m.lookup[lower] = t
		m.targets = append(m.targets, lower)
	}
	for alias, team := range aliases {
		if _, ok := m.lookup[strings.ToLower(string(team))]; ok {
			m.aliases[strings.ToLower(strings.TrimSpace(alias))] = team
		}
	}
	return m
}

// Match resolves one name. Exact matches and aliases win, then the closest fuzzy match. A tie between fuzzy
// matches is ambiguous and reported as no match.
func (m *TeamMatcher) Match(input string) (bracket.Team, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))
	// Strip the quotes discord users put around names
	lower = strings.Trim(lower, "\"“”'")
	if lower == "" {
		return bracket.Undetermined, false
	}
	if team, ok := m.lookup[lower]; ok {
		return team, true
	}
	if team, ok := m.aliases[lower]; ok {
		return team, true
	}

	ranks := fuzzy.RankFindFold(lower, m.targets)
	if len(ranks) == 0 {
		return bracket.Undetermined, false
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		return bracket.Undetermined, false
	}
	return m.lookup[ranks[0].Target], true
}

// CheckTeamNames processes team names from user input and checks if they are valid.
// Preconditions: receives a string slice with the user's team names
// Postconditions: returns the matched teams in input order and the inputs that could not be matched
func (m *TeamMatcher) CheckTeamNames(inputs []string) ([]bracket.Team, []string) {
	var teams []bracket.Team
	var invalid []string
	for _, in := range inputs {
		team, ok := m.Match(in)
		if !ok {
			invalid = append(invalid, in)
			continue
		}
		teams = append(teams, team)
	}
	return teams, invalid
}

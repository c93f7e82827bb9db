/* catalog.go
 * Contains the Catalog, the immutable description of a bracket's topology, and the fixed LCK playoff bracket
 */

package bracket

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog is the static bracket topology. It is built once and never modified, so it can be shared freely.
type Catalog struct {
	matches    []MatchDef
	index      map[MatchID]int
	teams      []Team
	choiceKeys []MatchID
	entryKeys  []MatchID
	aliases    map[string]MatchID
}

// NewCatalog validates the match definitions and builds a Catalog.
// Preconditions: defs are listed in an order where every match comes after the matches it depends on
// Postconditions: Returns the catalog, or an error describing the first invalid definition
func NewCatalog(teams []Team, defs []MatchDef, aliases map[string]MatchID) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog requires at least one match")
	}

	c := &Catalog{
		matches: slices.Clone(defs),
		index:   make(map[MatchID]int, len(defs)),
		teams:   slices.Clone(teams),
		aliases: make(map[string]MatchID),
	}

	known := make(map[Team]bool, len(teams))
	for _, t := range teams {
		if !t.Determined() {
			return nil, fmt.Errorf("team names cannot be empty")
		}
		if known[t] {
			return nil, fmt.Errorf("team %q listed twice", t)
		}
		known[t] = true
	}

	choices := make(map[MatchID]bool)
	for i, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("match %d has no id", i)
		}
		if _, dup := c.index[def.ID]; dup {
			return nil, fmt.Errorf("match %q defined twice", def.ID)
		}
		if choices[def.ID] {
			return nil, fmt.Errorf("match %q collides with a choice key", def.ID)
		}

		for _, slot := range def.Rule.Slots {
			if slot.Kind == SlotFixed && !known[slot.Team] {
				return nil, fmt.Errorf("match %q uses unknown team %q", def.ID, slot.Team)
			}
			// A source that is not already indexed is either undefined or defined later, and both break the single pass
			for _, src := range slot.sources() {
				if _, ok := c.index[src]; !ok {
					return nil, fmt.Errorf("match %q depends on %q which is not defined before it", def.ID, src)
				}
			}
			if slot.Kind == SlotChoice || slot.Kind == SlotChoiceRemainder {
				if slot.ChoiceKey == "" {
					return nil, fmt.Errorf("match %q has a choice slot without a key", def.ID)
				}
				if _, clash := c.index[slot.ChoiceKey]; clash {
					return nil, fmt.Errorf("choice key %q collides with a match id", slot.ChoiceKey)
				}
				if !choices[slot.ChoiceKey] {
					choices[slot.ChoiceKey] = true
					c.choiceKeys = append(c.choiceKeys, slot.ChoiceKey)
					c.entryKeys = append(c.entryKeys, slot.ChoiceKey)
				}
			}
		}

		c.index[def.ID] = i
		c.entryKeys = append(c.entryKeys, def.ID)
	}

	for alias, target := range aliases {
		if _, ok := c.index[target]; !ok && !choices[target] {
			return nil, fmt.Errorf("alias %q points at unknown key %q", alias, target)
		}
		c.aliases[alias] = target
	}

	return c, nil
}

// MatchIDs returns every match id in topological order. A match never precedes a match it depends on.
func (c *Catalog) MatchIDs() []MatchID {
	ids := make([]MatchID, len(c.matches))
	for i, m := range c.matches {
		ids[i] = m.ID
	}
	return ids
}

// Match returns the definition for id, or an UnknownMatchError
func (c *Catalog) Match(id MatchID) (MatchDef, error) {
	i, ok := c.index[id]
	if !ok {
		return MatchDef{}, &UnknownMatchError{ID: id}
	}
	return c.matches[i], nil
}

// RuleFor returns the participant rule for id, or an UnknownMatchError
func (c *Catalog) RuleFor(id MatchID) (ParticipantRule, error) {
	def, err := c.Match(id)
	if err != nil {
		return ParticipantRule{}, err
	}
	return def.Rule, nil
}

// Contains reports whether id is a catalog match
func (c *Catalog) Contains(id MatchID) bool {
	_, ok := c.index[id]
	return ok
}

// Teams returns the teams taking part, in catalog order
func (c *Catalog) Teams() []Team {
	return slices.Clone(c.teams)
}

// HasTeam reports whether team takes part in the bracket
func (c *Catalog) HasTeam(team Team) bool {
	return slices.Contains(c.teams, team)
}

// ChoiceKeys returns the pseudo keys under which choices are recorded
func (c *Catalog) ChoiceKeys() []MatchID {
	return slices.Clone(c.choiceKeys)
}

// EntryKeys returns every key a result map or a prediction may hold: the match ids with each choice key
// placed right before the first match that reads it
func (c *Catalog) EntryKeys() []MatchID {
	return slices.Clone(c.entryKeys)
}

// IsEntryKey reports whether id is a match id or a choice key
func (c *Catalog) IsEntryKey(id MatchID) bool {
	return slices.Contains(c.entryKeys, id)
}

// Canonical maps raw user or file input onto an entry key, applying aliases and trimming whitespace.
// Match ids are compared case-insensitively.
func (c *Catalog) Canonical(raw string) (MatchID, error) {
	key := strings.TrimSpace(raw)
	if target, ok := c.aliases[key]; ok {
		return target, nil
	}
	for _, id := range c.entryKeys {
		if strings.EqualFold(string(id), key) {
			return id, nil
		}
	}
	return "", &UnknownMatchError{ID: MatchID(key)}
}

// Spellings returns id followed by every alias that maps onto it, aliases sorted
func (c *Catalog) Spellings(id MatchID) []string {
	var aliases []string
	for alias, target := range c.aliases {
		if target == id {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return append([]string{string(id)}, aliases...)
}

// Stages returns the stage labels in the order they first appear
func (c *Catalog) Stages() []string {
	var stages []string
	for _, m := range c.matches {
		if m.Stage != "" && !slices.Contains(stages, m.Stage) {
			stages = append(stages, m.Stage)
		}
	}
	return stages
}

// MatchesInStage returns the ids of the matches played in stage (case-insensitive)
func (c *Catalog) MatchesInStage(stage string) []MatchID {
	var ids []MatchID
	for _, m := range c.matches {
		if strings.EqualFold(m.Stage, stage) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Match ids of the LCK playoff bracket
const (
	R1M1       MatchID = "R1 M1"
	R1M2       MatchID = "R1 M2"
	R2M1       MatchID = "R2 M1"
	R2M2       MatchID = "R2 M2"
	R1LB       MatchID = "R1 LB"
	R2LB       MatchID = "R2 LB"
	R3UB       MatchID = "R3 UB"
	R3LB       MatchID = "R3 LB"
	R4LF       MatchID = "R4 LF"
	GrandFinal MatchID = "Grand Final"

	// GENChoice holds the R1 winner the first seed elected to play in R2 M1
	GENChoice MatchID = "GEN Choice"
)

// LCKPlayoffs returns the catalog for the six team LCK playoff bracket. The first seed (GEN) picks its
// second round opponent from the two first round winners and the second seed (HLE) plays the other one.
func LCKPlayoffs() *Catalog {
	r1 := [2]MatchID{R1M1, R1M2}
	teams := []Team{"T1", "DK", "KT", "BFX", "GEN", "HLE"}
	defs := []MatchDef{
		{ID: R1M1, Title: "R1 M1", Stage: "R1", Rule: Rule(Fixed("T1"), Fixed("DK"))},
		{ID: R1M2, Title: "R1 M2", Stage: "R1", Rule: Rule(Fixed("KT"), Fixed("BFX"))},
		{ID: R2M1, Title: "R2 M1 (Upper Bracket)", Stage: "R2", Rule: Rule(Fixed("GEN"), ChoiceOf(GENChoice, r1))},
		{ID: R2M2, Title: "R2 M2 (Upper Bracket)", Stage: "R2", Rule: Rule(Fixed("HLE"), RemainderOf(GENChoice, r1))},
		{ID: R1LB, Title: "R1 LB (Lower Bracket)", Stage: "LB", Rule: Rule(LoserOf(R1M1), LoserOf(R1M2))},
		{ID: R2LB, Title: "R2 LB (Lower Bracket)", Stage: "LB", Rule: Rule(WinnerOf(R1LB), LoserOf(R2M2))},
		{ID: R3UB, Title: "R3 UB (Upper Bracket Final)", Stage: "R3", Rule: Rule(WinnerOf(R2M1), WinnerOf(R2M2))},
		{ID: R3LB, Title: "R3 LB (Lower Bracket)", Stage: "R3", Rule: Rule(WinnerOf(R2LB), LoserOf(R2M1))},
		{ID: R4LF, Title: "R4 LF (Lower Bracket Final)", Stage: "FINAL", Rule: Rule(WinnerOf(R3LB), LoserOf(R3UB))},
		{ID: GrandFinal, Title: "Grand Final", Stage: "FINAL", Rule: Rule(WinnerOf(R3UB), WinnerOf(R4LF))},
	}
	aliases := map[string]MatchID{
		"GEN이 고른 팀":          GENChoice,
		"GENì´ ê³ ë¥¸ íŒ€": GENChoice,
	}

	catalog, err := NewCatalog(teams, defs, aliases)
	if err != nil {
		panic(fmt.Sprintf("lck playoff catalog is invalid: %v", err))
	}
	return catalog
}

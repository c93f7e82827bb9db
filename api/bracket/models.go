/* models.go
 * Contains the types that describe a bracket: teams, match ids, participant rules and resolved matches
 */

package bracket

// Team is an opaque team label such as "T1". The zero value means the slot is not decided yet.
type Team string

// Undetermined is the value of a participant slot that cannot be derived from the results yet
const Undetermined Team = ""

// Determined reports whether the team slot holds a real team
func (t Team) Determined() bool {
	return t != Undetermined
}

// MatchID identifies a match in the catalog, e.g. "R1 M1" or "Grand Final"
type MatchID string

// SlotKind says how one participant of a match is obtained
type SlotKind int

const (
	// SlotFixed is a team known before the tournament starts
	SlotFixed SlotKind = iota
	// SlotWinner is the winner of the source match
	SlotWinner
	// SlotLoser is the team that lost the source match
	SlotLoser
	// SlotChoice is the team a seeded team elected to play, read from the results under a pseudo key
	SlotChoice
	// SlotChoiceRemainder is the member of the choice pool that was not elected
	SlotChoiceRemainder
)

func (k SlotKind) String() string {
	switch k {
	case SlotFixed:
		return "fixed"
	case SlotWinner:
		return "winner"
	case SlotLoser:
		return "loser"
	case SlotChoice:
		return "choice"
	case SlotChoiceRemainder:
		return "choice-remainder"
	default:
		return "unknown"
	}
}

// Slot is one side of a ParticipantRule. Only the fields relevant to Kind are set.
type Slot struct {
	Kind SlotKind
	// SlotFixed
	Team Team
	// SlotWinner, SlotLoser
	Source MatchID
	// SlotChoice, SlotChoiceRemainder
	ChoiceKey MatchID
	Pool      [2]MatchID
}

// Fixed returns a slot holding a known team
func Fixed(team Team) Slot {
	return Slot{Kind: SlotFixed, Team: team}
}

// WinnerOf returns a slot filled by the winner of source
func WinnerOf(source MatchID) Slot {
	return Slot{Kind: SlotWinner, Source: source}
}

// LoserOf returns a slot filled by the loser of source
func LoserOf(source MatchID) Slot {
	return Slot{Kind: SlotLoser, Source: source}
}

// ChoiceOf returns a slot filled by the team recorded under key, picked from the winners of pool
func ChoiceOf(key MatchID, pool [2]MatchID) Slot {
	return Slot{Kind: SlotChoice, ChoiceKey: key, Pool: pool}
}

// RemainderOf returns a slot filled by the winner in pool that was not recorded under key
func RemainderOf(key MatchID, pool [2]MatchID) Slot {
	return Slot{Kind: SlotChoiceRemainder, ChoiceKey: key, Pool: pool}
}

// sources lists the matches a slot needs before it can be filled
func (s Slot) sources() []MatchID {
	switch s.Kind {
	case SlotWinner, SlotLoser:
		return []MatchID{s.Source}
	case SlotChoice, SlotChoiceRemainder:
		return s.Pool[:]
	default:
		return nil
	}
}

// ParticipantRule describes both participants of a match
type ParticipantRule struct {
	Slots [2]Slot
}

// Rule builds a ParticipantRule from two slots
func Rule(first, second Slot) ParticipantRule {
	return ParticipantRule{Slots: [2]Slot{first, second}}
}

// MatchDef is the static catalog entry for one match
type MatchDef struct {
	ID    MatchID
	Title string
	Stage string
	Rule  ParticipantRule
}

// Status classifies a resolved match
type Status string

const (
	StatusCompleted      Status = "completed"
	StatusAwaitingInputs Status = "awaiting-inputs"
	StatusScheduled      Status = "scheduled"
)

// ResolvedMatch is the derived view of a match for one snapshot of results
type ResolvedMatch struct {
	ID     MatchID `json:"id"`
	Title  string  `json:"title"`
	Team1  Team    `json:"team1"`
	Team2  Team    `json:"team2"`
	Winner Team    `json:"winner,omitempty"`
	Status Status  `json:"status"`
}

// Participants returns both teams of the match
func (m ResolvedMatch) Participants() [2]Team {
	return [2]Team{m.Team1, m.Team2}
}

// loser returns the team that did not win. Both participants and the winner must be determined.
func (m ResolvedMatch) loser() (Team, bool) {
	if !m.Team1.Determined() || !m.Team2.Determined() || !m.Winner.Determined() {
		return Undetermined, false
	}
	if m.Winner == m.Team1 {
		return m.Team2, true
	}
	return m.Team1, true
}

// ResultMap maps a match id (or a choice key) to the recorded team. A missing key means no value.
type ResultMap map[MatchID]Team

// Winner returns the recorded team for id. Empty strings are never treated as a result.
func (r ResultMap) Winner(id MatchID) (Team, bool) {
	team, ok := r[id]
	if !ok || !team.Determined() {
		return Undetermined, false
	}
	return team, true
}

// Clone returns a copy that can be modified without touching r
func (r ResultMap) Clone() ResultMap {
	out := make(ResultMap, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

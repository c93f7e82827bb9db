/* progress.go
 * Contains helpers that summarise how far the bracket has progressed for a snapshot of results
 */

package bracket

import "fmt"

// Progress counts how many entry keys (matches and choices) hold a result
type Progress struct {
	Decided int `json:"decided"`
	Total   int `json:"total"`
}

// Percent returns the completed share of the bracket as a percentage
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Decided) / float64(p.Total) * 100
}

// ProgressOf returns the progress of results against the catalog's entry keys
func (c *Catalog) ProgressOf(results ResultMap) Progress {
	p := Progress{Total: len(c.entryKeys)}
	for _, key := range c.entryKeys {
		if _, ok := results.Winner(key); ok {
			p.Decided++
		}
	}
	return p
}

// NextEntry returns the first entry key with no result. The second value is false once everything is decided.
func (c *Catalog) NextEntry(results ResultMap) (MatchID, bool) {
	for _, key := range c.entryKeys {
		if _, ok := results.Winner(key); !ok {
			return key, true
		}
	}
	return "", false
}

// ChoicePhase describes where a choice stands
type ChoicePhase string

const (
	ChoiceWaiting    ChoicePhase = "waiting"
	ChoiceInProgress ChoicePhase = "in-progress"
	ChoiceAvailable  ChoicePhase = "available"
	ChoiceMade       ChoicePhase = "made"
)

// ChoiceState is the state of one choice key
type ChoiceState struct {
	Key       MatchID     `json:"key"`
	Phase     ChoicePhase `json:"phase"`
	Chosen    Team        `json:"chosen,omitempty"`
	Options   []Team      `json:"options,omitempty"`
	Completed []Team      `json:"completed,omitempty"`
}

func (s ChoiceState) String() string {
	switch s.Phase {
	case ChoiceMade:
		return fmt.Sprintf("%s: %s", s.Key, s.Chosen)
	case ChoiceAvailable:
		return fmt.Sprintf("%s available: %s, %s", s.Key, s.Options[0], s.Options[1])
	case ChoiceInProgress:
		return fmt.Sprintf("%s pending, pool in progress (decided: %s)", s.Key, s.Completed[0])
	default:
		return fmt.Sprintf("%s pending, waiting for the pool matches", s.Key)
	}
}

// ChoiceStatus reports the state of the choice recorded under key. Pool winners are read straight from results.
func (c *Catalog) ChoiceStatus(key MatchID, results ResultMap) (ChoiceState, error) {
	pool, err := c.ChoicePool(key)
	if err != nil {
		return ChoiceState{}, err
	}

	state := ChoiceState{Key: key, Phase: ChoiceWaiting}
	if chosen, ok := results.Winner(key); ok {
		state.Phase = ChoiceMade
		state.Chosen = chosen
		return state, nil
	}

	var winners []Team
	for _, id := range pool {
		if w, ok := results.Winner(id); ok {
			winners = append(winners, w)
		}
	}
	switch len(winners) {
	case 2:
		state.Phase = ChoiceAvailable
		state.Options = winners
	case 1:
		state.Phase = ChoiceInProgress
		state.Completed = winners
	}
	return state, nil
}

// ChoicePool returns the matches whose winners the choice recorded under key picks from
func (c *Catalog) ChoicePool(key MatchID) ([2]MatchID, error) {
	for _, m := range c.matches {
		for _, slot := range m.Rule.Slots {
			if (slot.Kind == SlotChoice || slot.Kind == SlotChoiceRemainder) && slot.ChoiceKey == key {
				return slot.Pool, nil
			}
		}
	}
	return [2]MatchID{}, &UnknownMatchError{ID: key}
}

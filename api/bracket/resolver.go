/* resolver.go
 * Contains the Resolver, which derives the participants and status of every match from a snapshot of results
 */

package bracket

import (
	"errors"
	"fmt"
)

// Resolver walks a Catalog against result maps. It holds no state besides the catalog.
type Resolver struct {
	catalog *Catalog
}

// NewResolver returns a Resolver for catalog
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Catalog returns the catalog the resolver walks
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve computes every match of the catalog for the given results.
// Preconditions: results is not modified by the call
// Postconditions: Returns an entry for every catalog match. If some recorded results contradict the bracket, the
// returned error joins one *InconsistentResultError per affected match; those matches carry no winner and the
// matches that depend on them stay undetermined, while every independent match still resolves.
func (r *Resolver) Resolve(results ResultMap) (map[MatchID]ResolvedMatch, error) {
	resolved := make(map[MatchID]ResolvedMatch, len(r.catalog.matches))
	var errs []error

	for _, def := range r.catalog.matches {
		match := ResolvedMatch{ID: def.ID, Title: def.Title}

		var slotErrs []error
		match.Team1, slotErrs = r.fillSlot(def.ID, def.Rule.Slots[0], results, resolved, slotErrs)
		match.Team2, slotErrs = r.fillSlot(def.ID, def.Rule.Slots[1], results, resolved, slotErrs)
		errs = append(errs, slotErrs...)

		winner, decided := results.Winner(def.ID)
		switch {
		case decided:
			match.Status = StatusCompleted
		case !match.Team1.Determined() || !match.Team2.Determined():
			match.Status = StatusAwaitingInputs
		default:
			match.Status = StatusScheduled
		}

		if decided {
			if err := checkWinner(match, winner); err != nil {
				errs = append(errs, err)
			} else {
				match.Winner = winner
			}
		}

		resolved[def.ID] = match
	}

	return resolved, errors.Join(errs...)
}

// Ordered resolves results and returns the matches in catalog order
func (r *Resolver) Ordered(results ResultMap) ([]ResolvedMatch, error) {
	resolved, err := r.Resolve(results)
	ordered := make([]ResolvedMatch, 0, len(resolved))
	for _, id := range r.catalog.MatchIDs() {
		ordered = append(ordered, resolved[id])
	}
	return ordered, err
}

// ResolveMatch resolves results and returns the single match id, or an UnknownMatchError
func (r *Resolver) ResolveMatch(results ResultMap, id MatchID) (ResolvedMatch, error) {
	if !r.catalog.Contains(id) {
		return ResolvedMatch{}, &UnknownMatchError{ID: id}
	}
	resolved, err := r.Resolve(results)
	match := resolved[id]

	var inconsistent *InconsistentResultError
	for _, e := range unwrapJoined(err) {
		if errors.As(e, &inconsistent) && inconsistent.ID == id {
			return match, e
		}
	}
	return match, nil
}

// fillSlot derives one participant. Upstream matches are always present in resolved because the catalog is ordered.
func (r *Resolver) fillSlot(id MatchID, slot Slot, results ResultMap, resolved map[MatchID]ResolvedMatch, errs []error) (Team, []error) {
	switch slot.Kind {
	case SlotFixed:
		return slot.Team, errs

	case SlotWinner:
		return resolved[slot.Source].Winner, errs

	case SlotLoser:
		loser, _ := resolved[slot.Source].loser()
		return loser, errs

	case SlotChoice:
		choice, ok := results.Winner(slot.ChoiceKey)
		if !ok {
			return Undetermined, errs
		}
		if err := checkChoice(id, slot, choice, resolved); err != nil {
			return Undetermined, append(errs, err)
		}
		return choice, errs

	case SlotChoiceRemainder:
		choice, ok := results.Winner(slot.ChoiceKey)
		if !ok {
			return Undetermined, errs
		}
		a, b := resolved[slot.Pool[0]].Winner, resolved[slot.Pool[1]].Winner
		if !a.Determined() || !b.Determined() {
			return Undetermined, errs
		}
		switch choice {
		case a:
			return b, errs
		case b:
			return a, errs
		default:
			return Undetermined, append(errs, &InconsistentResultError{
				ID:     id,
				Winner: choice,
				Reason: fmt.Sprintf("%s %q is neither %s nor %s", slot.ChoiceKey, choice, a, b),
			})
		}
	}

	return Undetermined, append(errs, fmt.Errorf("match %s: unsupported slot kind %s", id, slot.Kind))
}

// checkChoice rejects a choice that no pool match can produce. Once both pool winners are known the choice must be one
// of them; before that it must still be able to win its pool match.
func checkChoice(id MatchID, slot Slot, choice Team, resolved map[MatchID]ResolvedMatch) error {
	a, b := resolved[slot.Pool[0]].Winner, resolved[slot.Pool[1]].Winner
	if a.Determined() && b.Determined() {
		if choice == a || choice == b {
			return nil
		}
		return &InconsistentResultError{
			ID:     id,
			Winner: choice,
			Reason: fmt.Sprintf("%s %q is neither %s nor %s", slot.ChoiceKey, choice, a, b),
		}
	}

	for _, source := range slot.Pool {
		if canWin(resolved[source], choice) {
			return nil
		}
	}
	return &InconsistentResultError{
		ID:     id,
		Winner: choice,
		Reason: fmt.Sprintf("%s %q cannot win %s or %s", slot.ChoiceKey, choice, slot.Pool[0], slot.Pool[1]),
	}
}

// canWin reports whether team is, or may still become, the winner of match
func canWin(match ResolvedMatch, team Team) bool {
	if match.Winner.Determined() {
		return match.Winner == team
	}
	if !match.Team1.Determined() || !match.Team2.Determined() {
		return true
	}
	return team == match.Team1 || team == match.Team2
}

// checkWinner verifies that a recorded winner is one of the two determined participants
func checkWinner(match ResolvedMatch, winner Team) error {
	if !match.Team1.Determined() || !match.Team2.Determined() {
		return &InconsistentResultError{
			ID: match.ID, Winner: winner, Team1: match.Team1, Team2: match.Team2,
			Reason: "result recorded before both participants were determined",
		}
	}
	if winner != match.Team1 && winner != match.Team2 {
		return &InconsistentResultError{
			ID: match.ID, Winner: winner, Team1: match.Team1, Team2: match.Team2,
			Reason: "winner is not a participant",
		}
	}
	return nil
}

// unwrapJoined flattens an errors.Join result
func unwrapJoined(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// Inconsistencies returns every *InconsistentResultError contained in err, which is usually the error from Resolve
func Inconsistencies(err error) []*InconsistentResultError {
	var out []*InconsistentResultError
	for _, e := range unwrapJoined(err) {
		var inconsistent *InconsistentResultError
		if errors.As(e, &inconsistent) {
			out = append(out, inconsistent)
		}
	}
	return out
}

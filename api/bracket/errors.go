/* errors.go
 * Contains the typed errors returned by the catalog and the resolver
 */

package bracket

import "fmt"

// UnknownMatchError is returned when a match id outside the catalog is queried
type UnknownMatchError struct {
	ID MatchID
}

func (e *UnknownMatchError) Error() string {
	return fmt.Sprintf("unknown match %q", e.ID)
}

// InconsistentResultError is returned when a recorded result cannot belong to the match it was recorded for
type InconsistentResultError struct {
	ID     MatchID
	Winner Team
	Team1  Team
	Team2  Team
	Reason string
}

func (e *InconsistentResultError) Error() string {
	return fmt.Sprintf("inconsistent result for %s: %q (participants %s vs %s): %s",
		e.ID, e.Winner, displayTeam(e.Team1), displayTeam(e.Team2), e.Reason)
}

func displayTeam(t Team) string {
	if !t.Determined() {
		return "TBD"
	}
	return string(t)
}

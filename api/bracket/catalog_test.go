/* catalog_test.go
 * Contains unit tests for catalog.go
 */

package bracket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region LCKPlayoffs tests

func TestLCKPlayoffs_MatchOrder(t *testing.T) {
	catalog := LCKPlayoffs()

	assert.Equal(t, []MatchID{R1M1, R1M2, R2M1, R2M2, R1LB, R2LB, R3UB, R3LB, R4LF, GrandFinal}, catalog.MatchIDs())
}

func TestLCKPlayoffs_TopologicalOrder(t *testing.T) {
	catalog := LCKPlayoffs()
	position := make(map[MatchID]int)
	for i, id := range catalog.MatchIDs() {
		position[id] = i
	}

	for _, id := range catalog.MatchIDs() {
		rule, err := catalog.RuleFor(id)
		require.NoError(t, err)
		for _, slot := range rule.Slots {
			for _, src := range slot.sources() {
				assert.Less(t, position[src], position[id], "%s must come after %s", id, src)
			}
		}
	}
}

func TestLCKPlayoffs_EntryKeys(t *testing.T) {
	catalog := LCKPlayoffs()

	assert.Equal(t, []MatchID{R1M1, R1M2, GENChoice, R2M1, R2M2, R1LB, R2LB, R3UB, R3LB, R4LF, GrandFinal}, catalog.EntryKeys())
	assert.Equal(t, []MatchID{GENChoice}, catalog.ChoiceKeys())
}

func TestLCKPlayoffs_Teams(t *testing.T) {
	catalog := LCKPlayoffs()

	assert.Equal(t, []Team{"T1", "DK", "KT", "BFX", "GEN", "HLE"}, catalog.Teams())
	assert.True(t, catalog.HasTeam("GEN"))
	assert.False(t, catalog.HasTeam("DRX"))
}

func TestLCKPlayoffs_ReturnsCopies(t *testing.T) {
	catalog := LCKPlayoffs()

	ids := catalog.MatchIDs()
	ids[0] = "tampered"
	teams := catalog.Teams()
	teams[0] = "tampered"

	assert.Equal(t, R1M1, catalog.MatchIDs()[0])
	assert.Equal(t, Team("T1"), catalog.Teams()[0])
}

// endregion

// region RuleFor tests

func TestRuleFor_Fixed(t *testing.T) {
	rule, err := LCKPlayoffs().RuleFor(R1M1)

	require.NoError(t, err)
	assert.Equal(t, Rule(Fixed("T1"), Fixed("DK")), rule)
}

func TestRuleFor_Choice(t *testing.T) {
	rule, err := LCKPlayoffs().RuleFor(R2M1)

	require.NoError(t, err)
	assert.Equal(t, SlotFixed, rule.Slots[0].Kind)
	assert.Equal(t, SlotChoice, rule.Slots[1].Kind)
	assert.Equal(t, GENChoice, rule.Slots[1].ChoiceKey)
	assert.Equal(t, [2]MatchID{R1M1, R1M2}, rule.Slots[1].Pool)
}

func TestRuleFor_UnknownMatch(t *testing.T) {
	_, err := LCKPlayoffs().RuleFor("R9 M9")

	var unknown *UnknownMatchError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, MatchID("R9 M9"), unknown.ID)
}

func TestRuleFor_ChoiceKeyIsNotAMatch(t *testing.T) {
	_, err := LCKPlayoffs().RuleFor(GENChoice)

	var unknown *UnknownMatchError
	assert.True(t, errors.As(err, &unknown))
}

// endregion

// region Canonical tests

func TestCanonical(t *testing.T) {
	catalog := LCKPlayoffs()
	tests := []struct {
		name  string
		input string
		want  MatchID
	}{
		{"exact", "R1 M1", R1M1},
		{"whitespace", "  Grand Final ", GrandFinal},
		{"case insensitive", "r3 ub", R3UB},
		{"choice key", "GEN Choice", GENChoice},
		{"korean alias", "GEN이 고른 팀", GENChoice},
		{"mis-decoded alias", "GENì´ ê³ ë¥¸ íŒ€", GENChoice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.Canonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonical_Unknown(t *testing.T) {
	_, err := LCKPlayoffs().Canonical("Semi Final")

	var unknown *UnknownMatchError
	assert.True(t, errors.As(err, &unknown))
}

func TestSpellings(t *testing.T) {
	catalog := LCKPlayoffs()

	assert.Equal(t, []string{"R1 M1"}, catalog.Spellings(R1M1))
	spellings := catalog.Spellings(GENChoice)
	assert.Equal(t, "GEN Choice", spellings[0])
	assert.ElementsMatch(t, []string{"GEN Choice", "GEN이 고른 팀", "GENì´ ê³ ë¥¸ íŒ€"}, spellings)
}

// endregion

// region Stage tests

func TestStages(t *testing.T) {
	catalog := LCKPlayoffs()

	assert.Equal(t, []string{"R1", "R2", "LB", "R3", "FINAL"}, catalog.Stages())
	assert.Equal(t, []MatchID{R1LB, R2LB}, catalog.MatchesInStage("lb"))
	assert.Equal(t, []MatchID{R4LF, GrandFinal}, catalog.MatchesInStage("FINAL"))
	assert.Empty(t, catalog.MatchesInStage("R9"))
}

// endregion

// region NewCatalog validation tests

func TestNewCatalog_Invalid(t *testing.T) {
	teams := []Team{"A", "B", "C", "D"}
	tests := []struct {
		name    string
		teams   []Team
		defs    []MatchDef
		aliases map[string]MatchID
		wantErr string
	}{
		{
			name:    "no matches",
			teams:   teams,
			wantErr: "at least one match",
		},
		{
			name:  "duplicate id",
			teams: teams,
			defs: []MatchDef{
				{ID: "M1", Rule: Rule(Fixed("A"), Fixed("B"))},
				{ID: "M1", Rule: Rule(Fixed("C"), Fixed("D"))},
			},
			wantErr: "defined twice",
		},
		{
			name:  "unknown fixed team",
			teams: teams,
			defs: []MatchDef{
				{ID: "M1", Rule: Rule(Fixed("A"), Fixed("Z"))},
			},
			wantErr: "unknown team",
		},
		{
			name:  "forward dependency",
			teams: teams,
			defs: []MatchDef{
				{ID: "M1", Rule: Rule(WinnerOf("M2"), Fixed("A"))},
				{ID: "M2", Rule: Rule(Fixed("B"), Fixed("C"))},
			},
			wantErr: "not defined before",
		},
		{
			name:  "self dependency",
			teams: teams,
			defs: []MatchDef{
				{ID: "M1", Rule: Rule(WinnerOf("M1"), Fixed("A"))},
			},
			wantErr: "not defined before",
		},
		{
			name:  "choice key collides with match",
			teams: teams,
			defs: []MatchDef{
				{ID: "M1", Rule: Rule(Fixed("A"), Fixed("B"))},
				{ID: "M2", Rule: Rule(Fixed("C"), Fixed("D"))},
				{ID: "M3", Rule: Rule(Fixed("A"), ChoiceOf("M1", [2]MatchID{"M1", "M2"}))},
			},
			wantErr: "collides",
		},
		{
			name:  "alias to unknown key",
			teams: teams,
			defs: []MatchDef{
				{ID: "M1", Rule: Rule(Fixed("A"), Fixed("B"))},
			},
			aliases: map[string]MatchID{"first": "M9"},
			wantErr: "alias",
		},
		{
			name:  "duplicate team",
			teams: []Team{"A", "A"},
			defs: []MatchDef{
				{ID: "M1", Rule: Rule(Fixed("A"), Fixed("A"))},
			},
			wantErr: "listed twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.teams, tt.defs, tt.aliases)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewCatalog_DoesNotShareInput(t *testing.T) {
	defs := []MatchDef{{ID: "M1", Rule: Rule(Fixed("A"), Fixed("B"))}}
	catalog, err := NewCatalog([]Team{"A", "B"}, defs, nil)
	require.NoError(t, err)

	defs[0].ID = "changed"

	assert.Equal(t, []MatchID{"M1"}, catalog.MatchIDs())
}

// endregion

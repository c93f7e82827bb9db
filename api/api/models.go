/* models.go
 * This file contain the structs returned to api consumers (the discord bot, the web server and the cli)
 */

package api

import (
	"errors"

	"lck-pickems/api/bracket"
	"lck-pickems/api/external"
	"lck-pickems/api/logic"
)

var (
	// ErrUnknownTeam is returned when a team name cannot be matched to a catalog team
	ErrUnknownTeam = errors.New("unknown team")
	// ErrResultAlreadyRecorded is returned when a different winner is already stored for a key
	ErrResultAlreadyRecorded = errors.New("result already recorded")
	// ErrInvalidPrediction is returned when a prediction has the wrong shape or contradicts itself
	ErrInvalidPrediction = errors.New("invalid prediction")
)

// BracketView is the resolved bracket for the current results
type BracketView struct {
	Matches  []bracket.ResolvedMatch `json:"matches"`
	Problems []string                `json:"problems,omitempty"`
	Progress bracket.Progress        `json:"progress"`
	Choices  []bracket.ChoiceState   `json:"choices"`
}

// NextMatch is the next key waiting for a result
type NextMatch struct {
	Key      bracket.MatchID        `json:"key,omitempty"`
	Done     bool                   `json:"done"`
	Match    *bracket.ResolvedMatch `json:"match,omitempty"`
	Choice   *bracket.ChoiceState   `json:"choice,omitempty"`
	Schedule string                 `json:"schedule,omitempty"`
}

// PredictionReport is a participant's score together with every pick
type PredictionReport struct {
	Score   logic.ScoredPrediction `json:"score"`
	Picks   []logic.PickResult     `json:"picks"`
	Missing []bracket.MatchID      `json:"missing,omitempty"`
}

// Standings is the full leaderboard view for one snapshot of results
type Standings struct {
	Ranked       []logic.ScoredPrediction `json:"ranked"`
	Groups       []logic.WrongCountGroup  `json:"groups"`
	Survivors    logic.SurvivorSummary    `json:"survivors"`
	Top          []logic.ScoredPrediction `json:"top"`
	Histogram    []int                    `json:"histogram"`
	MeanAccuracy float64                  `json:"meanAccuracy"`
	Progress     bracket.Progress         `json:"progress"`
}

// PickStats is the pick distribution of one key. Scenarios are only set for choice keys.
type PickStats struct {
	Key         bracket.MatchID        `json:"key"`
	Respondents int                    `json:"respondents"`
	Shares      []logic.PickShare      `json:"shares"`
	Scenarios   []logic.ChoiceScenario `json:"scenarios,omitempty"`
}

// StageBreakdown is the pick distribution of every match in a stage
type StageBreakdown struct {
	Stage   string                 `json:"stage"`
	Matches []logic.MatchBreakdown `json:"matches"`
}

// Analysis summarises every prediction
type Analysis struct {
	Participants int                    `json:"participants"`
	Championship []logic.PickShare      `json:"championship"`
	Choices      []logic.ChoiceScenario `json:"choices"`
	TeamTotals   []logic.PickShare      `json:"teamTotals"`
	Stages       []StageBreakdown       `json:"stages"`
}

// ImportReport is the outcome of importing a comment dump
type ImportReport struct {
	Users    int                         `json:"users"`
	Imported int                         `json:"imported"`
	Failed   []external.FailedExtraction `json:"failed"`
	Missing  int                         `json:"missing"`
	Debug    []external.DebugEntry       `json:"debug"`
}

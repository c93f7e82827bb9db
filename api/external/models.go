/* models.go
 * This file contains the models used by the external package when reading comment dumps and bracket files
 */

package external

import "lck-pickems/api/bracket"

// ExtractedPrediction is one participant's prediction as written in their comment. Picks are keyed by entry key
// and still hold the raw team names.
type ExtractedPrediction struct {
	Nickname string
	Picks    map[bracket.MatchID]string
}

// FailedExtraction is a participant whose comment did not hold a usable prediction
type FailedExtraction struct {
	Nickname string `json:"nickname"`
	Reason   string `json:"reason"`
	Comment  string `json:"comment"`
}

// DebugEntry records what happened to every participant found in the dump
type DebugEntry struct {
	UserNumber int    `json:"user_number"`
	Nickname   string `json:"nickname"`
	LineNumber int    `json:"line_number"`
	Status     string `json:"status"`
}

// ExtractionReport is the outcome of parsing one comment dump
type ExtractionReport struct {
	Users     int
	Extracted []ExtractedPrediction
	Failed    []FailedExtraction
	Debug     []DebugEntry
}

// Missing is the number of users that were found but neither extracted nor reported as failed
func (r ExtractionReport) Missing() int {
	return r.Users - len(r.Extracted) - len(r.Failed)
}

// predictionRecord is one element of a predictions.json file
type predictionRecord struct {
	Nickname   string            `json:"nickname"`
	UserID     string            `json:"user_id,omitempty"`
	Prediction map[string]string `json:"prediction"`
}

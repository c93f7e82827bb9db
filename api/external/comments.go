/* comments.go
 * Contains the logic used to pull bracket predictions out of a dump of board comments
 */

package external

import (
	"fmt"
	"regexp"
	"strings"

	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"
)

const (
	// recommendMarker starts the line under every commenter's nickname
	recommendMarker = "추천"
	// editIconMarker is the last line of the comment header, the body follows it
	editIconMarker = "수정 아이콘"
	// editIconWindow is how many lines after the marker line are searched for the edit icon
	editIconWindow = 10
	excerptLength  = 100
)

// Extractor pulls predictions for one catalog out of comment dumps
type Extractor struct {
	keys     []bracket.MatchID
	patterns map[bracket.MatchID][]*regexp.Regexp
}

// NewExtractor compiles a `key : value` pattern for every spelling of every entry key in catalog
func NewExtractor(catalog *bracket.Catalog) *Extractor {
	e := &Extractor{
		keys:     catalog.EntryKeys(),
		patterns: make(map[bracket.MatchID][]*regexp.Regexp),
	}
	for _, key := range e.keys {
		for _, spelling := range catalog.Spellings(key) {
			re := regexp.MustCompile(regexp.QuoteMeta(spelling) + `\s*:\s*([\p{L}\p{N}_]+)`)
			e.patterns[key] = append(e.patterns[key], re)
		}
	}
	return e
}

// Extract parses a comment dump. Every comment header is a nickname line followed by a line starting with the
// recommend marker, and the comment body runs from the line after the edit icon up to the next header.
// Preconditions: text is the raw dump
// Postconditions: Returns a report of the extracted predictions, the failures and a debug entry for each user
func (e *Extractor) Extract(text string) ExtractionReport {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var report ExtractionReport
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], recommendMarker) {
			i++
			continue
		}
		report.Users++
		if i == 0 {
			i++
			continue
		}

		entry := DebugEntry{UserNumber: report.Users, Nickname: lines[i-1], LineNumber: i, Status: "processing"}

		j := i + 1
		found := false
		for ; j < len(lines) && j < i+editIconWindow; j++ {
			if strings.Contains(lines[j], editIconMarker) {
				found = true
				break
			}
		}

		if found {
			j++
			var body []string
			for ; j < len(lines) && !strings.HasPrefix(lines[j], recommendMarker); j++ {
				body = append(body, lines[j])
			}
			comment := strings.Join(body, "\n")

			picks, reason := e.extractPicks(comment)
			if reason == "" {
				report.Extracted = append(report.Extracted, ExtractedPrediction{Nickname: entry.Nickname, Picks: picks})
				entry.Status = "success"
			} else {
				report.Failed = append(report.Failed, FailedExtraction{
					Nickname: entry.Nickname,
					Reason:   reason,
					Comment:  excerpt(comment),
				})
				entry.Status = "failed - " + reason
			}
		} else {
			entry.Status = "failed - no edit icon"
		}

		report.Debug = append(report.Debug, entry)
		i = j
	}

	return report
}

// extractPicks finds every entry key in a comment body. The reason is empty when every key was found.
func (e *Extractor) extractPicks(comment string) (map[bracket.MatchID]string, string) {
	picks := make(map[bracket.MatchID]string, len(e.keys))
	for _, key := range e.keys {
		for _, re := range e.patterns[key] {
			if m := re.FindStringSubmatch(comment); m != nil {
				picks[key] = m[1]
				break
			}
		}
	}

	switch len(picks) {
	case len(e.keys):
		return picks, ""
	case 0:
		return nil, "no prediction pattern"
	default:
		return nil, fmt.Sprintf("partial fields found: %d/%d", len(picks), len(e.keys))
	}
}

func excerpt(comment string) string {
	runes := []rune(comment)
	if len(runes) <= excerptLength {
		return comment
	}
	return string(runes[:excerptLength]) + "..."
}

// Normalize maps the raw team names of each extracted prediction onto catalog teams. A prediction with a name
// that cannot be matched is reported as failed instead.
func Normalize(extracted []ExtractedPrediction, matcher *logic.TeamMatcher, keys []bracket.MatchID) ([]logic.Prediction, []FailedExtraction) {
	var predictions []logic.Prediction
	var failed []FailedExtraction
	for _, ex := range extracted {
		prediction := logic.Prediction{Name: ex.Nickname, Picks: make(map[bracket.MatchID]bracket.Team, len(keys))}
		var unknown []string
		for _, key := range keys {
			raw, ok := ex.Picks[key]
			if !ok {
				continue
			}
			team, ok := matcher.Match(raw)
			if !ok {
				unknown = append(unknown, raw)
				continue
			}
			prediction.Picks[key] = team
		}
		if len(unknown) > 0 {
			failed = append(failed, FailedExtraction{
				Nickname: ex.Nickname,
				Reason:   fmt.Sprintf("unknown team names: %s", strings.Join(unknown, ", ")),
			})
			continue
		}
		predictions = append(predictions, prediction)
	}
	return predictions, failed
}

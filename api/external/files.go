/* files.go
 * Contains readers and writers for the results file (`key : value` per line) and the predictions.json file
 */

package external

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"
)

// ReadResults parses a results file. Keys go through the catalog's aliases, blank values are dropped and unknown
// keys or teams are rejected.
func ReadResults(r io.Reader, catalog *bracket.Catalog) (bracket.ResultMap, error) {
	results := make(bracket.ResultMap)
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		raw, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		key, err := catalog.Canonical(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if !catalog.HasTeam(bracket.Team(value)) {
			return nil, fmt.Errorf("line %d: unknown team %q for %s", lineNumber, value, key)
		}
		results[key] = bracket.Team(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading results: %w", err)
	}
	return results, nil
}

// WriteResults writes one `key : value` line per entry key in ingestion order, with an empty value for undecided keys
func WriteResults(w io.Writer, catalog *bracket.Catalog, results bracket.ResultMap) error {
	for _, key := range catalog.EntryKeys() {
		winner, _ := results.Winner(key)
		if _, err := fmt.Fprintf(w, "%s : %s\n", key, winner); err != nil {
			return fmt.Errorf("error writing results: %w", err)
		}
	}
	return nil
}

// LoadResultsFile reads the results file at path. A missing file is an empty result map.
func LoadResultsFile(path string, catalog *bracket.Catalog) (bracket.ResultMap, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return bracket.ResultMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening results file: %w", err)
	}
	defer f.Close()
	return ReadResults(f, catalog)
}

// SaveResultsFile replaces the results file at path
func SaveResultsFile(path string, catalog *bracket.Catalog, results bracket.ResultMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating results file: %w", err)
	}
	if err := WriteResults(f, catalog, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPredictions parses a predictions.json document. Prediction keys go through the catalog's aliases and keys the
// catalog does not know are rejected.
func ReadPredictions(r io.Reader, catalog *bracket.Catalog) ([]logic.Prediction, error) {
	var records []predictionRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding predictions: %w", err)
	}

	predictions := make([]logic.Prediction, 0, len(records))
	for i, rec := range records {
		p := logic.Prediction{
			Name:   rec.Nickname,
			UserID: rec.UserID,
			Picks:  make(map[bracket.MatchID]bracket.Team, len(rec.Prediction)),
		}
		for raw, team := range rec.Prediction {
			key, err := catalog.Canonical(raw)
			if err != nil {
				return nil, fmt.Errorf("prediction %d (%s): %w", i, rec.Nickname, err)
			}
			if team = strings.TrimSpace(team); team != "" {
				p.Picks[key] = bracket.Team(team)
			}
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

// WritePredictions writes predictions as an indented predictions.json document
func WritePredictions(w io.Writer, predictions []logic.Prediction) error {
	records := make([]predictionRecord, 0, len(predictions))
	for _, p := range predictions {
		rec := predictionRecord{Nickname: p.Name, UserID: p.UserID, Prediction: make(map[string]string, len(p.Picks))}
		for key, team := range p.Picks {
			rec.Prediction[string(key)] = string(team)
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("error encoding predictions: %w", err)
	}
	return nil
}

// LoadPredictionsFile reads the predictions.json file at path
func LoadPredictionsFile(path string, catalog *bracket.Catalog) ([]logic.Prediction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening predictions file: %w", err)
	}
	defer f.Close()
	return ReadPredictions(f, catalog)
}

// SavePredictionsFile replaces the predictions.json file at path
func SavePredictionsFile(path string, predictions []logic.Prediction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating predictions file: %w", err)
	}
	if err := WritePredictions(f, predictions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

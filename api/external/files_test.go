/* files_test.go
 * Contains unit tests for the results and predictions file readers and writers
 */

package external

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lck-pickems/api/bracket"
	"lck-pickems/api/logic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region Results file tests

func TestReadResults_UnknownTeam(t *testing.T) {
	_, err := ReadResults(strings.NewReader("R1 M1 : T1\nR1 M2 : Fnatic\n"), bracket.LCKPlayoffs())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `line 2: unknown team "Fnatic" for R1 M2`)
}

func TestReadResults(t *testing.T) {
	input := `R1 M1 : T1
R1 M2 : KT
GENì´ ê³ ë¥¸ íŒ€ : KT
R2 M1 :
R2 M2 :

Grand Final :
`

	results, err := ReadResults(strings.NewReader(input), bracket.LCKPlayoffs())

	require.NoError(t, err)
	assert.Equal(t, bracket.ResultMap{
		bracket.R1M1:      "T1",
		bracket.R1M2:      "KT",
		bracket.GENChoice: "KT",
	}, results)
}

func TestReadResults_UnknownKey(t *testing.T) {
	_, err := ReadResults(strings.NewReader("R1 M1 : T1\nSemi Final : GEN\n"), bracket.LCKPlayoffs())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	var unknown *bracket.UnknownMatchError
	assert.ErrorAs(t, err, &unknown)
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer

	err := WriteResults(&buf, bracket.LCKPlayoffs(), bracket.ResultMap{bracket.R1M1: "T1", bracket.GENChoice: "KT"})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "R1 M1 : T1", lines[0])
	assert.Equal(t, "R1 M2 : ", lines[1])
	assert.Equal(t, "GEN Choice : KT", lines[2])
	assert.Equal(t, "Grand Final :", lines[10])
}

func TestResultsFile_RoundTrip(t *testing.T) {
	catalog := bracket.LCKPlayoffs()
	path := filepath.Join(t.TempDir(), "match_result.txt")
	results := bracket.ResultMap{bracket.R1M1: "T1", bracket.R1M2: "KT", bracket.GENChoice: "T1"}

	require.NoError(t, SaveResultsFile(path, catalog, results))
	loaded, err := LoadResultsFile(path, catalog)

	require.NoError(t, err)
	assert.Equal(t, results, loaded)
}

func TestLoadResultsFile_Missing(t *testing.T) {
	results, err := LoadResultsFile(filepath.Join(t.TempDir(), "none.txt"), bracket.LCKPlayoffs())

	require.NoError(t, err)
	assert.Empty(t, results)
}

// endregion

// region Predictions file tests

func TestReadPredictions(t *testing.T) {
	input := `[
  {"nickname": "페이커", "prediction": {"R1 M1": "T1", "GEN이 고른 팀": "KT", "R1 M2": ""}},
  {"nickname": "페이커", "prediction": {"Grand Final": "GEN"}}
]`

	predictions, err := ReadPredictions(strings.NewReader(input), bracket.LCKPlayoffs())

	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, "페이커", predictions[0].Name)
	assert.Equal(t, map[bracket.MatchID]bracket.Team{bracket.R1M1: "T1", bracket.GENChoice: "KT"}, predictions[0].Picks)
	assert.Equal(t, "페이커", predictions[1].Name)
}

func TestReadPredictions_UnknownKey(t *testing.T) {
	_, err := ReadPredictions(strings.NewReader(`[{"nickname": "A", "prediction": {"Semi": "T1"}}]`), bracket.LCKPlayoffs())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prediction 0 (A)")
}

func TestReadPredictions_InvalidJSON(t *testing.T) {
	_, err := ReadPredictions(strings.NewReader(`{`), bracket.LCKPlayoffs())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding predictions")
}

func TestPredictionsFile_RoundTrip(t *testing.T) {
	catalog := bracket.LCKPlayoffs()
	path := filepath.Join(t.TempDir(), "predictions.json")
	predictions := []logic.Prediction{
		{Name: "A", UserID: "1", Picks: map[bracket.MatchID]bracket.Team{bracket.R1M1: "T1", bracket.GENChoice: "KT"}},
		{Name: "B", Picks: map[bracket.MatchID]bracket.Team{bracket.GrandFinal: "GEN"}},
	}

	require.NoError(t, SavePredictionsFile(path, predictions))
	loaded, err := LoadPredictionsFile(path, catalog)

	require.NoError(t, err)
	assert.Equal(t, predictions, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"nickname": "A"`)
}

// endregion

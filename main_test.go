/* main_test.go
 * Contains tests for the offline cli commands, which work on files and need no database
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lck-pickems/api/bracket"
	"lck-pickems/api/external"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commentDump = `페이커
추천 3
2025.09.01 12:00
수정 아이콘
R1 M1 : T1
R1 M2 : KT
GEN이 고른 팀 : KT
R2 M1 : GEN
R2 M2 : HLE
R1 LB : DK
R2 LB : T1
R3 UB : GEN
R3 LB : T1
R4 LF : T1
Grand Final : T1
쵸비
추천 1
2025.09.01 12:05
수정 아이콘
R1 M1 : DK
R1 M2 : KT
GEN이 고른 팀 : DK
R2 M1 : GEN
R2 M2 : HLE
R1 LB : T1
R2 LB : T1
R3 UB : GEN
R3 LB : T1
R4 LF : T1
Grand Final : GEN
기인
추천 0
2025.09.01 12:10
수정 아이콘
올해는 KT`

// run executes the cli with args and returns everything it printed
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	a := &app{catalog: bracket.LCKPlayoffs()}
	cmd := a.rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// region result tests

func TestResultFile_SetShowClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match_result.txt")

	out, err := run(t, "result", "set", "--file", path, "R1", "M1", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded R1 M1: T1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "R1 M1 : T1\n")

	out, err = run(t, "result", "show", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Progress: 1/11")

	out, err = run(t, "result", "clear", "--file", path, "R1 M1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared R1 M1")

	results, err := external.LoadResultsFile(path, bracket.LCKPlayoffs())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResultFile_RejectsInconsistentResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match_result.txt")
	require.NoError(t, external.SaveResultsFile(path, bracket.LCKPlayoffs(), bracket.ResultMap{
		bracket.R1M1: "T1", bracket.R1M2: "KT", bracket.GENChoice: "KT",
	}))

	_, err := run(t, "result", "set", "--file", path, "R2 M2", "KT")

	require.Error(t, err)
	results, err := external.LoadResultsFile(path, bracket.LCKPlayoffs())
	require.NoError(t, err)
	_, ok := results[bracket.R2M2]
	assert.False(t, ok)
}

func TestResultFile_UnknownMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match_result.txt")

	_, err := run(t, "result", "clear", "--file", path, "Semi Final")

	assert.Error(t, err)
}

func TestResultSet_RequiresArguments(t *testing.T) {
	_, err := run(t, "result", "set", "R1")

	assert.Error(t, err)
}

// endregion

// region import, rank and analyze tests

func importDump(t *testing.T) string {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "comments.txt")
	require.NoError(t, os.WriteFile(dumpPath, []byte(commentDump), 0o644))
	out := filepath.Join(dir, "predictions.json")

	report, err := run(t, "import", dumpPath, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, report, "Users found: 3, imported: 2, failed: 1, missing: 0")
	assert.Contains(t, report, "기인: no prediction pattern")
	return out
}

func TestImport_WritesPredictions(t *testing.T) {
	out := importDump(t)

	predictions, err := external.LoadPredictionsFile(out, bracket.LCKPlayoffs())

	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, "페이커", predictions[0].Name)
	assert.Equal(t, bracket.Team("KT"), predictions[0].Picks[bracket.GENChoice])
	assert.Len(t, predictions[1].Picks, 11)
}

func TestRank_Offline(t *testing.T) {
	predictionsPath := importDump(t)
	resultsPath := filepath.Join(t.TempDir(), "match_result.txt")
	require.NoError(t, external.SaveResultsFile(resultsPath, bracket.LCKPlayoffs(), bracket.ResultMap{
		bracket.R1M1: "T1", bracket.R1M2: "KT",
	}))

	out, err := run(t, "rank", "--predictions", predictionsPath, "--results", resultsPath)

	require.NoError(t, err)
	assert.Contains(t, out, "Matches decided: 2/11")
	assert.Contains(t, out, "Participants: 2, surviving: 1, eliminated: 1")
	assert.Contains(t, out, "survivors (1): 페이커")
	assert.Contains(t, out, "1 wrong (1): 쵸비")
}

func TestRank_MissingResultsFileMeansNoResults(t *testing.T) {
	predictionsPath := importDump(t)

	out, err := run(t, "rank", "--predictions", predictionsPath, "--results", filepath.Join(t.TempDir(), "none.txt"))

	require.NoError(t, err)
	assert.Contains(t, out, "survivors (2)")
}

func TestAnalyze_Offline(t *testing.T) {
	predictionsPath := importDump(t)

	out, err := run(t, "analyze", "--predictions", predictionsPath)

	require.NoError(t, err)
	assert.Contains(t, out, "Participants: 2")
	assert.Contains(t, out, "Championship picks:")
	assert.Contains(t, out, "T1 vs KT (1):")
	assert.Contains(t, out, "DK vs KT (1):")
	assert.True(t, strings.Contains(out, "Stage FINAL:"))
}

// endregion
